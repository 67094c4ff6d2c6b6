package security

import (
	"strings"
	"testing"

	"github.com/smartlaundry/backend/pkg/config"
)

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	cfg := testPasswordConfig()

	encoded, err := HashPassword("s3cret-password", cfg)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !strings.HasPrefix(encoded, "$argon2id$v=19$") {
		t.Fatalf("unexpected hash format %q", encoded)
	}

	ok, err := VerifyPassword("s3cret-password", encoded)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !ok {
		t.Fatal("expected password to verify")
	}

	ok, err = VerifyPassword("wrong-password", encoded)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if ok {
		t.Fatal("expected mismatch for wrong password")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword("", testPasswordConfig()); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("password", "not-a-hash"); err != ErrInvalidHash {
		t.Fatalf("expected ErrInvalidHash, got %v", err)
	}
}

func TestGenerateOTPCode(t *testing.T) {
	code, err := GenerateOTPCode(6)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("expected 6 digits, got %q", code)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			t.Fatalf("expected numeric code, got %q", code)
		}
	}

	if _, err := GenerateOTPCode(0); err == nil {
		t.Fatal("expected error for zero digits")
	}
	if _, err := GenerateOTPCode(11); err == nil {
		t.Fatal("expected error for oversized digits")
	}
}
