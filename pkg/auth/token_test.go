package auth

import (
	"testing"
	"time"

	"github.com/smartlaundry/backend/pkg/config"
	"github.com/smartlaundry/backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "smartlaundry-test",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()

	signed, err := MintAccessToken(cfg, now, AccessTokenPayload{
		UserID:     42,
		Role:       enums.UserRoleAdmin,
		IsVerified: true,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Role != enums.UserRoleAdmin {
		t.Fatalf("expected admin role, got %q", claims.Role)
	}
	if !claims.IsVerified {
		t.Fatal("expected verified claim")
	}
	if claims.ID == "" {
		t.Fatal("expected a generated jti")
	}
	if claims.Subject != "42" {
		t.Fatalf("expected subject 42, got %q", claims.Subject)
	}
}

func TestMintAccessTokenValidation(t *testing.T) {
	now := time.Now()

	cases := []struct {
		name    string
		cfg     config.JWTConfig
		payload AccessTokenPayload
	}{
		{
			name:    "missing secret",
			cfg:     config.JWTConfig{Issuer: "x", ExpirationMinutes: 5},
			payload: AccessTokenPayload{UserID: 1, Role: enums.UserRoleUser},
		},
		{
			name:    "missing issuer",
			cfg:     config.JWTConfig{Secret: "x", ExpirationMinutes: 5},
			payload: AccessTokenPayload{UserID: 1, Role: enums.UserRoleUser},
		},
		{
			name:    "zero ttl",
			cfg:     config.JWTConfig{Secret: "x", Issuer: "x"},
			payload: AccessTokenPayload{UserID: 1, Role: enums.UserRoleUser},
		},
		{
			name:    "invalid user id",
			cfg:     testJWTConfig(),
			payload: AccessTokenPayload{UserID: 0, Role: enums.UserRoleUser},
		},
		{
			name:    "invalid role",
			cfg:     testJWTConfig(),
			payload: AccessTokenPayload{UserID: 1, Role: enums.UserRole("superuser")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := MintAccessToken(tc.cfg, now, tc.payload); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	past := time.Now().Add(-2 * time.Hour)

	signed, err := MintAccessToken(cfg, past, AccessTokenPayload{UserID: 7, Role: enums.UserRoleUser})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(cfg, signed); err == nil {
		t.Fatal("expected expired token to be rejected")
	}

	claims, err := ParseAccessTokenAllowExpired(cfg, signed)
	if err != nil {
		t.Fatalf("allow-expired parse: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("expected user id 7, got %d", claims.UserID)
	}
}

func TestParseAccessTokenRejectsWrongSecret(t *testing.T) {
	cfg := testJWTConfig()

	signed, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: 1, Role: enums.UserRoleUser})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	other := cfg
	other.Secret = "different-secret"
	if _, err := ParseAccessToken(other, signed); err == nil {
		t.Fatal("expected signature mismatch")
	}
}
