package security

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// GenerateOTPCode returns a zero-padded numeric code with the requested
// number of digits.
func GenerateOTPCode(digits int) (string, error) {
	if digits <= 0 || digits > 10 {
		return "", fmt.Errorf("otp digits must be between 1 and 10, got %d", digits)
	}

	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	code := n.String()
	if pad := digits - len(code); pad > 0 {
		code = strings.Repeat("0", pad) + code
	}
	return code, nil
}
