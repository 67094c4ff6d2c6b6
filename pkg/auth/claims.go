package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/smartlaundry/backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID     int64
	Role       enums.UserRole
	IsVerified bool
	JTI        string
}

// AccessTokenClaims represents the typed JWT issued to clients.
type AccessTokenClaims struct {
	UserID     int64          `json:"user_id"`
	Role       enums.UserRole `json:"role"`
	IsVerified bool           `json:"is_verified"`
	jwt.RegisteredClaims
}
