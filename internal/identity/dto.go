package identity

import (
	"time"

	"github.com/smartlaundry/backend/pkg/db/models"
	"github.com/smartlaundry/backend/pkg/enums"
)

// RegisterParams captures the registration payload after validation.
type RegisterParams struct {
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
}

// LoginParams identifies a user by email or phone plus password.
type LoginParams struct {
	Email    string
	Phone    string
	Password string
}

// UpdateProfileParams carries the editable profile fields. Nil pointers leave
// the stored value untouched.
type UpdateProfileParams struct {
	FirstName    *string
	LastName     *string
	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	Pincode      *string
	Country      *string
}

// TokenPair is the access/refresh pair returned by auth operations.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthResult bundles the authenticated user and their tokens.
type AuthResult struct {
	User   *models.User `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

// OTPIssued reports a generated code. Code is only populated when the
// deployment echoes codes back for development.
type OTPIssued struct {
	Channel   enums.OTPChannel `json:"channel"`
	ExpiresAt time.Time        `json:"expires_at"`
	Code      string           `json:"code,omitempty"`
}
