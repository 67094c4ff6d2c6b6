package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartlaundry/backend/pkg/auth"
	"github.com/smartlaundry/backend/pkg/config"
	"github.com/smartlaundry/backend/pkg/db"
	"github.com/smartlaundry/backend/pkg/db/models"
	"github.com/smartlaundry/backend/pkg/enums"
	pkgerrors "github.com/smartlaundry/backend/pkg/errors"
	"github.com/smartlaundry/backend/pkg/logger"
	"github.com/smartlaundry/backend/pkg/security"
)

// SessionStore persists refresh tokens between logins.
type SessionStore interface {
	StoreRefreshToken(ctx context.Context, userID int64, token string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, userID int64) (string, error)
	RevokeRefreshToken(ctx context.Context, userID int64) error
}

// Service defines registration, login, OTP and profile operations.
type Service interface {
	Register(ctx context.Context, params RegisterParams) (*AuthResult, error)
	Login(ctx context.Context, params LoginParams) (*AuthResult, error)
	Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, userID int64) error

	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, params UpdateProfileParams) (*models.User, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) (*OTPIssued, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) error

	GenerateOTP(ctx context.Context, userID int64, channel enums.OTPChannel) (*OTPIssued, error)
	VerifyOTP(ctx context.Context, userID int64, channel enums.OTPChannel, code string) error
}

type service struct {
	repo     Repository
	sessions SessionStore
	cfg      *config.Config
	logg     *logger.Logger
}

// NewService wires identity dependencies.
func NewService(repo Repository, sessions SessionStore, cfg *config.Config, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "identity repository required")
	}
	if sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "session store required")
	}
	if cfg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "config required")
	}
	return &service{repo: repo, sessions: sessions, cfg: cfg, logg: logg}, nil
}

func (s *service) Register(ctx context.Context, params RegisterParams) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	phone := strings.TrimSpace(params.Phone)
	if email == "" || phone == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and phone are required")
	}
	if params.Password != params.ConfirmPassword {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "passwords do not match")
	}
	if len(params.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	if existing, err := s.repo.GetUserByEmail(ctx, email); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup email")
	} else if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
	}
	if existing, err := s.repo.GetUserByPhone(ctx, phone); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup phone")
	} else if existing != nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "phone already registered")
	}

	hash, err := security.HashPassword(params.Password, s.cfg.Password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(params.FirstName),
		LastName:     strings.TrimSpace(params.LastName),
		Role:         enums.UserRoleUser,
		IsActive:     true,
		Country:      "India",
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email or phone already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}

	if _, err := s.issueOTP(ctx, user.ID, enums.OTPChannelPhone); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "issuing verification otp failed")
	}

	tokens, err := s.mintTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: *tokens}, nil
}

func (s *service) Login(ctx context.Context, params LoginParams) (*AuthResult, error) {
	if params.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password is required")
	}

	var (
		user *models.User
		err  error
	)
	switch {
	case strings.TrimSpace(params.Email) != "":
		user, err = s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(params.Email)))
	case strings.TrimSpace(params.Phone) != "":
		user, err = s.repo.GetUserByPhone(ctx, strings.TrimSpace(params.Phone))
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email or phone is required")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}
	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is disabled")
	}

	ok, err := security.VerifyPassword(params.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	tokens, err := s.mintTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: *tokens}, nil
}

func (s *service) Refresh(ctx context.Context, accessToken, refreshToken string) (*TokenPair, error) {
	if accessToken == "" || refreshToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "access and refresh tokens are required")
	}

	claims, err := auth.ParseAccessTokenAllowExpired(s.cfg.JWT, accessToken)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid access token")
	}

	stored, err := s.sessions.GetRefreshToken(ctx, claims.UserID)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "session expired")
	}
	if stored == "" || stored != refreshToken {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "refresh token mismatch")
	}

	user, err := s.repo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if user == nil || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account unavailable")
	}

	return s.mintTokenPair(ctx, user)
}

func (s *service) Logout(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if err := s.sessions.RevokeRefreshToken(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoke session")
	}
	return nil
}

func (s *service) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, params UpdateProfileParams) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	apply(&user.FirstName, params.FirstName)
	apply(&user.LastName, params.LastName)
	apply(&user.AddressLine1, params.AddressLine1)
	apply(&user.AddressLine2, params.AddressLine2)
	apply(&user.City, params.City)
	apply(&user.State, params.State)
	apply(&user.Pincode, params.Pincode)
	apply(&user.Country, params.Country)

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return user, nil
}

func (s *service) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := security.VerifyPassword(oldPassword, user.PasswordHash)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "current password is incorrect")
	}

	hash, err := security.HashPassword(newPassword, s.cfg.Password)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	user.PasswordHash = hash
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}

	// Force re-login everywhere after a password change.
	if err := s.sessions.RevokeRefreshToken(ctx, userID); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "revoking session after password change failed")
	}
	return nil
}

func (s *service) ForgotPassword(ctx context.Context, email string) (*OTPIssued, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if user == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no account for that email")
	}
	return s.issueOTP(ctx, user.ID, enums.OTPChannelEmail)
}

func (s *service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if len(newPassword) < 8 {
		return pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}

	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	if user == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "no account for that email")
	}

	if err := s.consumeOTP(ctx, user.ID, enums.OTPChannelEmail, code); err != nil {
		return err
	}

	hash, err := security.HashPassword(newPassword, s.cfg.Password)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	user.PasswordHash = hash
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}

	if err := s.sessions.RevokeRefreshToken(ctx, user.ID); err != nil && s.logg != nil {
		s.logg.Warn(ctx, "revoking session after password reset failed")
	}
	return nil
}

func (s *service) GenerateOTP(ctx context.Context, userID int64, channel enums.OTPChannel) (*OTPIssued, error) {
	if !channel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid otp channel")
	}
	if _, err := s.GetProfile(ctx, userID); err != nil {
		return nil, err
	}
	return s.issueOTP(ctx, userID, channel)
}

func (s *service) VerifyOTP(ctx context.Context, userID int64, channel enums.OTPChannel, code string) error {
	if !channel.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid otp channel")
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.consumeOTP(ctx, userID, channel, code); err != nil {
		return err
	}

	if channel == enums.OTPChannelPhone && !user.IsVerified {
		user.IsVerified = true
		if err := s.repo.UpdateUser(ctx, user); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
		}
	}
	return nil
}

func (s *service) issueOTP(ctx context.Context, userID int64, channel enums.OTPChannel) (*OTPIssued, error) {
	if err := s.repo.InvalidateOTPs(ctx, userID, channel); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invalidate otps")
	}

	code, err := security.GenerateOTPCode(s.cfg.OTP.Digits)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate otp")
	}

	otp := &models.OTP{
		UserID:    userID,
		Channel:   channel,
		Code:      code,
		ExpiresAt: time.Now().UTC().Add(s.cfg.OTP.TTL),
	}
	if err := s.repo.CreateOTP(ctx, otp); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store otp")
	}

	// TODO: deliver via SMS/email provider once one is contracted.
	issued := &OTPIssued{Channel: channel, ExpiresAt: otp.ExpiresAt}
	if s.cfg.OTP.EchoCode {
		issued.Code = code
	}
	return issued, nil
}

func (s *service) consumeOTP(ctx context.Context, userID int64, channel enums.OTPChannel, code string) error {
	if strings.TrimSpace(code) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "otp code required")
	}

	otp, err := s.repo.LatestActiveOTP(ctx, userID, channel, time.Now().UTC())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup otp")
	}
	if otp == nil || otp.Code != strings.TrimSpace(code) {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired otp")
	}

	if err := s.repo.MarkOTPUsed(ctx, otp.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume otp")
	}
	return nil
}

func (s *service) mintTokenPair(ctx context.Context, user *models.User) (*TokenPair, error) {
	access, err := auth.MintAccessToken(s.cfg.JWT, time.Now().UTC(), auth.AccessTokenPayload{
		UserID:     user.ID,
		Role:       user.Role,
		IsVerified: user.IsVerified,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refresh := uuid.NewString()
	if err := s.sessions.StoreRefreshToken(ctx, user.ID, refresh, s.cfg.JWT.RefreshTokenTTL()); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store refresh token")
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
