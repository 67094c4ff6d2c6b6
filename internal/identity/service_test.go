package identity

import (
	"context"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/smartlaundry/backend/pkg/config"
	"github.com/smartlaundry/backend/pkg/db/models"
	"github.com/smartlaundry/backend/pkg/enums"
	pkgerrors "github.com/smartlaundry/backend/pkg/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:                 "test-secret",
			Issuer:                 "smartlaundry-test",
			ExpirationMinutes:      30,
			RefreshTokenTTLMinutes: 60,
		},
		Password: config.PasswordConfig{
			ArgonMemoryKB:    8,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
		OTP: config.OTPConfig{
			Digits:   6,
			TTL:      10 * time.Minute,
			EchoCode: true,
		},
	}
}

type fakeRepo struct {
	users  map[int64]*models.User
	otps   []*models.OTP
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[int64]*models.User{}, nextID: 1}
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepo) CreateUser(ctx context.Context, user *models.User) error {
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	for _, u := range f.users {
		if u.Phone == phone {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) UpdateUser(ctx context.Context, user *models.User) error {
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeRepo) CreateOTP(ctx context.Context, otp *models.OTP) error {
	otp.ID = f.nextID
	f.nextID++
	copied := *otp
	f.otps = append(f.otps, &copied)
	return nil
}

func (f *fakeRepo) LatestActiveOTP(ctx context.Context, userID int64, channel enums.OTPChannel, now time.Time) (*models.OTP, error) {
	for i := len(f.otps) - 1; i >= 0; i-- {
		otp := f.otps[i]
		if otp.UserID == userID && otp.Channel == channel && !otp.IsUsed && otp.ExpiresAt.After(now) {
			copied := *otp
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) MarkOTPUsed(ctx context.Context, otpID int64) error {
	for _, otp := range f.otps {
		if otp.ID == otpID {
			otp.IsUsed = true
		}
	}
	return nil
}

func (f *fakeRepo) InvalidateOTPs(ctx context.Context, userID int64, channel enums.OTPChannel) error {
	for _, otp := range f.otps {
		if otp.UserID == userID && otp.Channel == channel {
			otp.IsUsed = true
		}
	}
	return nil
}

type fakeSessions struct {
	tokens map[int64]string
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: map[int64]string{}}
}

func (f *fakeSessions) StoreRefreshToken(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	f.tokens[userID] = token
	return nil
}

func (f *fakeSessions) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	return f.tokens[userID], nil
}

func (f *fakeSessions) RevokeRefreshToken(ctx context.Context, userID int64) error {
	delete(f.tokens, userID)
	return nil
}

func newTestService(t *testing.T) (Service, *fakeRepo, *fakeSessions) {
	t.Helper()
	repo := newFakeRepo()
	sessions := newFakeSessions()
	svc, err := NewService(repo, sessions, testConfig(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, repo, sessions
}

func registerParams() RegisterParams {
	return RegisterParams{
		Email:           "jane@example.com",
		Phone:           "+919876543210",
		Password:        "password123",
		ConfirmPassword: "password123",
		FirstName:       "Jane",
		LastName:        "Doe",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo, sessions := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, registerParams())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.User.ID == 0 {
		t.Fatal("expected assigned user id")
	}
	if result.User.Role != enums.UserRoleUser {
		t.Fatalf("expected user role, got %q", result.User.Role)
	}
	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if sessions.tokens[result.User.ID] != result.Tokens.RefreshToken {
		t.Fatal("refresh token not stored")
	}
	if stored := repo.users[result.User.ID]; stored.PasswordHash == "password123" || stored.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}

	login, err := svc.Login(ctx, LoginParams{Email: "jane@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if login.User.ID != result.User.ID {
		t.Fatal("login returned wrong user")
	}

	if _, err := svc.Login(ctx, LoginParams{Email: "jane@example.com", Password: "wrong"}); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for bad password, got %v", err)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerParams()); err != nil {
		t.Fatalf("register: %v", err)
	}

	dup := registerParams()
	dup.Phone = "+911111111111"
	if _, err := svc.Register(ctx, dup); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}

	dup = registerParams()
	dup.Email = "other@example.com"
	if _, err := svc.Register(ctx, dup); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate phone, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	mismatch := registerParams()
	mismatch.ConfirmPassword = "different123"
	if _, err := svc.Register(ctx, mismatch); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for password mismatch, got %v", err)
	}

	short := registerParams()
	short.Password = "short"
	short.ConfirmPassword = "short"
	if _, err := svc.Register(ctx, short); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for short password, got %v", err)
	}
}

func TestRefreshRotatesTokens(t *testing.T) {
	svc, _, sessions := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, registerParams())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	pair, err := svc.Refresh(ctx, result.Tokens.AccessToken, result.Tokens.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.RefreshToken == result.Tokens.RefreshToken {
		t.Fatal("expected rotated refresh token")
	}
	if sessions.tokens[result.User.ID] != pair.RefreshToken {
		t.Fatal("rotated token not stored")
	}

	// The old refresh token must no longer work.
	if _, err := svc.Refresh(ctx, result.Tokens.AccessToken, result.Tokens.RefreshToken); err == nil {
		t.Fatal("expected stale refresh token to be rejected")
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, registerParams())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := svc.Logout(ctx, result.User.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, ok := sessions.tokens[result.User.ID]; ok {
		t.Fatal("expected session removed")
	}
}

func TestVerifyOTPMarksPhoneVerified(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, registerParams())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	userID := result.User.ID

	issued, err := svc.GenerateOTP(ctx, userID, enums.OTPChannelPhone)
	if err != nil {
		t.Fatalf("generate otp: %v", err)
	}
	if len(issued.Code) != 6 {
		t.Fatalf("expected echoed 6-digit code, got %q", issued.Code)
	}

	if err := svc.VerifyOTP(ctx, userID, enums.OTPChannelPhone, "000000x"); err == nil {
		t.Fatal("expected wrong code to fail")
	}
	if err := svc.VerifyOTP(ctx, userID, enums.OTPChannelPhone, issued.Code); err != nil {
		t.Fatalf("verify otp: %v", err)
	}
	if !repo.users[userID].IsVerified {
		t.Fatal("expected user marked verified")
	}

	// Codes are single use.
	if err := svc.VerifyOTP(ctx, userID, enums.OTPChannelPhone, issued.Code); err == nil {
		t.Fatal("expected reused code to fail")
	}
}

func TestGenerateOTPInvalidatesPrevious(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, registerParams())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	userID := result.User.ID

	first, err := svc.GenerateOTP(ctx, userID, enums.OTPChannelEmail)
	if err != nil {
		t.Fatalf("generate first otp: %v", err)
	}
	if _, err := svc.GenerateOTP(ctx, userID, enums.OTPChannelEmail); err != nil {
		t.Fatalf("generate second otp: %v", err)
	}

	if err := svc.VerifyOTP(ctx, userID, enums.OTPChannelEmail, first.Code); err == nil {
		t.Fatal("expected superseded code to fail")
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerParams()); err != nil {
		t.Fatalf("register: %v", err)
	}

	issued, err := svc.ForgotPassword(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("forgot password: %v", err)
	}
	if issued.Channel != enums.OTPChannelEmail {
		t.Fatalf("expected email channel, got %q", issued.Channel)
	}

	if err := svc.ResetPassword(ctx, "jane@example.com", issued.Code, "new-password-1"); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	if _, err := svc.Login(ctx, LoginParams{Email: "jane@example.com", Password: "password123"}); err == nil {
		t.Fatal("old password should no longer work")
	}
	if _, err := svc.Login(ctx, LoginParams{Email: "jane@example.com", Password: "new-password-1"}); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	if _, err := svc.ForgotPassword(ctx, "stranger@example.com"); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown email, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, sessions := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, registerParams())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	userID := result.User.ID

	if err := svc.ChangePassword(ctx, userID, "wrong", "another-password"); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for wrong current password, got %v", err)
	}

	if err := svc.ChangePassword(ctx, userID, "password123", "another-password"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, ok := sessions.tokens[userID]; ok {
		t.Fatal("expected session revoked after password change")
	}
	if _, err := svc.Login(ctx, LoginParams{Email: "jane@example.com", Password: "another-password"}); err != nil {
		t.Fatalf("login with changed password: %v", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, registerParams())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	city := "  Pune "
	line1 := "12 MG Road"
	updated, err := svc.UpdateProfile(ctx, result.User.ID, UpdateProfileParams{
		City:         &city,
		AddressLine1: &line1,
	})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if updated.City != "Pune" {
		t.Fatalf("expected trimmed city, got %q", updated.City)
	}
	if updated.AddressLine1 != "12 MG Road" {
		t.Fatalf("unexpected address %q", updated.AddressLine1)
	}
	if updated.FirstName != "Jane" {
		t.Fatal("untouched fields must be preserved")
	}
	if !strings.Contains(updated.FullAddress(), "Pune") {
		t.Fatalf("full address missing city: %q", updated.FullAddress())
	}
}
