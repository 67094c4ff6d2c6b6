package identity

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/smartlaundry/backend/pkg/db/models"
	"github.com/smartlaundry/backend/pkg/enums"
)

// Repository exposes persistence helpers for users and OTP codes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error

	CreateOTP(ctx context.Context, otp *models.OTP) error
	LatestActiveOTP(ctx context.Context, userID int64, channel enums.OTPChannel, now time.Time) (*models.OTP, error)
	MarkOTPUsed(ctx context.Context, otpID int64) error
	InvalidateOTPs(ctx context.Context, userID int64, channel enums.OTPChannel) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an identity repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) CreateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repositoryImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repositoryImpl) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repositoryImpl) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).First(&user, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repositoryImpl) UpdateUser(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *repositoryImpl) CreateOTP(ctx context.Context, otp *models.OTP) error {
	return r.db.WithContext(ctx).Create(otp).Error
}

func (r *repositoryImpl) LatestActiveOTP(ctx context.Context, userID int64, channel enums.OTPChannel, now time.Time) (*models.OTP, error) {
	var otp models.OTP
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND channel = ? AND is_used = ? AND expires_at > ?", userID, channel, false, now).
		Order("created_at DESC, id DESC").
		First(&otp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *repositoryImpl) MarkOTPUsed(ctx context.Context, otpID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.OTP{}).
		Where("id = ?", otpID).
		UpdateColumn("is_used", true).Error
}

func (r *repositoryImpl) InvalidateOTPs(ctx context.Context, userID int64, channel enums.OTPChannel) error {
	return r.db.WithContext(ctx).
		Model(&models.OTP{}).
		Where("user_id = ? AND channel = ? AND is_used = ?", userID, channel, false).
		UpdateColumn("is_used", true).Error
}
