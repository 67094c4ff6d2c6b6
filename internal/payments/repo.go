package payments

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/smartlaundry/backend/pkg/db/models"
)

// Repository exposes persistence helpers for payment records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id int64) (*models.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Payment, error)
	ListAll(ctx context.Context) ([]models.Payment, error)
	UpdateStatus(ctx context.Context, id int64, status string, failureReason string) error
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a payments repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, id int64) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repositoryImpl) ListByUser(ctx context.Context, userID int64) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repositoryImpl) ListAll(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *repositoryImpl) UpdateStatus(ctx context.Context, id int64, status string, failureReason string) error {
	updates := map[string]any{"status": status}
	if failureReason != "" {
		updates["failure_reason"] = failureReason
	}
	return r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("id = ?", id).
		Updates(updates).Error
}
