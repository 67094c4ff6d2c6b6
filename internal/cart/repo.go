package cart

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/smartlaundry/backend/pkg/db/models"
)

// Repository exposes persistence helpers for cart lines.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListByUser(ctx context.Context, userID int64) ([]models.CartItem, error)
	GetByID(ctx context.Context, id int64) (*models.CartItem, error)
	FindLine(ctx context.Context, userID, serviceID int64, optionID *int64) (*models.CartItem, error)
	Create(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, id int64, quantity int) error
	Delete(ctx context.Context, id int64) error
	DeleteByUser(ctx context.Context, userID int64) (int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a cart repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) ListByUser(ctx context.Context, userID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Option").
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repositoryImpl) GetByID(ctx context.Context, id int64) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Option").
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) FindLine(ctx context.Context, userID, serviceID int64, optionID *int64) (*models.CartItem, error) {
	query := r.db.WithContext(ctx).Where("user_id = ? AND service_id = ?", userID, serviceID)
	if optionID == nil {
		query = query.Where("option_id IS NULL")
	} else {
		query = query.Where("option_id = ?", *optionID)
	}

	var item models.CartItem
	err := query.First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *repositoryImpl) Create(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repositoryImpl) UpdateQuantity(ctx context.Context, id int64, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("id = ?", id).
		UpdateColumn("quantity", quantity).Error
}

func (r *repositoryImpl) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id).Error
}

func (r *repositoryImpl) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.CartItem{}, "user_id = ?", userID)
	return result.RowsAffected, result.Error
}

func (r *repositoryImpl) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.CartItem{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
