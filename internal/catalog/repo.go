package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/smartlaundry/backend/pkg/db/models"
)

// Repository exposes read helpers for the service catalog plus review writes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListCategories(ctx context.Context, activeOnly bool) ([]models.ServiceCategory, error)
	GetCategory(ctx context.Context, id int64) (*models.ServiceCategory, error)

	ListServices(ctx context.Context, filter ServiceFilter) ([]models.Service, error)
	GetService(ctx context.Context, id int64) (*models.Service, error)
	GetServiceWithDetails(ctx context.Context, id int64) (*models.Service, error)

	ListOptions(ctx context.Context, serviceID int64) ([]models.ServiceOption, error)
	GetOption(ctx context.Context, id int64) (*models.ServiceOption, error)

	CreateReview(ctx context.Context, review *models.ServiceReview) error
	ListApprovedReviews(ctx context.Context, serviceID int64) ([]models.ServiceReview, error)
	HasUserReview(ctx context.Context, serviceID, userID int64) (bool, error)
}

// ServiceFilter narrows service listings.
type ServiceFilter struct {
	CategoryID int64
	ActiveOnly bool
	Search     string
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a catalog repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) ListCategories(ctx context.Context, activeOnly bool) ([]models.ServiceCategory, error) {
	query := r.db.WithContext(ctx).Model(&models.ServiceCategory{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var categories []models.ServiceCategory
	if err := query.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repositoryImpl) GetCategory(ctx context.Context, id int64) (*models.ServiceCategory, error) {
	var category models.ServiceCategory
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *repositoryImpl) ListServices(ctx context.Context, filter ServiceFilter) ([]models.Service, error) {
	query := r.db.WithContext(ctx).Model(&models.Service{})
	if filter.CategoryID > 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	var services []models.Service
	if err := query.Order("name ASC").Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *repositoryImpl) GetService(ctx context.Context, id int64) (*models.Service, error) {
	var service models.Service
	err := r.db.WithContext(ctx).First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *repositoryImpl) GetServiceWithDetails(ctx context.Context, id int64) (*models.Service, error) {
	var service models.Service
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Options", "is_active = ?", true).
		First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *repositoryImpl) ListOptions(ctx context.Context, serviceID int64) ([]models.ServiceOption, error) {
	query := r.db.WithContext(ctx).Model(&models.ServiceOption{}).Where("is_active = ?", true)
	if serviceID > 0 {
		query = query.Where("service_id = ?", serviceID)
	}
	var options []models.ServiceOption
	if err := query.Order("service_id ASC, name ASC").Find(&options).Error; err != nil {
		return nil, err
	}
	return options, nil
}

func (r *repositoryImpl) GetOption(ctx context.Context, id int64) (*models.ServiceOption, error) {
	var option models.ServiceOption
	err := r.db.WithContext(ctx).First(&option, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &option, nil
}

func (r *repositoryImpl) CreateReview(ctx context.Context, review *models.ServiceReview) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *repositoryImpl) ListApprovedReviews(ctx context.Context, serviceID int64) ([]models.ServiceReview, error) {
	var reviews []models.ServiceReview
	err := r.db.WithContext(ctx).
		Where("service_id = ? AND is_approved = ?", serviceID, true).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *repositoryImpl) HasUserReview(ctx context.Context, serviceID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ServiceReview{}).
		Where("service_id = ? AND user_id = ?", serviceID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
