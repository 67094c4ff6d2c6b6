package content

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/smartlaundry/backend/pkg/db/models"
	"github.com/smartlaundry/backend/pkg/enums"
)

// Repository covers the static site content tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListFAQs(ctx context.Context, category string) ([]models.FAQ, error)
	ListFAQCategories(ctx context.Context) ([]string, error)

	ListConfigurations(ctx context.Context) ([]models.SiteConfiguration, error)
	GetConfiguration(ctx context.Context, key string) (*models.SiteConfiguration, error)

	ListBanners(ctx context.Context) ([]models.Banner, error)

	CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error
	ListContactMessages(ctx context.Context, status enums.ContactStatus) ([]models.ContactMessage, error)
	UpdateContactStatus(ctx context.Context, id int64, status enums.ContactStatus) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a content repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) ListFAQs(ctx context.Context, category string) ([]models.FAQ, error) {
	query := r.db.WithContext(ctx).Where("is_active = ?", true)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var faqs []models.FAQ
	if err := query.Order("display_order ASC, id ASC").Find(&faqs).Error; err != nil {
		return nil, err
	}
	return faqs, nil
}

func (r *repositoryImpl) ListFAQCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&models.FAQ{}).
		Where("is_active = ? AND category <> ''", true).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repositoryImpl) ListConfigurations(ctx context.Context) ([]models.SiteConfiguration, error) {
	var configs []models.SiteConfiguration
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("key ASC").
		Find(&configs).Error
	if err != nil {
		return nil, err
	}
	return configs, nil
}

func (r *repositoryImpl) GetConfiguration(ctx context.Context, key string) (*models.SiteConfiguration, error) {
	var config models.SiteConfiguration
	err := r.db.WithContext(ctx).
		First(&config, "key = ? AND is_active = ?", key, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &config, nil
}

func (r *repositoryImpl) ListBanners(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC, id ASC").
		Find(&banners).Error
	if err != nil {
		return nil, err
	}
	return banners, nil
}

func (r *repositoryImpl) CreateContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *repositoryImpl) ListContactMessages(ctx context.Context, status enums.ContactStatus) ([]models.ContactMessage, error) {
	query := r.db.WithContext(ctx).Model(&models.ContactMessage{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var messages []models.ContactMessage
	if err := query.Order("created_at DESC, id DESC").Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *repositoryImpl) UpdateContactStatus(ctx context.Context, id int64, status enums.ContactStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	return result.RowsAffected, result.Error
}
