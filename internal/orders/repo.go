package orders

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/smartlaundry/backend/pkg/db/models"
	"github.com/smartlaundry/backend/pkg/enums"
	"github.com/smartlaundry/backend/pkg/pagination"
)

// Repository exposes persistence helpers for orders, items and tracking.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context, params listOrdersParams) ([]models.Order, *pagination.Cursor, error)
	UpdateStatus(ctx context.Context, id int64, status enums.OrderStatus) error
	AddTracking(ctx context.Context, entry *models.OrderTracking) error
	ListTracking(ctx context.Context, orderID int64) ([]models.OrderTracking, error)

	RecentByUser(ctx context.Context, userID int64, limit int) ([]models.Order, error)
	TotalSpentByUser(ctx context.Context, userID int64) (decimal.Decimal, error)
}

type listOrdersParams struct {
	UserID int64 // zero means all users (admin)
	Status enums.OrderStatus
	Limit  int
	Cursor *pagination.Cursor
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns an orders repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

// scopeOwner restricts a query to one user unless userID is zero.
func scopeOwner(userID int64) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if userID > 0 {
			return db.Where("user_id = ?", userID)
		}
		return db
	}
}

func (r *repositoryImpl) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repositoryImpl) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Tracking", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC, id ASC")
		}).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repositoryImpl) List(ctx context.Context, params listOrdersParams) ([]models.Order, *pagination.Cursor, error) {
	limit := pagination.LimitWithBuffer(params.Limit)
	normalized := pagination.NormalizeLimit(params.Limit)

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Scopes(scopeOwner(params.UserID)).
		Preload("Items")
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Cursor != nil {
		// The cursor names the first row of the next page, so it is inclusive.
		query = query.Where("(created_at, id) <= (?, ?)", params.Cursor.CreatedAt, params.Cursor.ID)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC, id DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, nil, err
	}

	if len(orders) > normalized {
		next := orders[normalized]
		orders = orders[:normalized]
		return orders, &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID}, nil
	}
	return orders, nil, nil
}

func (r *repositoryImpl) UpdateStatus(ctx context.Context, id int64, status enums.OrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
}

func (r *repositoryImpl) AddTracking(ctx context.Context, entry *models.OrderTracking) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repositoryImpl) ListTracking(ctx context.Context, orderID int64) ([]models.OrderTracking, error) {
	var entries []models.OrderTracking
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repositoryImpl) RecentByUser(ctx context.Context, userID int64, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Scopes(scopeOwner(userID)).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repositoryImpl) TotalSpentByUser(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Scopes(scopeOwner(userID)).
		Where("status = ?", enums.OrderStatusDelivered).
		Select("SUM(total_amount)").
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
