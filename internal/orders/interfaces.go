package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/smartlaundry/backend/pkg/db/models"
	"github.com/smartlaundry/backend/pkg/enums"
)

// CatalogReader is the slice of the catalog repository orders need to
// resolve and snapshot line prices.
type CatalogReader interface {
	GetService(ctx context.Context, id int64) (*models.Service, error)
	GetOption(ctx context.Context, id int64) (*models.ServiceOption, error)
}

// CartCounter provides the cart size for the dashboard.
type CartCounter interface {
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

// Notifier pushes in-app notifications on order events.
type Notifier interface {
	NotifyOrder(ctx context.Context, userID, orderID int64, title, message string, kind enums.NotificationType) error
}

// PaymentRecorder persists the initial payment record inside the placement
// transaction.
type PaymentRecorder interface {
	RecordOrderPayment(ctx context.Context, tx *gorm.DB, order *models.Order) error
}
