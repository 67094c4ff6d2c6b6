package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartlaundry/backend/pkg/db/models"
	"github.com/smartlaundry/backend/pkg/enums"
)

// ItemParams is one requested order line.
type ItemParams struct {
	ServiceID int64
	OptionID  *int64
	Quantity  int
}

// CreateParams captures an order placement request.
type CreateParams struct {
	UserID              int64
	Items               []ItemParams
	PaymentMethod       enums.PaymentMethod
	PickupAddress       string
	DeliveryAddress     string
	PickupDate          *time.Time
	PickupTimeSlot      string
	DeliveryDate        *time.Time
	DeliveryTimeSlot    string
	SpecialInstructions string
	Notes               string
}

// ListParams filters an order listing. Admins see every order.
type ListParams struct {
	UserID  int64
	IsAdmin bool
	Status  enums.OrderStatus
	Limit   int
	Cursor  string
}

// ListResult wraps orders and the cursor for the next page.
type ListResult struct {
	Items  []models.Order `json:"items"`
	Cursor string         `json:"cursor"`
}

// UpdateStatusParams is the admin status-change payload. Description and
// Location default to the conventional tracking text when blank.
type UpdateStatusParams struct {
	OrderID     int64
	Status      enums.OrderStatus
	Description string
	Location    string
}

// DashboardOrder is the trimmed order view on the account dashboard.
type DashboardOrder struct {
	OrderNumber string            `json:"order_number"`
	Status      enums.OrderStatus `json:"status"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Dashboard aggregates the account home screen data.
type Dashboard struct {
	RecentOrders   []DashboardOrder `json:"recent_orders"`
	CartItemsCount int64            `json:"cart_items_count"`
	TotalSpent     decimal.Decimal  `json:"total_spent"`
}
