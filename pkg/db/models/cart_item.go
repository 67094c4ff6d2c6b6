package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one line in a user's cart. At most one line exists per
// (user, service, option) combination; adding the same combination again
// is rejected as a conflict.
type CartItem struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_cart_items_user_service_option" json:"user_id"`
	ServiceID int64     `gorm:"column:service_id;not null;uniqueIndex:idx_cart_items_user_service_option" json:"service_id"`
	OptionID  *int64    `gorm:"column:option_id;uniqueIndex:idx_cart_items_user_service_option" json:"option_id"`
	Quantity  int       `gorm:"column:quantity;not null" json:"quantity"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	User    *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Service *Service       `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"service,omitempty"`
	Option  *ServiceOption `gorm:"foreignKey:OptionID;constraint:OnDelete:CASCADE" json:"option,omitempty"`
}

// TableName pins the legacy table name.
func (CartItem) TableName() string { return "cart_items" }

// UnitPrice resolves the effective price for the line. The option price wins
// when an option is attached.
func (c CartItem) UnitPrice() decimal.Decimal {
	if c.Option != nil {
		return c.Option.Price
	}
	if c.Service != nil {
		return c.Service.Price
	}
	return decimal.Zero
}

// LineTotal is quantity times the effective unit price.
func (c CartItem) LineTotal() decimal.Decimal {
	return c.UnitPrice().Mul(decimal.NewFromInt(int64(c.Quantity)))
}
