package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is a frozen order line. Service and option names plus the unit
// price are denormalized so later catalog edits never change a placed order.
type OrderItem struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID     int64           `gorm:"column:order_id;not null;index" json:"order_id"`
	ServiceID   int64           `gorm:"column:service_id;not null" json:"service_id"`
	OptionID    *int64          `gorm:"column:option_id" json:"option_id"`
	ServiceName string          `gorm:"column:service_name;not null" json:"service_name"`
	OptionName  string          `gorm:"column:option_name" json:"option_name"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null" json:"unit_price"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
	LineTotal   decimal.Decimal `gorm:"column:line_total;type:numeric(10,2);not null" json:"line_total"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Order *Order `gorm:"foreignKey:OrderID" json:"-"`
}

// TableName pins the legacy table name.
func (OrderItem) TableName() string { return "order_items" }
