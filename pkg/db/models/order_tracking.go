package models

import (
	"time"

	"github.com/smartlaundry/backend/pkg/enums"
)

// OrderTracking is one append-only entry in an order's status history.
type OrderTracking struct {
	ID          int64             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID     int64             `gorm:"column:order_id;not null;index" json:"order_id"`
	Status      enums.OrderStatus `gorm:"column:status;type:text;not null" json:"status"`
	Description string            `gorm:"column:description" json:"description"`
	Location    string            `gorm:"column:location" json:"location"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	Order *Order `gorm:"foreignKey:OrderID" json:"-"`
}

// TableName pins the legacy table name.
func (OrderTracking) TableName() string { return "order_tracking" }
