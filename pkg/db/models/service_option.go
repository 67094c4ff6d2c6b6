package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceOption is a named price variant of a service (e.g. "Shirt" vs
// "T-Shirt"). When a cart or order line references an option, the option
// price supersedes the service base price.
type ServiceOption struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ServiceID int64           `gorm:"column:service_id;not null;uniqueIndex:idx_service_options_service_name" json:"service_id"`
	Name      string          `gorm:"column:name;type:text;not null;uniqueIndex:idx_service_options_service_name" json:"name"`
	Emoji     string          `gorm:"column:emoji" json:"emoji"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	IsActive  bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"-"`
}

// TableName pins the legacy table name.
func (ServiceOption) TableName() string { return "service_options" }
