package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a purchasable catalog entry with a base price. Options (if any)
// override the base price per garment type.
type Service struct {
	ID               int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	CategoryID       int64           `gorm:"column:category_id;not null;uniqueIndex:idx_services_category_name" json:"category_id"`
	Name             string          `gorm:"column:name;type:text;not null;uniqueIndex:idx_services_category_name" json:"name"`
	Emoji            string          `gorm:"column:emoji" json:"emoji"`
	Description      string          `gorm:"column:description" json:"description"`
	Price            decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	EstimatedMinutes int             `gorm:"column:estimated_minutes;not null;default:0" json:"estimated_minutes"`
	IsActive         bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Category *ServiceCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Options  []ServiceOption  `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

// TableName pins the legacy table name.
func (Service) TableName() string { return "services" }
