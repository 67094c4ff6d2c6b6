package models

import "time"

// ServiceCategory groups services such as Dry Cleaning or Steam Pressing.
type ServiceCategory struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"column:name;type:text;not null;uniqueIndex" json:"name"`
	Emoji       string    `gorm:"column:emoji" json:"emoji"`
	Description string    `gorm:"column:description" json:"description"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Services []Service `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"services,omitempty"`
}

// TableName pins the legacy table name.
func (ServiceCategory) TableName() string { return "service_categories" }
