package models

import "time"

// SiteConfiguration is a key/value settings row exposed read-only to
// clients (support phone, business hours, announcement text and so on).
type SiteConfiguration struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Key         string `gorm:"column:key;type:text;not null;uniqueIndex" json:"key"`
	Value       string `gorm:"column:value;not null" json:"value"`
	Description string `gorm:"column:description" json:"description"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the legacy table name.
func (SiteConfiguration) TableName() string { return "site_configurations" }
