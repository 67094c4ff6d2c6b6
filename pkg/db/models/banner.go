package models

import "time"

// Banner is a promotional slide shown on the home screen while within its
// optional active window.
type Banner struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title        string     `gorm:"column:title;not null" json:"title"`
	Subtitle     string     `gorm:"column:subtitle" json:"subtitle"`
	ImageURL     string     `gorm:"column:image_url" json:"image_url"`
	LinkURL      string     `gorm:"column:link_url" json:"link_url"`
	DisplayOrder int        `gorm:"column:display_order;not null;default:0" json:"display_order"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	StartsAt     *time.Time `gorm:"column:starts_at" json:"starts_at"`
	EndsAt       *time.Time `gorm:"column:ends_at" json:"ends_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the legacy table name.
func (Banner) TableName() string { return "banners" }

// IsLive reports whether the banner should be displayed at the given time.
func (b Banner) IsLive(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.StartsAt != nil && now.Before(*b.StartsAt) {
		return false
	}
	if b.EndsAt != nil && now.After(*b.EndsAt) {
		return false
	}
	return true
}
