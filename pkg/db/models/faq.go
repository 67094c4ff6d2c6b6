package models

import "time"

// FAQ is a published question/answer pair ordered by DisplayOrder.
type FAQ struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Question     string    `gorm:"column:question;not null" json:"question"`
	Answer       string    `gorm:"column:answer;not null" json:"answer"`
	Category     string    `gorm:"column:category" json:"category"`
	DisplayOrder int       `gorm:"column:display_order;not null;default:0" json:"display_order"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the legacy table name.
func (FAQ) TableName() string { return "faqs" }
