package models

import "time"

// ServiceReview is a customer rating for a service. One review per
// (service, user); reviews are listed only once approved.
type ServiceReview struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ServiceID  int64     `gorm:"column:service_id;not null;uniqueIndex:idx_service_reviews_service_user" json:"service_id"`
	UserID     int64     `gorm:"column:user_id;not null;uniqueIndex:idx_service_reviews_service_user" json:"user_id"`
	Rating     int       `gorm:"column:rating;not null" json:"rating"`
	Comment    string    `gorm:"column:comment" json:"comment"`
	IsApproved bool      `gorm:"column:is_approved;not null;default:false" json:"is_approved"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Service *Service `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"-"`
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName pins the legacy table name.
func (ServiceReview) TableName() string { return "service_reviews" }
