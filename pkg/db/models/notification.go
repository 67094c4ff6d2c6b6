package models

import (
	"time"

	"github.com/smartlaundry/backend/pkg/enums"
)

// Notification is an in-app message. A nil UserID marks a broadcast visible
// to every user.
type Notification struct {
	ID        int64                  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    *int64                 `gorm:"column:user_id;index" json:"user_id"`
	Type      enums.NotificationType `gorm:"column:type;type:text;not null;default:'general'" json:"type"`
	Title     string                 `gorm:"column:title;not null" json:"title"`
	Message   string                 `gorm:"column:message;not null" json:"message"`
	OrderID   *int64                 `gorm:"column:order_id" json:"order_id"`
	IsRead    bool                   `gorm:"column:is_read;not null;default:false" json:"is_read"`
	IsActive  bool                   `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Order *Order `gorm:"foreignKey:OrderID;constraint:OnDelete:SET NULL" json:"-"`
}

// TableName pins the legacy table name.
func (Notification) TableName() string { return "notifications" }
