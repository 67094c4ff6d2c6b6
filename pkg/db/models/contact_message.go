package models

import (
	"time"

	"github.com/smartlaundry/backend/pkg/enums"
)

// ContactMessage is an inbound support enquiry from the public contact form.
type ContactMessage struct {
	ID        int64               `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string              `gorm:"column:name;not null" json:"name"`
	Email     string              `gorm:"column:email;not null" json:"email"`
	Phone     string              `gorm:"column:phone" json:"phone"`
	Subject   string              `gorm:"column:subject;not null" json:"subject"`
	Message   string              `gorm:"column:message;not null" json:"message"`
	Status    enums.ContactStatus `gorm:"column:status;type:text;not null;default:'new'" json:"status"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the legacy table name.
func (ContactMessage) TableName() string { return "contact_messages" }
