package models

import (
	"strings"
	"time"

	"github.com/smartlaundry/backend/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID           int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Email        string         `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	Phone        string         `gorm:"column:phone;type:text;not null;uniqueIndex" json:"phone"`
	PasswordHash string         `gorm:"column:password_hash;not null" json:"-"`
	FirstName    string         `gorm:"column:first_name;not null" json:"first_name"`
	LastName     string         `gorm:"column:last_name;not null" json:"last_name"`
	Role         enums.UserRole `gorm:"column:role;type:text;not null;default:'user'" json:"role"`
	IsVerified   bool           `gorm:"column:is_verified;not null;default:false" json:"is_verified"`
	IsActive     bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`

	AddressLine1 string `gorm:"column:address_line1" json:"address_line1"`
	AddressLine2 string `gorm:"column:address_line2" json:"address_line2"`
	City         string `gorm:"column:city" json:"city"`
	State        string `gorm:"column:state" json:"state"`
	Pincode      string `gorm:"column:pincode" json:"pincode"`
	Country      string `gorm:"column:country;not null;default:'India'" json:"country"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName pins the legacy table name.
func (User) TableName() string { return "users" }

// FullName joins the first and last name, trimming when either is blank.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// FullAddress joins the populated address parts with commas.
func (u User) FullAddress() string {
	parts := []string{u.AddressLine1, u.AddressLine2, u.City, u.State, u.Pincode, u.Country}
	populated := parts[:0]
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			populated = append(populated, part)
		}
	}
	return strings.Join(populated, ", ")
}
