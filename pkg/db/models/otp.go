package models

import (
	"time"

	"github.com/smartlaundry/backend/pkg/enums"
)

// OTP stores one-time verification codes for phone/email confirmation and
// password resets.
type OTP struct {
	ID        int64            `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    int64            `gorm:"column:user_id;not null;index" json:"user_id"`
	Channel   enums.OTPChannel `gorm:"column:channel;type:text;not null" json:"channel"`
	Code      string           `gorm:"column:code;type:text;not null" json:"-"`
	IsUsed    bool             `gorm:"column:is_used;not null;default:false" json:"is_used"`
	ExpiresAt time.Time        `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName pins the legacy table name.
func (OTP) TableName() string { return "otps" }

// IsExpired reports whether the code is no longer redeemable.
func (o OTP) IsExpired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}
