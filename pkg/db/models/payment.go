package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartlaundry/backend/pkg/enums"
)

// Payment records one payment attempt against an order.
type Payment struct {
	ID            int64                     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderID       int64                     `gorm:"column:order_id;not null;index" json:"order_id"`
	UserID        int64                     `gorm:"column:user_id;not null;index" json:"user_id"`
	Amount        decimal.Decimal           `gorm:"column:amount;type:numeric(10,2);not null" json:"amount"`
	Gateway       enums.PaymentGateway      `gorm:"column:gateway;type:text;not null" json:"gateway"`
	Status        enums.PaymentRecordStatus `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`
	TransactionID string                    `gorm:"column:transaction_id" json:"transaction_id"`
	GatewayRef    string                    `gorm:"column:gateway_ref" json:"gateway_ref"`
	FailureReason string                    `gorm:"column:failure_reason" json:"failure_reason"`
	CreatedAt     time.Time                 `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time                 `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Order *Order `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	User  *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName pins the legacy table name.
func (Payment) TableName() string { return "payments" }
