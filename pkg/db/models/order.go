package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/smartlaundry/backend/pkg/enums"
)

// Order is a placed laundry order with a frozen price breakdown and a copy
// of the delivery address taken at placement time.
type Order struct {
	ID          int64             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OrderNumber string            `gorm:"column:order_number;type:text;not null;uniqueIndex" json:"order_number"`
	UserID      int64             `gorm:"column:user_id;not null;index" json:"user_id"`
	Status      enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`

	Subtotal       decimal.Decimal `gorm:"column:subtotal;type:numeric(10,2);not null" json:"subtotal"`
	TaxAmount      decimal.Decimal `gorm:"column:tax_amount;type:numeric(10,2);not null" json:"tax_amount"`
	DeliveryCharge decimal.Decimal `gorm:"column:delivery_charge;type:numeric(10,2);not null" json:"delivery_charge"`
	Discount       decimal.Decimal `gorm:"column:discount;type:numeric(10,2);not null;default:0" json:"discount"`
	TotalAmount    decimal.Decimal `gorm:"column:total_amount;type:numeric(10,2);not null" json:"total_amount"`

	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'pending'" json:"payment_status"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null;default:'cod'" json:"payment_method"`

	PickupAddress    string     `gorm:"column:pickup_address;not null" json:"pickup_address"`
	DeliveryAddress  string     `gorm:"column:delivery_address;not null" json:"delivery_address"`
	PickupDate       *time.Time `gorm:"column:pickup_date" json:"pickup_date"`
	PickupTimeSlot   string     `gorm:"column:pickup_time_slot" json:"pickup_time_slot"`
	DeliveryDate     *time.Time `gorm:"column:delivery_date" json:"delivery_date"`
	DeliveryTimeSlot string     `gorm:"column:delivery_time_slot" json:"delivery_time_slot"`

	SpecialInstructions string `gorm:"column:special_instructions" json:"special_instructions"`
	Notes               string `gorm:"column:notes" json:"notes"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	User     *User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Items    []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Tracking []OrderTracking `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"tracking,omitempty"`
}

// TableName pins the legacy table name.
func (Order) TableName() string { return "orders" }

// ItemCount sums quantities across all lines.
func (o Order) ItemCount() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}
