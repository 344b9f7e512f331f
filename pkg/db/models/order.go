package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/eshop-register/backend/pkg/enums"
)

// Order is the aggregate root for a customer purchase. TotalAmount is
// derived: it must always equal the sum of the extended prices of the
// order's items.
type Order struct {
	ID              int64               `gorm:"column:id;primaryKey;autoIncrement"`
	UserID          int64               `gorm:"column:user_id;not null"`
	Status          enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'CREATED'"`
	PaymentStatus   enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'INITIATED'"`
	WarehouseID     int64               `gorm:"column:warehouse_id;not null;default:0"`
	TotalAmount     decimal.Decimal     `gorm:"column:total_amount;type:numeric(14,2);not null;default:0"`
	Currency        enums.Currency      `gorm:"column:currency;type:text;not null"`
	ShippingAddress string              `gorm:"column:shipping_address;not null"`
	BillingAddress  string              `gorm:"column:billing_address;not null"`
	Items           []OrderItem         `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
