package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry. TaxRate is a fraction (0.21 = 21%).
type Product struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	ProductName string          `gorm:"column:product_name;not null"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	TaxRate     decimal.Decimal `gorm:"column:tax_rate;type:numeric(6,4);not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
