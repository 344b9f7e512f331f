package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem captures the snapshot of one order line. UnitPrice and TaxRate
// are copied from the product at insertion time and never re-read, so later
// product edits cannot skew the order total.
type OrderItem struct {
	ID        int64               `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   int64               `gorm:"column:order_id;not null;index"`
	ProductID int64               `gorm:"column:product_id;not null"`
	Quantity  int                 `gorm:"column:quantity;not null"`
	UnitPrice decimal.Decimal     `gorm:"column:unit_price;type:numeric(12,2);not null"`
	TaxRate   decimal.NullDecimal `gorm:"column:tax_rate;type:numeric(6,4)"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
}
