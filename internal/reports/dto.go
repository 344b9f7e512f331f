package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/eshop-register/backend/pkg/enums"
)

// UnknownName is emitted when a referenced warehouse or product no longer
// exists at report time.
const UnknownName = "UNKNOWN"

// SalesRow is one order in the sales report. TotalAmount is the stored
// aggregate; TotalAmountCalculated is recomputed from the item snapshots so
// the two can be compared for drift.
type SalesRow struct {
	OrderID               int64               `json:"order_id"`
	UserID                int64               `json:"user_id"`
	OrderStatus           enums.OrderStatus   `json:"order_status"`
	PaymentStatus         enums.PaymentStatus `json:"payment_status"`
	TotalAmount           decimal.Decimal     `json:"total_amount"`
	Currency              enums.Currency      `json:"currency"`
	WarehouseName         string              `json:"warehouse_name"`
	CreatedAt             time.Time           `json:"created_at"`
	TotalItems            int                 `json:"total_items"`
	TotalAmountCalculated decimal.Decimal     `json:"total_amount_calculated"`
}

// StockRow is one inventory record in the stock report. QuantityTotal is
// derived (available + reserved).
type StockRow struct {
	InventoryID       int64  `json:"inventory_id"`
	WarehouseName     string `json:"warehouse_name"`
	ProductName       string `json:"product_name"`
	QuantityAvailable int    `json:"quantity_available"`
	QuantityReserved  int    `json:"quantity_reserved"`
	QuantityTotal     int    `json:"quantity_total"`
}
