package models

import "time"

// Payment records a provider transaction against an order. Rows are
// append-only; no status transitions are modeled.
type Payment struct {
	ID                    int64     `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID               int64     `gorm:"column:order_id;not null;index"`
	PaymentProvider       string    `gorm:"column:payment_provider;not null"`
	ProviderTransactionID string    `gorm:"column:provider_transaction_id;not null"`
	CreatedAt             time.Time `gorm:"column:created_at;autoCreateTime"`
}
