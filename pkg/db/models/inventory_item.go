package models

import "time"

// InventoryItem tracks available/reserved counts per product and warehouse.
// The total quantity is derived (available + reserved) and never stored.
type InventoryItem struct {
	ID                int64     `gorm:"column:id;primaryKey;autoIncrement"`
	WarehouseID       int64     `gorm:"column:warehouse_id;not null;index"`
	ProductID         int64     `gorm:"column:product_id;not null;index"`
	QuantityAvailable int       `gorm:"column:quantity_available;not null;default:0"`
	QuantityReserved  int       `gorm:"column:quantity_reserved;not null;default:0"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName maps to the migrated table, which is named inventory rather
// than the pluralized default.
func (InventoryItem) TableName() string {
	return "inventory"
}
