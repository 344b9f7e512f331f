package models

import "time"

// Warehouse is a fulfillment location. Only active warehouses are eligible
// for new-order assignment.
type Warehouse struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	WarehouseName string    `gorm:"column:warehouse_name;not null"`
	LocationCode  string    `gorm:"column:location_code;not null"`
	IsActive      bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
