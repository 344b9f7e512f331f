package reports

import (
	"context"

	"gorm.io/gorm"

	"github.com/eshop-register/backend/pkg/db/models"
)

// SalesSnapshot holds every table the sales report joins, read inside a
// single transaction so rows cannot interleave with concurrent writes.
type SalesSnapshot struct {
	Orders     []models.Order
	Items      []models.OrderItem
	Warehouses []models.Warehouse
}

// StockSnapshot holds the tables the stock report joins.
type StockSnapshot struct {
	Inventory  []models.InventoryItem
	Warehouses []models.Warehouse
	Products   []models.Product
}

// Repository reads consistent snapshots for report building.
type Repository interface {
	SalesSnapshot(ctx context.Context) (*SalesSnapshot, error)
	StockSnapshot(ctx context.Context) (*StockSnapshot, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a reports repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SalesSnapshot(ctx context.Context) (*SalesSnapshot, error) {
	var snap SalesSnapshot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id ASC").Find(&snap.Orders).Error; err != nil {
			return err
		}
		if err := tx.Order("id ASC").Find(&snap.Items).Error; err != nil {
			return err
		}
		return tx.Order("id ASC").Find(&snap.Warehouses).Error
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (r *repository) StockSnapshot(ctx context.Context) (*StockSnapshot, error) {
	var snap StockSnapshot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Order("id ASC").Find(&snap.Inventory).Error; err != nil {
			return err
		}
		if err := tx.Order("id ASC").Find(&snap.Warehouses).Error; err != nil {
			return err
		}
		return tx.Order("id ASC").Find(&snap.Products).Error
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}
