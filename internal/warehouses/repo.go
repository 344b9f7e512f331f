package warehouses

import (
	"context"

	"gorm.io/gorm"

	"github.com/eshop-register/backend/pkg/db/models"
)

// Repository defines persistence operations for warehouses.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, warehouse *models.Warehouse) (*models.Warehouse, error)
	FindByID(ctx context.Context, id int64) (*models.Warehouse, error)
	// FindFirstActive returns the active warehouse with the lowest id,
	// or gorm.ErrRecordNotFound when none is active.
	FindFirstActive(ctx context.Context) (*models.Warehouse, error)
	List(ctx context.Context) ([]models.Warehouse, error)
	Update(ctx context.Context, id int64, updates map[string]any) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a warehouses repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, warehouse *models.Warehouse) (*models.Warehouse, error) {
	if err := r.db.WithContext(ctx).Create(warehouse).Error; err != nil {
		return nil, err
	}
	return warehouse, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&warehouse).Error
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *repository) FindFirstActive(ctx context.Context) (*models.Warehouse, error) {
	var warehouse models.Warehouse
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		First(&warehouse).Error
	if err != nil {
		return nil, err
	}
	return &warehouse, nil
}

func (r *repository) List(ctx context.Context) ([]models.Warehouse, error) {
	var items []models.Warehouse
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Warehouse{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Warehouse{}).Error
}
