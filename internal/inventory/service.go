package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/eshop-register/backend/pkg/db"
	"github.com/eshop-register/backend/pkg/db/models"
	pkgerrors "github.com/eshop-register/backend/pkg/errors"
)

// uniqueWarehouseProduct is the index guarding one stock row per
// warehouse/product pair.
const uniqueWarehouseProduct = "uq_inventory_warehouse_product"

// stockReportInvalidator drops the cached stock report after an inventory
// write. A nil invalidator is allowed; stale entries then expire with the TTL.
type stockReportInvalidator interface {
	InvalidateStock(ctx context.Context)
}

// CreateInventoryInput carries the fields of a new inventory record.
type CreateInventoryInput struct {
	WarehouseID       int64
	ProductID         int64
	QuantityAvailable int
	QuantityReserved  int
}

// UpdateInventoryInput lists the mutable inventory fields; nil means unchanged.
type UpdateInventoryInput struct {
	WarehouseID       *int64
	ProductID         *int64
	QuantityAvailable *int
	QuantityReserved  *int
}

// Service exposes inventory operations.
type Service interface {
	Create(ctx context.Context, input CreateInventoryInput) (*models.InventoryItem, error)
	Get(ctx context.Context, id int64) (*models.InventoryItem, error)
	List(ctx context.Context) ([]models.InventoryItem, error)
	ListByWarehouse(ctx context.Context, warehouseID int64) ([]models.InventoryItem, error)
	ListByProduct(ctx context.Context, productID int64) ([]models.InventoryItem, error)
	Update(ctx context.Context, id int64, input UpdateInventoryInput) (*models.InventoryItem, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo    Repository
	reports stockReportInvalidator
}

// NewService builds an inventory service. The reports invalidator may be nil.
func NewService(repo Repository, reports stockReportInvalidator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo, reports: reports}, nil
}

func (s *service) invalidateStock(ctx context.Context) {
	if s.reports != nil {
		s.reports.InvalidateStock(ctx)
	}
}

func (s *service) Create(ctx context.Context, input CreateInventoryInput) (*models.InventoryItem, error) {
	if input.WarehouseID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
	}
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.QuantityAvailable < 0 || input.QuantityReserved < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantities must not be negative")
	}
	item := &models.InventoryItem{
		WarehouseID:       input.WarehouseID,
		ProductID:         input.ProductID,
		QuantityAvailable: input.QuantityAvailable,
		QuantityReserved:  input.QuantityReserved,
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		if db.IsUniqueViolation(err, uniqueWarehouseProduct) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "inventory record already exists for warehouse and product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory record")
	}
	s.invalidateStock(ctx)
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory record")
	}
	return item, nil
}

func (s *service) List(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory")
	}
	return items, nil
}

func (s *service) ListByWarehouse(ctx context.Context, warehouseID int64) ([]models.InventoryItem, error) {
	items, err := s.repo.ListByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory by warehouse")
	}
	return items, nil
}

func (s *service) ListByProduct(ctx context.Context, productID int64) ([]models.InventoryItem, error) {
	items, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory by product")
	}
	return items, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateInventoryInput) (*models.InventoryItem, error) {
	updates := map[string]any{}
	if input.WarehouseID != nil {
		if *input.WarehouseID <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse id required")
		}
		updates["warehouse_id"] = *input.WarehouseID
	}
	if input.ProductID != nil {
		if *input.ProductID <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
		}
		updates["product_id"] = *input.ProductID
	}
	if input.QuantityAvailable != nil {
		if *input.QuantityAvailable < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantities must not be negative")
		}
		updates["quantity_available"] = *input.QuantityAvailable
	}
	if input.QuantityReserved != nil {
		if *input.QuantityReserved < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantities must not be negative")
		}
		updates["quantity_reserved"] = *input.QuantityReserved
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no updatable fields provided")
	}
	updates["updated_at"] = time.Now().UTC()

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		if db.IsUniqueViolation(err, uniqueWarehouseProduct) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "inventory record already exists for warehouse and product")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory record")
	}
	s.invalidateStock(ctx)
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete inventory record")
	}
	s.invalidateStock(ctx)
	return nil
}
