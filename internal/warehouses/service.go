package warehouses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/eshop-register/backend/pkg/db/models"
	pkgerrors "github.com/eshop-register/backend/pkg/errors"
)

// CreateWarehouseInput carries the fields of a new warehouse.
type CreateWarehouseInput struct {
	WarehouseName string
	LocationCode  string
	IsActive      bool
}

// UpdateWarehouseInput lists the mutable warehouse fields; nil means unchanged.
type UpdateWarehouseInput struct {
	WarehouseName *string
	LocationCode  *string
	IsActive      *bool
}

// Service exposes warehouse operations.
type Service interface {
	Create(ctx context.Context, input CreateWarehouseInput) (*models.Warehouse, error)
	Get(ctx context.Context, id int64) (*models.Warehouse, error)
	List(ctx context.Context) ([]models.Warehouse, error)
	Update(ctx context.Context, id int64, input UpdateWarehouseInput) (*models.Warehouse, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService builds a warehouses service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("warehouses repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateWarehouseInput) (*models.Warehouse, error) {
	if input.WarehouseName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse name required")
	}
	if input.LocationCode == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location code required")
	}
	warehouse := &models.Warehouse{
		WarehouseName: input.WarehouseName,
		LocationCode:  input.LocationCode,
		IsActive:      input.IsActive,
	}
	created, err := s.repo.Create(ctx, warehouse)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create warehouse")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Warehouse, error) {
	warehouse, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load warehouse")
	}
	return warehouse, nil
}

func (s *service) List(ctx context.Context) ([]models.Warehouse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list warehouses")
	}
	return items, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateWarehouseInput) (*models.Warehouse, error) {
	updates := map[string]any{}
	if input.WarehouseName != nil {
		if *input.WarehouseName == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "warehouse name required")
		}
		updates["warehouse_name"] = *input.WarehouseName
	}
	if input.LocationCode != nil {
		if *input.LocationCode == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "location code required")
		}
		updates["location_code"] = *input.LocationCode
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no updatable fields provided")
	}
	updates["updated_at"] = time.Now().UTC()

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update warehouse")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete warehouse")
	}
	return nil
}
