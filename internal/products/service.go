package products

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eshop-register/backend/pkg/db/models"
	pkgerrors "github.com/eshop-register/backend/pkg/errors"
)

// CreateProductInput carries the fields of a new catalog entry.
type CreateProductInput struct {
	ProductName string
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
}

// UpdateProductInput lists the mutable product fields; nil means unchanged.
// Existing order items keep their snapshotted price and tax rate.
type UpdateProductInput struct {
	ProductName *string
	UnitPrice   *decimal.Decimal
	TaxRate     *decimal.Decimal
}

// Service exposes product catalog operations.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService builds a products service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if input.ProductName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if input.UnitPrice.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price must not be negative")
	}
	if input.TaxRate.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tax rate must not be negative")
	}
	product := &models.Product{
		ProductName: input.ProductName,
		UnitPrice:   input.UnitPrice,
		TaxRate:     input.TaxRate,
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return items, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateProductInput) (*models.Product, error) {
	updates := map[string]any{}
	if input.ProductName != nil {
		if *input.ProductName == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
		}
		updates["product_name"] = *input.ProductName
	}
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unit price must not be negative")
		}
		updates["unit_price"] = *input.UnitPrice
	}
	if input.TaxRate != nil {
		if input.TaxRate.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "tax rate must not be negative")
		}
		updates["tax_rate"] = *input.TaxRate
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no updatable fields provided")
	}
	updates["updated_at"] = time.Now().UTC()

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}
