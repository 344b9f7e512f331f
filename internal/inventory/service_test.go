package inventory

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/eshop-register/backend/pkg/db/models"
	pkgerrors "github.com/eshop-register/backend/pkg/errors"
)

type stubRepo struct {
	items     map[int64]*models.InventoryItem
	createErr error
}

func newStubRepo(items ...*models.InventoryItem) *stubRepo {
	s := &stubRepo{items: map[int64]*models.InventoryItem{}}
	for _, item := range items {
		s.items[item.ID] = item
	}
	return s
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	item.ID = int64(len(s.items) + 1)
	s.items[item.ID] = item
	return item, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*models.InventoryItem, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (s *stubRepo) List(ctx context.Context) ([]models.InventoryItem, error) { return nil, nil }

func (s *stubRepo) ListByWarehouse(ctx context.Context, warehouseID int64) ([]models.InventoryItem, error) {
	var out []models.InventoryItem
	for _, item := range s.items {
		if item.WarehouseID == warehouseID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (s *stubRepo) ListByProduct(ctx context.Context, productID int64) ([]models.InventoryItem, error) {
	var out []models.InventoryItem
	for _, item := range s.items {
		if item.ProductID == productID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (s *stubRepo) Update(ctx context.Context, id int64, updates map[string]any) error { return nil }
func (s *stubRepo) Delete(ctx context.Context, id int64) error                         { return nil }

func TestServiceCreateValidatesFields(t *testing.T) {
	svc, err := NewService(newStubRepo(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []CreateInventoryInput{
		{WarehouseID: 0, ProductID: 1},
		{WarehouseID: 1, ProductID: 0},
		{WarehouseID: 1, ProductID: 1, QuantityAvailable: -1},
		{WarehouseID: 1, ProductID: 1, QuantityReserved: -1},
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), input); pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
	}
}

type stubStockInvalidator struct {
	calls int
}

func (s *stubStockInvalidator) InvalidateStock(ctx context.Context) { s.calls++ }

func TestServiceCreateInvalidatesStockCache(t *testing.T) {
	invalidator := &stubStockInvalidator{}
	svc, _ := NewService(newStubRepo(), invalidator)

	_, err := svc.Create(context.Background(), CreateInventoryInput{WarehouseID: 1, ProductID: 1, QuantityAvailable: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invalidator.calls != 1 {
		t.Fatalf("expected 1 invalidation, got %d", invalidator.calls)
	}

	// Declined writes leave the cached report alone.
	_, err = svc.Create(context.Background(), CreateInventoryInput{WarehouseID: 0, ProductID: 1})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if invalidator.calls != 1 {
		t.Fatalf("expected no invalidation on declined write, got %d", invalidator.calls)
	}
}

func TestServiceCreateMapsDuplicatePairToConflict(t *testing.T) {
	repo := newStubRepo()
	repo.createErr = errors.New(`ERROR: duplicate key value violates unique constraint "uq_inventory_warehouse_product"`)
	svc, _ := NewService(repo, nil)

	_, err := svc.Create(context.Background(), CreateInventoryInput{WarehouseID: 1, ProductID: 1, QuantityAvailable: 5})
	if pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestServiceListByWarehouse(t *testing.T) {
	svc, _ := NewService(newStubRepo(
		&models.InventoryItem{ID: 1, WarehouseID: 2, ProductID: 10, QuantityAvailable: 5},
		&models.InventoryItem{ID: 2, WarehouseID: 3, ProductID: 10, QuantityAvailable: 1},
	), nil)

	items, err := svc.ListByWarehouse(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].WarehouseID != 2 {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestServiceGetMissing(t *testing.T) {
	svc, _ := NewService(newStubRepo(), nil)

	_, err := svc.Get(context.Background(), 404)
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceUpdateRequiresFields(t *testing.T) {
	svc, _ := NewService(newStubRepo(&models.InventoryItem{ID: 1, WarehouseID: 1, ProductID: 1}), nil)

	_, err := svc.Update(context.Background(), 1, UpdateInventoryInput{})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
