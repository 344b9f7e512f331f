package warehouses

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/eshop-register/backend/pkg/db/models"
	pkgerrors "github.com/eshop-register/backend/pkg/errors"
)

type stubRepo struct {
	warehouses map[int64]*models.Warehouse
}

func newStubRepo(items ...*models.Warehouse) *stubRepo {
	s := &stubRepo{warehouses: map[int64]*models.Warehouse{}}
	for _, w := range items {
		s.warehouses[w.ID] = w
	}
	return s
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, warehouse *models.Warehouse) (*models.Warehouse, error) {
	warehouse.ID = int64(len(s.warehouses) + 1)
	s.warehouses[warehouse.ID] = warehouse
	return warehouse, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*models.Warehouse, error) {
	warehouse, ok := s.warehouses[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return warehouse, nil
}

func (s *stubRepo) FindFirstActive(ctx context.Context) (*models.Warehouse, error) {
	var found *models.Warehouse
	for _, w := range s.warehouses {
		if !w.IsActive {
			continue
		}
		if found == nil || w.ID < found.ID {
			found = w
		}
	}
	if found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return found, nil
}

func (s *stubRepo) List(ctx context.Context) ([]models.Warehouse, error) {
	out := make([]models.Warehouse, 0, len(s.warehouses))
	for _, w := range s.warehouses {
		out = append(out, *w)
	}
	return out, nil
}

func (s *stubRepo) Update(ctx context.Context, id int64, updates map[string]any) error { return nil }
func (s *stubRepo) Delete(ctx context.Context, id int64) error                         { return nil }

func TestServiceCreateValidatesFields(t *testing.T) {
	svc, err := NewService(newStubRepo())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []CreateWarehouseInput{
		{WarehouseName: "", LocationCode: "CZ-PRG-01"},
		{WarehouseName: "Prague Central", LocationCode: ""},
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), input); pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
	}
}

func TestServiceCreateAndGet(t *testing.T) {
	svc, _ := NewService(newStubRepo())

	created, err := svc.Create(context.Background(), CreateWarehouseInput{
		WarehouseName: "Prague Central",
		LocationCode:  "CZ-PRG-01",
		IsActive:      true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	loaded, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loaded.WarehouseName != "Prague Central" || !loaded.IsActive {
		t.Fatalf("unexpected warehouse: %+v", loaded)
	}
}

func TestServiceGetMissing(t *testing.T) {
	svc, _ := NewService(newStubRepo())

	_, err := svc.Get(context.Background(), 404)
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
