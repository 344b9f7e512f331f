package payments

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/eshop-register/backend/pkg/db/models"
	pkgerrors "github.com/eshop-register/backend/pkg/errors"
)

type stubRepo struct {
	payments []models.Payment
}

func (s *stubRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubRepo) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	payment.ID = int64(len(s.payments) + 1)
	s.payments = append(s.payments, *payment)
	return payment, nil
}

func (s *stubRepo) FindByID(ctx context.Context, id int64) (*models.Payment, error) {
	for _, p := range s.payments {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) List(ctx context.Context) ([]models.Payment, error) {
	return s.payments, nil
}

func (s *stubRepo) ListByOrder(ctx context.Context, orderID int64) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range s.payments {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

type stubOrderFinder struct {
	known map[int64]bool
}

func (s *stubOrderFinder) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	if !s.known[id] {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.Order{ID: id}, nil
}

func TestServiceCreateValidatesFields(t *testing.T) {
	svc, err := NewService(&stubRepo{}, &stubOrderFinder{known: map[int64]bool{1: true}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []CreatePaymentInput{
		{OrderID: 0, PaymentProvider: "stripe", ProviderTransactionID: "tx-1"},
		{OrderID: 1, PaymentProvider: "", ProviderTransactionID: "tx-1"},
		{OrderID: 1, PaymentProvider: "stripe", ProviderTransactionID: ""},
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), input); pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
	}
}

func TestServiceCreateRejectsUnknownOrder(t *testing.T) {
	svc, _ := NewService(&stubRepo{}, &stubOrderFinder{known: map[int64]bool{}})

	_, err := svc.Create(context.Background(), CreatePaymentInput{
		OrderID:               42,
		PaymentProvider:       "stripe",
		ProviderTransactionID: "tx-1",
	})
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceListByOrderFiltersRows(t *testing.T) {
	repo := &stubRepo{}
	svc, _ := NewService(repo, &stubOrderFinder{known: map[int64]bool{1: true, 2: true}})

	for _, orderID := range []int64{1, 1, 2} {
		_, err := svc.Create(context.Background(), CreatePaymentInput{
			OrderID:               orderID,
			PaymentProvider:       "stripe",
			ProviderTransactionID: "tx",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	rows, err := svc.ListByOrder(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(rows))
	}
}
