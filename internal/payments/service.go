package payments

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/eshop-register/backend/pkg/db/models"
	pkgerrors "github.com/eshop-register/backend/pkg/errors"
)

// CreatePaymentInput carries the fields of a new payment attempt.
type CreatePaymentInput struct {
	OrderID               int64
	PaymentProvider       string
	ProviderTransactionID string
}

type orderFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Order, error)
}

// Service exposes payment operations. Payments are append-only, so the
// surface is create plus reads.
type Service interface {
	Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error)
	Get(ctx context.Context, id int64) (*models.Payment, error)
	List(ctx context.Context) ([]models.Payment, error)
	ListByOrder(ctx context.Context, orderID int64) ([]models.Payment, error)
}

type service struct {
	repo   Repository
	orders orderFinder
}

// NewService builds a payments service.
func NewService(repo Repository, orders orderFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	if orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo, orders: orders}, nil
}

func (s *service) Create(ctx context.Context, input CreatePaymentInput) (*models.Payment, error) {
	if input.OrderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.PaymentProvider == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment provider required")
	}
	if input.ProviderTransactionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "provider transaction id required")
	}

	if _, err := s.orders.FindByID(ctx, input.OrderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	payment := &models.Payment{
		OrderID:               input.OrderID,
		PaymentProvider:       input.PaymentProvider,
		ProviderTransactionID: input.ProviderTransactionID,
	}
	created, err := s.repo.Create(ctx, payment)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment")
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
	}
	return payment, nil
}

func (s *service) List(ctx context.Context) ([]models.Payment, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return items, nil
}

func (s *service) ListByOrder(ctx context.Context, orderID int64) ([]models.Payment, error) {
	if _, err := s.orders.FindByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	items, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order payments")
	}
	return items, nil
}
