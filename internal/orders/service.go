package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/eshop-register/backend/internal/pricing"
	"github.com/eshop-register/backend/internal/products"
	"github.com/eshop-register/backend/internal/warehouses"
	"github.com/eshop-register/backend/pkg/db/models"
	"github.com/eshop-register/backend/pkg/enums"
	pkgerrors "github.com/eshop-register/backend/pkg/errors"
	"github.com/shopspring/decimal"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// salesReportInvalidator drops the cached sales report after an order write.
// A nil invalidator is allowed; stale entries then expire with the TTL.
type salesReportInvalidator interface {
	InvalidateSales(ctx context.Context)
}

// Service defines order-level operations: CRUD plus the item aggregation
// that keeps total_amount consistent with the order's items.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, id int64, input UpdateOrderInput) (*models.Order, error)
	Delete(ctx context.Context, id int64) error
	AddItem(ctx context.Context, input AddItemInput) (*models.OrderItem, error)
	RemoveItemByNameAndOrder(ctx context.Context, productName string, orderID int64) (int, error)
	ListItems(ctx context.Context, orderID int64) ([]models.OrderItem, error)
}

type service struct {
	repo       Repository
	products   products.Repository
	warehouses warehouses.Repository
	tx         txRunner
	reports    salesReportInvalidator
}

// NewService builds an orders service with the required dependencies.
// The reports invalidator may be nil.
func NewService(repo Repository, productsRepo products.Repository, warehousesRepo warehouses.Repository, tx txRunner, reports salesReportInvalidator) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if productsRepo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	if warehousesRepo == nil {
		return nil, fmt.Errorf("warehouses repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:       repo,
		products:   productsRepo,
		warehouses: warehousesRepo,
		tx:         tx,
		reports:    reports,
	}, nil
}

func (s *service) invalidateSales(ctx context.Context) {
	if s.reports != nil {
		s.reports.InvalidateSales(ctx)
	}
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.UserID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if !input.Currency.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown currency")
	}

	// New orders go to the first active warehouse; 0 means none available.
	var warehouseID int64
	warehouse, err := s.warehouses.FindFirstActive(ctx)
	switch {
	case err == nil:
		warehouseID = warehouse.ID
	case errors.Is(err, gorm.ErrRecordNotFound):
		warehouseID = 0
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find active warehouse")
	}

	order := &models.Order{
		UserID:          input.UserID,
		Status:          enums.OrderStatusCreated,
		PaymentStatus:   enums.PaymentStatusInitiated,
		WarehouseID:     warehouseID,
		TotalAmount:     decimal.Zero,
		Currency:        input.Currency,
		ShippingAddress: input.ShippingAddress,
		BillingAddress:  input.BillingAddress,
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	s.invalidateSales(ctx)
	return created, nil
}

func (s *service) Get(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) List(ctx context.Context) ([]models.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateOrderInput) (*models.Order, error) {
	updates := map[string]any{}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
		}
		updates["status"] = *input.Status
	}
	if input.PaymentStatus != nil {
		if !input.PaymentStatus.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment status")
		}
		updates["payment_status"] = *input.PaymentStatus
	}
	if input.WarehouseID != nil {
		updates["warehouse_id"] = *input.WarehouseID
	}
	if input.Currency != nil {
		if !input.Currency.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown currency")
		}
		updates["currency"] = *input.Currency
	}
	if input.ShippingAddress != nil {
		updates["shipping_address"] = *input.ShippingAddress
	}
	if input.BillingAddress != nil {
		updates["billing_address"] = *input.BillingAddress
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no updatable fields provided")
	}
	updates["updated_at"] = time.Now().UTC()

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}
	s.invalidateSales(ctx)
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	s.invalidateSales(ctx)
	return nil
}

// AddItem snapshots the product's current price and tax rate into a new
// order item and folds the extended price into the order total. The order
// row stays locked for the whole transaction, so concurrent adds on the
// same order serialize and never lose an update.
func (s *service) AddItem(ctx context.Context, input AddItemInput) (*models.OrderItem, error) {
	if input.OrderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ProductID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer")
	}

	var created *models.OrderItem
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByIDForUpdate(ctx, input.OrderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		product, err := s.products.WithTx(tx).FindByID(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		item := &models.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  input.Quantity,
			UnitPrice: product.UnitPrice,
			TaxRate:   decimal.NewNullDecimal(product.TaxRate),
		}
		if _, err := repo.CreateItem(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order item")
		}

		total := order.TotalAmount.Add(pricing.ExtendedPrice(product.UnitPrice, input.Quantity, product.TaxRate))
		err = repo.Update(ctx, order.ID, map[string]any{
			"total_amount": total,
			"updated_at":   time.Now().UTC(),
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order total")
		}

		created = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidateSales(ctx)
	return created, nil
}

// RemoveItemByNameAndOrder deletes every item of the order whose product
// name matches and decrements the total by each removed item's snapshotted
// extended price, so totals stay correct even after product price edits.
// An unknown product name is a no-op with zero affected rows.
func (s *service) RemoveItemByNameAndOrder(ctx context.Context, productName string, orderID int64) (int, error) {
	if orderID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if productName == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}

	affected := 0
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		product, err := s.products.WithTx(tx).FindByName(ctx, productName)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve product name")
		}

		removed, err := repo.DeleteItemsByOrderAndProduct(ctx, order.ID, product.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order items")
		}
		if len(removed) == 0 {
			return nil
		}

		total := order.TotalAmount
		for _, item := range removed {
			total = total.Sub(pricing.ItemExtendedPrice(item))
		}
		err = repo.Update(ctx, order.ID, map[string]any{
			"total_amount": total,
			"updated_at":   time.Now().UTC(),
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order total")
		}

		affected = len(removed)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if affected > 0 {
		s.invalidateSales(ctx)
	}
	return affected, nil
}

func (s *service) ListItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	if _, err := s.Get(ctx, orderID); err != nil {
		return nil, err
	}
	items, err := s.repo.FindItemsByOrder(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order items")
	}
	return items, nil
}
