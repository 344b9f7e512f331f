package orders

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/eshop-register/backend/internal/products"
	"github.com/eshop-register/backend/internal/warehouses"
	"github.com/eshop-register/backend/pkg/db/models"
	"github.com/eshop-register/backend/pkg/enums"
	pkgerrors "github.com/eshop-register/backend/pkg/errors"
)

// stubTx serializes callbacks the way a row lock serializes transactions.
type stubTx struct {
	mu sync.Mutex
}

func (s *stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(nil)
}

type stubOrdersRepo struct {
	mu         sync.Mutex
	orders     map[int64]*models.Order
	items      []models.OrderItem
	nextItemID int64
}

func newStubOrdersRepo() *stubOrdersRepo {
	return &stubOrdersRepo{orders: map[int64]*models.Order{}, nextItemID: 1}
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubOrdersRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order.ID = int64(len(s.orders) + 1)
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubOrdersRepo) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *order
	return &copied, nil
}

func (s *stubOrdersRepo) FindByIDForUpdate(ctx context.Context, id int64) (*models.Order, error) {
	return s.FindByID(ctx, id)
}

func (s *stubOrdersRepo) List(ctx context.Context) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Order, 0, len(s.orders))
	for _, order := range s.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (s *stubOrdersRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if total, ok := updates["total_amount"].(decimal.Decimal); ok {
		order.TotalAmount = total
	}
	return nil
}

func (s *stubOrdersRepo) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.orders, id)
	return nil
}

func (s *stubOrdersRepo) CreateItem(ctx context.Context, item *models.OrderItem) (*models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.nextItemID
	s.nextItemID++
	s.items = append(s.items, *item)
	return item, nil
}

func (s *stubOrdersRepo) FindItemsByOrder(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.OrderItem
	for _, item := range s.items {
		if item.OrderID == orderID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *stubOrdersRepo) DeleteItemsByOrderAndProduct(ctx context.Context, orderID, productID int64) ([]models.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed, kept []models.OrderItem
	for _, item := range s.items {
		if item.OrderID == orderID && item.ProductID == productID {
			removed = append(removed, item)
		} else {
			kept = append(kept, item)
		}
	}
	s.items = kept
	return removed, nil
}

type stubProductsRepo struct {
	mu       sync.Mutex
	products map[int64]*models.Product
}

func newStubProductsRepo(items ...*models.Product) *stubProductsRepo {
	s := &stubProductsRepo{products: map[int64]*models.Product{}}
	for _, p := range items {
		s.products[p.ID] = p
	}
	return s
}

func (s *stubProductsRepo) WithTx(tx *gorm.DB) products.Repository { return s }

func (s *stubProductsRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = product
	return product, nil
}

func (s *stubProductsRepo) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *product
	return &copied, nil
}

func (s *stubProductsRepo) FindByName(ctx context.Context, name string) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *models.Product
	for _, product := range s.products {
		if product.ProductName != name {
			continue
		}
		if found == nil || product.ID < found.ID {
			found = product
		}
	}
	if found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *found
	return &copied, nil
}

func (s *stubProductsRepo) List(ctx context.Context) ([]models.Product, error) { return nil, nil }

func (s *stubProductsRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if price, ok := updates["unit_price"].(decimal.Decimal); ok {
		product.UnitPrice = price
	}
	return nil
}

func (s *stubProductsRepo) Delete(ctx context.Context, id int64) error { return nil }

type stubWarehousesRepo struct {
	active *models.Warehouse
}

func (s *stubWarehousesRepo) WithTx(tx *gorm.DB) warehouses.Repository { return s }
func (s *stubWarehousesRepo) Create(ctx context.Context, warehouse *models.Warehouse) (*models.Warehouse, error) {
	return warehouse, nil
}
func (s *stubWarehousesRepo) FindByID(ctx context.Context, id int64) (*models.Warehouse, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubWarehousesRepo) FindFirstActive(ctx context.Context) (*models.Warehouse, error) {
	if s.active == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.active, nil
}
func (s *stubWarehousesRepo) List(ctx context.Context) ([]models.Warehouse, error) { return nil, nil }
func (s *stubWarehousesRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	return nil
}
func (s *stubWarehousesRepo) Delete(ctx context.Context, id int64) error { return nil }

func newTestService(t *testing.T, repo *stubOrdersRepo, productsRepo *stubProductsRepo, warehousesRepo *stubWarehousesRepo) Service {
	t.Helper()
	if productsRepo == nil {
		productsRepo = newStubProductsRepo()
	}
	if warehousesRepo == nil {
		warehousesRepo = &stubWarehousesRepo{}
	}
	svc, err := NewService(repo, productsRepo, warehousesRepo, &stubTx{}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

type stubSalesInvalidator struct {
	calls int
}

func (s *stubSalesInvalidator) InvalidateSales(ctx context.Context) { s.calls++ }

func TestServiceAddItemInvalidatesSalesCache(t *testing.T) {
	repo := newStubOrdersRepo()
	seedOrder(repo, 1)
	invalidator := &stubSalesInvalidator{}
	productsRepo := newStubProductsRepo(&models.Product{
		ID:          10,
		ProductName: "Kettle",
		UnitPrice:   decimal.RequireFromString("10.00"),
		TaxRate:     decimal.RequireFromString("0.21"),
	})
	svc, err := NewService(repo, productsRepo, &stubWarehousesRepo{}, &stubTx{}, invalidator)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.AddItem(context.Background(), AddItemInput{OrderID: 1, ProductID: 10, Quantity: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invalidator.calls != 1 {
		t.Fatalf("expected 1 invalidation, got %d", invalidator.calls)
	}

	// A removal that matches nothing leaves the cached report alone.
	if _, err := svc.RemoveItemByNameAndOrder(context.Background(), "NoSuchProduct", 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if invalidator.calls != 1 {
		t.Fatalf("expected no invalidation on no-op removal, got %d", invalidator.calls)
	}
}

func seedOrder(repo *stubOrdersRepo, id int64) *models.Order {
	order := &models.Order{
		ID:            id,
		UserID:        1,
		Status:        enums.OrderStatusCreated,
		PaymentStatus: enums.PaymentStatusInitiated,
		TotalAmount:   decimal.Zero,
		Currency:      enums.CurrencyCZK,
	}
	repo.orders[id] = order
	return order
}

func TestServiceCreateAssignsFirstActiveWarehouse(t *testing.T) {
	repo := newStubOrdersRepo()
	svc := newTestService(t, repo, nil, &stubWarehousesRepo{
		active: &models.Warehouse{ID: 3, WarehouseName: "Main", IsActive: true},
	})

	order, err := svc.Create(context.Background(), CreateOrderInput{
		UserID:   1,
		Currency: enums.CurrencyCZK,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.WarehouseID != 3 {
		t.Fatalf("expected warehouse 3, got %d", order.WarehouseID)
	}
	if order.Status != enums.OrderStatusCreated {
		t.Fatalf("expected CREATED status, got %s", order.Status)
	}
	if order.PaymentStatus != enums.PaymentStatusInitiated {
		t.Fatalf("expected INITIATED payment status, got %s", order.PaymentStatus)
	}
	if !order.TotalAmount.IsZero() {
		t.Fatalf("expected zero total, got %s", order.TotalAmount)
	}
}

func TestServiceCreateWithoutActiveWarehouse(t *testing.T) {
	repo := newStubOrdersRepo()
	svc := newTestService(t, repo, nil, &stubWarehousesRepo{})

	order, err := svc.Create(context.Background(), CreateOrderInput{
		UserID:   1,
		Currency: enums.CurrencyEUR,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.WarehouseID != 0 {
		t.Fatalf("expected warehouse 0, got %d", order.WarehouseID)
	}
}

func TestServiceCreateRejectsUnknownCurrency(t *testing.T) {
	svc := newTestService(t, newStubOrdersRepo(), nil, nil)

	_, err := svc.Create(context.Background(), CreateOrderInput{UserID: 1, Currency: "XXX"})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceAddItemValidatesInput(t *testing.T) {
	svc := newTestService(t, newStubOrdersRepo(), nil, nil)

	cases := []AddItemInput{
		{OrderID: 0, ProductID: 1, Quantity: 1},
		{OrderID: 1, ProductID: 0, Quantity: 1},
		{OrderID: 1, ProductID: 1, Quantity: 0},
		{OrderID: 1, ProductID: 1, Quantity: -2},
	}
	for _, input := range cases {
		if _, err := svc.AddItem(context.Background(), input); pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error for %+v, got %v", input, err)
		}
	}
}

func TestServiceAddItemSnapshotsPriceAndUpdatesTotal(t *testing.T) {
	repo := newStubOrdersRepo()
	seedOrder(repo, 1)
	productsRepo := newStubProductsRepo(&models.Product{
		ID:          10,
		ProductName: "Washing Machine",
		UnitPrice:   decimal.RequireFromString("1700.00"),
		TaxRate:     decimal.RequireFromString("0.21"),
	})
	svc := newTestService(t, repo, productsRepo, nil)

	item, err := svc.AddItem(context.Background(), AddItemInput{OrderID: 1, ProductID: 10, Quantity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !item.UnitPrice.Equal(decimal.RequireFromString("1700.00")) {
		t.Fatalf("expected snapshotted unit price, got %s", item.UnitPrice)
	}
	if !item.TaxRate.Valid || !item.TaxRate.Decimal.Equal(decimal.RequireFromString("0.21")) {
		t.Fatalf("expected snapshotted tax rate, got %+v", item.TaxRate)
	}

	order, _ := repo.FindByID(context.Background(), 1)
	expected := decimal.RequireFromString("4114.00")
	if !order.TotalAmount.Equal(expected) {
		t.Fatalf("expected total %s, got %s", expected, order.TotalAmount)
	}
}

func TestServiceAddItemMissingOrderLeavesNoItems(t *testing.T) {
	repo := newStubOrdersRepo()
	productsRepo := newStubProductsRepo(&models.Product{ID: 10, ProductName: "Kettle"})
	svc := newTestService(t, repo, productsRepo, nil)

	_, err := svc.AddItem(context.Background(), AddItemInput{OrderID: 42, ProductID: 10, Quantity: 1})
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected no items persisted, got %d", len(repo.items))
	}
}

func TestServiceAddItemMissingProduct(t *testing.T) {
	repo := newStubOrdersRepo()
	seedOrder(repo, 1)
	svc := newTestService(t, repo, newStubProductsRepo(), nil)

	_, err := svc.AddItem(context.Background(), AddItemInput{OrderID: 1, ProductID: 99, Quantity: 1})
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected no items persisted, got %d", len(repo.items))
	}
}

func TestServiceConcurrentAddsNeverLoseAnUpdate(t *testing.T) {
	repo := newStubOrdersRepo()
	seedOrder(repo, 1)
	productsRepo := newStubProductsRepo(&models.Product{
		ID:          10,
		ProductName: "Toaster",
		UnitPrice:   decimal.RequireFromString("10.00"),
		TaxRate:     decimal.RequireFromString("0.21"),
	})
	svc := newTestService(t, repo, productsRepo, nil)

	const workers = 25
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(context.Background(), AddItemInput{OrderID: 1, ProductID: 10, Quantity: 1})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	order, _ := repo.FindByID(context.Background(), 1)
	expected := decimal.RequireFromString("12.10").Mul(decimal.NewFromInt(workers))
	if !order.TotalAmount.Equal(expected) {
		t.Fatalf("expected total %s after %d adds, got %s", expected, workers, order.TotalAmount)
	}
	if len(repo.items) != workers {
		t.Fatalf("expected %d items, got %d", workers, len(repo.items))
	}
}

func TestServiceRemoveItemUsesSnapshotNotCurrentPrice(t *testing.T) {
	repo := newStubOrdersRepo()
	seedOrder(repo, 1)
	productsRepo := newStubProductsRepo(&models.Product{
		ID:          10,
		ProductName: "Fridge",
		UnitPrice:   decimal.RequireFromString("100.00"),
		TaxRate:     decimal.RequireFromString("0.21"),
	})
	svc := newTestService(t, repo, productsRepo, nil)

	if _, err := svc.AddItem(context.Background(), AddItemInput{OrderID: 1, ProductID: 10, Quantity: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// price hike after the snapshot must not affect the decrement
	if err := productsRepo.Update(context.Background(), 10, map[string]any{
		"unit_price": decimal.RequireFromString("999.00"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	affected, err := svc.RemoveItemByNameAndOrder(context.Background(), "Fridge", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected item, got %d", affected)
	}

	order, _ := repo.FindByID(context.Background(), 1)
	if !order.TotalAmount.IsZero() {
		t.Fatalf("expected zero total after removal, got %s", order.TotalAmount)
	}
}

func TestServiceRemoveItemAppliesDefaultTaxFallback(t *testing.T) {
	repo := newStubOrdersRepo()
	order := seedOrder(repo, 1)
	order.TotalAmount = decimal.RequireFromString("121.00")
	repo.items = append(repo.items, models.OrderItem{
		ID:        1,
		OrderID:   1,
		ProductID: 10,
		Quantity:  1,
		UnitPrice: decimal.RequireFromString("100.00"),
		// no snapshotted tax rate on this legacy row
	})
	productsRepo := newStubProductsRepo(&models.Product{ID: 10, ProductName: "Lamp"})
	svc := newTestService(t, repo, productsRepo, nil)

	affected, err := svc.RemoveItemByNameAndOrder(context.Background(), "Lamp", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 1 {
		t.Fatalf("expected 1 affected item, got %d", affected)
	}

	loaded, _ := repo.FindByID(context.Background(), 1)
	if !loaded.TotalAmount.IsZero() {
		t.Fatalf("expected 21%% fallback to zero the total, got %s", loaded.TotalAmount)
	}
}

func TestServiceRemoveItemUnknownProductIsNoOp(t *testing.T) {
	repo := newStubOrdersRepo()
	order := seedOrder(repo, 1)
	order.TotalAmount = decimal.RequireFromString("50.00")
	svc := newTestService(t, repo, newStubProductsRepo(), nil)

	affected, err := svc.RemoveItemByNameAndOrder(context.Background(), "does-not-exist", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 0 {
		t.Fatalf("expected 0 affected items, got %d", affected)
	}

	loaded, _ := repo.FindByID(context.Background(), 1)
	if !loaded.TotalAmount.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("expected total unchanged, got %s", loaded.TotalAmount)
	}
}

func TestServiceRemoveItemMissingOrder(t *testing.T) {
	svc := newTestService(t, newStubOrdersRepo(), newStubProductsRepo(), nil)

	_, err := svc.RemoveItemByNameAndOrder(context.Background(), "anything", 404)
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceUpdateRejectsUnknownStatus(t *testing.T) {
	repo := newStubOrdersRepo()
	seedOrder(repo, 1)
	svc := newTestService(t, repo, nil, nil)

	bad := enums.OrderStatus("NOT_A_STATUS")
	_, err := svc.Update(context.Background(), 1, UpdateOrderInput{Status: &bad})
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
