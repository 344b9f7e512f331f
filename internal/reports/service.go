package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/eshop-register/backend/internal/pricing"
	"github.com/eshop-register/backend/pkg/db/models"
	pkgerrors "github.com/eshop-register/backend/pkg/errors"
	"github.com/eshop-register/backend/pkg/logger"
)

const (
	salesReportName = "sales"
	stockReportName = "stock"
)

// Cache is the subset of the redis client the report service needs. A nil
// cache disables caching; reports are then rebuilt on every request.
type Cache interface {
	ReportKey(name string) string
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Service builds read-only reports over the order and inventory tables.
// Write paths call the Invalidate methods so cached reports never outlive
// the data they were built from.
type Service interface {
	SalesReport(ctx context.Context) ([]SalesRow, error)
	StockReport(ctx context.Context) ([]StockRow, error)
	InvalidateSales(ctx context.Context)
	InvalidateStock(ctx context.Context)
}

type service struct {
	repo     Repository
	cache    Cache
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewService builds a reports service. Cache may be nil.
func NewService(repo Repository, cache Cache, cacheTTL time.Duration, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reports repository required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, cacheTTL: cacheTTL, log: log}, nil
}

func (s *service) SalesReport(ctx context.Context) ([]SalesRow, error) {
	var cached []SalesRow
	if ok := s.cacheGet(ctx, salesReportName, &cached); ok {
		return cached, nil
	}

	snap, err := s.repo.SalesSnapshot(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read sales snapshot")
	}

	rows := buildSalesRows(snap)
	s.cachePut(ctx, salesReportName, rows)
	return rows, nil
}

func (s *service) StockReport(ctx context.Context) ([]StockRow, error) {
	var cached []StockRow
	if ok := s.cacheGet(ctx, stockReportName, &cached); ok {
		return cached, nil
	}

	snap, err := s.repo.StockSnapshot(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read stock snapshot")
	}

	rows := buildStockRows(snap)
	s.cachePut(ctx, stockReportName, rows)
	return rows, nil
}

func buildSalesRows(snap *SalesSnapshot) []SalesRow {
	warehouseNames := make(map[int64]string, len(snap.Warehouses))
	for _, w := range snap.Warehouses {
		warehouseNames[w.ID] = w.WarehouseName
	}
	itemsByOrder := make(map[int64][]models.OrderItem, len(snap.Orders))
	for _, item := range snap.Items {
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	rows := make([]SalesRow, 0, len(snap.Orders))
	for _, order := range snap.Orders {
		items := itemsByOrder[order.ID]

		totalItems := 0
		calculated := decimal.Zero
		for _, item := range items {
			totalItems += item.Quantity
			calculated = calculated.Add(pricing.ItemExtendedPrice(item))
		}

		warehouseName, ok := warehouseNames[order.WarehouseID]
		if !ok {
			warehouseName = UnknownName
		}

		rows = append(rows, SalesRow{
			OrderID:               order.ID,
			UserID:                order.UserID,
			OrderStatus:           order.Status,
			PaymentStatus:         order.PaymentStatus,
			TotalAmount:           order.TotalAmount,
			Currency:              order.Currency,
			WarehouseName:         warehouseName,
			CreatedAt:             order.CreatedAt,
			TotalItems:            totalItems,
			TotalAmountCalculated: calculated,
		})
	}
	return rows
}

func buildStockRows(snap *StockSnapshot) []StockRow {
	warehouseNames := make(map[int64]string, len(snap.Warehouses))
	for _, w := range snap.Warehouses {
		warehouseNames[w.ID] = w.WarehouseName
	}
	productNames := make(map[int64]string, len(snap.Products))
	for _, p := range snap.Products {
		productNames[p.ID] = p.ProductName
	}

	rows := make([]StockRow, 0, len(snap.Inventory))
	for _, inv := range snap.Inventory {
		warehouseName, ok := warehouseNames[inv.WarehouseID]
		if !ok {
			warehouseName = UnknownName
		}
		productName, ok := productNames[inv.ProductID]
		if !ok {
			productName = UnknownName
		}
		rows = append(rows, StockRow{
			InventoryID:       inv.ID,
			WarehouseName:     warehouseName,
			ProductName:       productName,
			QuantityAvailable: inv.QuantityAvailable,
			QuantityReserved:  inv.QuantityReserved,
			QuantityTotal:     inv.QuantityAvailable + inv.QuantityReserved,
		})
	}
	return rows
}

// InvalidateSales drops the cached sales report after an order write.
func (s *service) InvalidateSales(ctx context.Context) {
	s.cacheDel(ctx, salesReportName)
}

// InvalidateStock drops the cached stock report after an inventory write.
func (s *service) InvalidateStock(ctx context.Context) {
	s.cacheDel(ctx, stockReportName)
}

func (s *service) cacheDel(ctx context.Context, name string) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.cache.Del(ctx, s.cache.ReportKey(name)); err != nil {
		s.log.Warn(ctx, "report cache invalidation failed")
	}
}

// cacheGet loads and decodes a cached report. Cache failures only log; the
// report is rebuilt from the database.
func (s *service) cacheGet(ctx context.Context, name string, out any) bool {
	if s.cache == nil || s.cacheTTL <= 0 {
		return false
	}
	raw, ok, err := s.cache.Get(ctx, s.cache.ReportKey(name))
	if err != nil {
		s.log.Warn(ctx, "report cache read failed")
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.log.Warn(ctx, "report cache entry malformed")
		return false
	}
	return true
}

func (s *service) cachePut(ctx context.Context, name string, rows any) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	encoded, err := json.Marshal(rows)
	if err != nil {
		s.log.Warn(ctx, "report cache encode failed")
		return
	}
	if err := s.cache.Set(ctx, s.cache.ReportKey(name), encoded, s.cacheTTL); err != nil {
		s.log.Warn(ctx, "report cache write failed")
	}
}
