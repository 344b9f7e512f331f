package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eshop-register/backend/api/controllers"
	"github.com/eshop-register/backend/api/middleware"
	"github.com/eshop-register/backend/internal/inventory"
	"github.com/eshop-register/backend/internal/orders"
	"github.com/eshop-register/backend/internal/payments"
	"github.com/eshop-register/backend/internal/products"
	"github.com/eshop-register/backend/internal/reports"
	"github.com/eshop-register/backend/internal/warehouses"
	"github.com/eshop-register/backend/pkg/config"
	"github.com/eshop-register/backend/pkg/db"
	"github.com/eshop-register/backend/pkg/logger"
	"github.com/eshop-register/backend/pkg/metrics"
	"github.com/eshop-register/backend/pkg/redis"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   redis.Pinger
	Metrics *metrics.HTTPMetrics

	Orders     orders.Service
	Products   products.Service
	Warehouses warehouses.Service
	Inventory  inventory.Service
	Payments   payments.Service
	Reports    reports.Service
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DB, deps.Redis))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Post("/", controllers.CreateOrder(deps.Orders, deps.Logger))
		r.Get("/", controllers.ListOrders(deps.Orders, deps.Logger))
		r.Route("/{orderID}", func(r chi.Router) {
			r.Get("/", controllers.GetOrder(deps.Orders, deps.Logger))
			r.Put("/", controllers.UpdateOrder(deps.Orders, deps.Logger))
			r.Delete("/", controllers.DeleteOrder(deps.Orders, deps.Logger))

			r.Post("/items", controllers.AddOrderItem(deps.Orders, deps.Logger))
			r.Delete("/items", controllers.RemoveOrderItems(deps.Orders, deps.Logger))
			r.Get("/items", controllers.ListOrderItems(deps.Orders, deps.Logger))

			r.Get("/payments", controllers.ListOrderPayments(deps.Payments, deps.Logger))
		})
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Post("/", controllers.CreateProduct(deps.Products, deps.Logger))
		r.Get("/", controllers.ListProducts(deps.Products, deps.Logger))
		r.Get("/{productID}", controllers.GetProduct(deps.Products, deps.Logger))
		r.Put("/{productID}", controllers.UpdateProduct(deps.Products, deps.Logger))
		r.Delete("/{productID}", controllers.DeleteProduct(deps.Products, deps.Logger))
	})

	r.Route("/api/v1/warehouses", func(r chi.Router) {
		r.Post("/", controllers.CreateWarehouse(deps.Warehouses, deps.Logger))
		r.Get("/", controllers.ListWarehouses(deps.Warehouses, deps.Logger))
		r.Get("/{warehouseID}", controllers.GetWarehouse(deps.Warehouses, deps.Logger))
		r.Put("/{warehouseID}", controllers.UpdateWarehouse(deps.Warehouses, deps.Logger))
		r.Delete("/{warehouseID}", controllers.DeleteWarehouse(deps.Warehouses, deps.Logger))
	})

	r.Route("/api/v1/inventory", func(r chi.Router) {
		r.Post("/", controllers.CreateInventory(deps.Inventory, deps.Logger))
		r.Get("/", controllers.ListInventory(deps.Inventory, deps.Logger))
		r.Get("/warehouse/{warehouseID}", controllers.ListInventoryByWarehouse(deps.Inventory, deps.Logger))
		r.Get("/product/{productID}", controllers.ListInventoryByProduct(deps.Inventory, deps.Logger))
		r.Get("/{inventoryID}", controllers.GetInventory(deps.Inventory, deps.Logger))
		r.Put("/{inventoryID}", controllers.UpdateInventory(deps.Inventory, deps.Logger))
		r.Delete("/{inventoryID}", controllers.DeleteInventory(deps.Inventory, deps.Logger))
	})

	r.Route("/api/v1/payments", func(r chi.Router) {
		r.Post("/", controllers.CreatePayment(deps.Payments, deps.Logger))
		r.Get("/", controllers.ListPayments(deps.Payments, deps.Logger))
		r.Get("/{paymentID}", controllers.GetPayment(deps.Payments, deps.Logger))
	})

	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Get("/sales", controllers.SalesReport(deps.Reports, deps.Logger))
		r.Get("/stock", controllers.StockReport(deps.Reports, deps.Logger))
	})

	return r
}
