package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/eshop-register/backend/api/routes"
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
	"github.com/eshop-register/backend/pkg/migrate"
	"github.com/eshop-register/backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	ordersRepo := orders.NewRepository(gormDB)
	productsRepo := products.NewRepository(gormDB)
	warehousesRepo := warehouses.NewRepository(gormDB)
	inventoryRepo := inventory.NewRepository(gormDB)
	paymentsRepo := payments.NewRepository(gormDB)
	reportsRepo := reports.NewRepository(gormDB)

	reportsService, err := reports.NewService(reportsRepo, redisClient, cfg.Reports.CacheTTL, logg)
	requireService(logg, "reports", err)
	ordersService, err := orders.NewService(ordersRepo, productsRepo, warehousesRepo, dbClient, reportsService)
	requireService(logg, "orders", err)
	productsService, err := products.NewService(productsRepo)
	requireService(logg, "products", err)
	warehousesService, err := warehouses.NewService(warehousesRepo)
	requireService(logg, "warehouses", err)
	inventoryService, err := inventory.NewService(inventoryRepo, reportsService)
	requireService(logg, "inventory", err)
	paymentsService, err := payments.NewService(paymentsRepo, ordersRepo)
	requireService(logg, "payments", err)

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	handler := routes.NewRouter(routes.Deps{
		Config:     cfg,
		Logger:     logg,
		DB:         dbClient,
		Redis:      redisClient,
		Metrics:    httpMetrics,
		Orders:     ordersService,
		Products:   productsService,
		Warehouses: warehousesService,
		Inventory:  inventoryService,
		Payments:   paymentsService,
		Reports:    reportsService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.ListenAndServe()
	}()

	stop, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-stop.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	var closeErr error
	closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
	closeErr = multierr.Append(closeErr, redisClient.Close())
	closeErr = multierr.Append(closeErr, dbClient.Close())
	if closeErr != nil {
		logg.Error(ctx, "shutdown finished with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "shutdown complete")
}

func requireService(logg *logger.Logger, name string, err error) {
	if err == nil {
		return
	}
	ctx := logg.WithField(context.Background(), "service", name)
	logg.Error(ctx, "failed to create service", err)
	os.Exit(1)
}
