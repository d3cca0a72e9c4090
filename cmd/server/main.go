// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ruthwikaki/invochat-go/internal/ai"
	"github.com/ruthwikaki/invochat-go/internal/api"
	"github.com/ruthwikaki/invochat-go/internal/cache"
	"github.com/ruthwikaki/invochat-go/internal/config"
	"github.com/ruthwikaki/invochat-go/internal/reorder"
	"github.com/ruthwikaki/invochat-go/internal/repository/postgres"
	"github.com/ruthwikaki/invochat-go/internal/service"
	"github.com/ruthwikaki/invochat-go/internal/storage"
	"github.com/ruthwikaki/invochat-go/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize cache and storage
	analyticsCache, err := cache.NewAnalyticsCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, running without it")
		analyticsCache = cache.NewNoopAnalyticsCache()
	}
	objectStore, err := storage.NewObjectStorage(cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Initialize repositories
	inventoryRepo := postgres.NewInventoryRepository(db)
	salesRepo := postgres.NewSalesRepository(db)
	supplierRepo := postgres.NewSupplierRepository(db)
	poRepo := postgres.NewPurchaseOrderRepository(db)
	customerRepo := postgres.NewCustomerRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db, cfg.Reorder)
	analyticsRepo := postgres.NewAnalyticsRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	// Refinement step: disabled or missing key means baseline-only reports
	var refiner reorder.Refiner = reorder.NopRefiner{}
	if cfg.AI.Enabled && cfg.AI.APIKey != "" {
		refiner = ai.NewRefiner(ai.NewClient(cfg.AI))
	} else {
		logger.Log.Info().Msg("AI refinement disabled, reports use baseline heuristic only")
	}

	// Initialize services
	services := &api.Services{
		Inventory:     service.NewInventoryService(inventoryRepo, analyticsCache),
		Supplier:      service.NewSupplierService(supplierRepo),
		PurchaseOrder: service.NewPurchaseOrderService(poRepo, analyticsCache),
		Customer:      service.NewCustomerService(customerRepo),
		Order:         service.NewOrderService(salesRepo),
		Analytics:     service.NewAnalyticsService(inventoryRepo, salesRepo, supplierRepo, analyticsRepo, settingsRepo, customerRepo, analyticsCache),
		Reorder:       service.NewReorderService(inventoryRepo, salesRepo, settingsRepo, poRepo, auditRepo, refiner, cfg.Reorder),
		Export:        service.NewExportService(objectStore),
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
