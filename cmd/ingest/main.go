package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/ruthwikaki/invochat-go/internal/cache"
	"github.com/ruthwikaki/invochat-go/internal/config"
	"github.com/ruthwikaki/invochat-go/internal/imports"
	"github.com/ruthwikaki/invochat-go/internal/repository/postgres"
	"github.com/ruthwikaki/invochat-go/internal/service"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize Google Drive source; optional, upload-only mode without it
	var driveSource *imports.DriveSource
	if creds := os.Getenv("GOOGLE_DRIVE_CREDENTIALS_JSON"); creds != "" {
		var err error
		driveSource, err = imports.NewDriveSource(creds)
		if err != nil {
			log.Fatalf("Failed to initialize Google Drive source: %v", err)
		}
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize repositories and the import service
	inventoryRepo := postgres.NewInventoryRepository(db)
	salesRepo := postgres.NewSalesRepository(db)
	auditRepo := postgres.NewAuditRepository(db)

	analyticsCache, err := cache.NewAnalyticsCache(cfg.Cache)
	if err != nil {
		log.Printf("Cache unavailable, running without it: %v", err)
		analyticsCache = cache.NewNoopAnalyticsCache()
	}

	importService := service.NewImportService(inventoryRepo, salesRepo, auditRepo, analyticsCache, cfg.App.UploadDir)

	// Create router and register routes
	r := mux.NewRouter()
	handler := imports.NewHandler(importService, driveSource)
	handler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	port := os.Getenv("INGEST_PORT")
	if port == "" {
		port = "8081"
	}
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Ingest server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
