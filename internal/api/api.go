// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ruthwikaki/invochat-go/internal/api/handlers"
	"github.com/ruthwikaki/invochat-go/internal/api/middleware"
	"github.com/ruthwikaki/invochat-go/internal/service"
)

type Services struct {
	Inventory     *service.InventoryService
	Supplier      *service.SupplierService
	PurchaseOrder *service.PurchaseOrderService
	Customer      *service.CustomerService
	Order         *service.OrderService
	Analytics     *service.AnalyticsService
	Reorder       *service.ReorderService
	Export        *service.ExportService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.CompanyHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")
	apiGroup.Use(middleware.CompanyScope())

	if services == nil {
		return router
	}

	if services.Inventory != nil {
		inventoryHandler := handlers.NewInventoryHandler(services.Inventory)
		inventoryGroup := apiGroup.Group("/inventory")
		{
			inventoryGroup.GET("", inventoryHandler.List)
			inventoryGroup.GET("/:id", inventoryHandler.Get)
			inventoryGroup.PUT("/:id/reorder-settings", inventoryHandler.UpdateReorderSettings)
			inventoryGroup.POST("/:id/adjust", inventoryHandler.AdjustStock)
		}
	}

	if services.Supplier != nil {
		supplierHandler := handlers.NewSupplierHandler(services.Supplier)
		supplierGroup := apiGroup.Group("/suppliers")
		{
			supplierGroup.GET("", supplierHandler.List)
			supplierGroup.GET("/:id", supplierHandler.Get)
			supplierGroup.POST("", supplierHandler.Create)
			supplierGroup.PUT("/:id", supplierHandler.Update)
			supplierGroup.DELETE("/:id", supplierHandler.Delete)
		}
	}

	if services.PurchaseOrder != nil && services.Reorder != nil {
		poHandler := handlers.NewPurchaseOrderHandler(services.PurchaseOrder, services.Reorder)
		poGroup := apiGroup.Group("/purchase-orders")
		{
			poGroup.GET("", poHandler.List)
			poGroup.POST("", poHandler.Create)
			poGroup.GET("/:id", poHandler.Get)
			poGroup.POST("/:id/receive", poHandler.Receive)
			poGroup.POST("/from-suggestions", poHandler.CreateFromSuggestions)
		}
	}

	if services.Customer != nil {
		customerHandler := handlers.NewCustomerHandler(services.Customer)
		customerGroup := apiGroup.Group("/customers")
		{
			customerGroup.GET("", customerHandler.List)
			customerGroup.GET("/:id", customerHandler.Get)
			customerGroup.DELETE("/:id", customerHandler.Delete)
		}
	}

	if services.Order != nil {
		orderHandler := handlers.NewOrderHandler(services.Order)
		orderGroup := apiGroup.Group("/orders")
		{
			orderGroup.GET("", orderHandler.List)
			orderGroup.GET("/sales-series", orderHandler.SalesSeries)
		}
	}

	if services.Analytics != nil && services.Reorder != nil {
		analyticsHandler := handlers.NewAnalyticsHandler(services.Analytics, services.Reorder)
		analyticsGroup := apiGroup.Group("/analytics")
		{
			analyticsGroup.GET("/dashboard", analyticsHandler.Dashboard)
			analyticsGroup.GET("/dead-stock", analyticsHandler.DeadStock)
			analyticsGroup.GET("/reorder", analyticsHandler.Reorder)
			analyticsGroup.GET("/abc-analysis", analyticsHandler.ABCAnalysis)
			analyticsGroup.GET("/inventory-turnover", analyticsHandler.InventoryTurnover)
			analyticsGroup.GET("/sales-velocity", analyticsHandler.SalesVelocity)
			analyticsGroup.GET("/gross-margin", analyticsHandler.GrossMargin)
			analyticsGroup.GET("/hidden-opportunities", analyticsHandler.HiddenOpportunities)
			analyticsGroup.GET("/customer-insights", analyticsHandler.CustomerInsights)
			analyticsGroup.GET("/supplier-performance", analyticsHandler.SupplierPerformance)
			analyticsGroup.GET("/forecast", analyticsHandler.Forecast)
		}
	}

	if services.Export != nil && services.Reorder != nil && services.Inventory != nil {
		exportHandler := handlers.NewExportHandler(services.Export, services.Reorder, services.Inventory)
		exportGroup := apiGroup.Group("/export")
		{
			exportGroup.GET("/reorder-suggestions", exportHandler.ReorderSuggestions)
			exportGroup.GET("/inventory", exportHandler.Inventory)
			exportGroup.GET("/archives", exportHandler.Archives)
			exportGroup.GET("/archives/:name", exportHandler.Archive)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
