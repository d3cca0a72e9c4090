// Package repository defines the persistence interfaces the services depend
// on. Implementations live in the postgres subpackage; tests use in-memory
// fakes.
package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/analytics"
	"github.com/ruthwikaki/invochat-go/internal/domain"
)

type InventoryRepository interface {
	ListVariants(ctx context.Context, companyID uuid.UUID, search string, limit, offset int) ([]domain.ProductVariant, int, error)
	GetVariant(ctx context.Context, companyID, variantID uuid.UUID) (*domain.ProductVariant, error)
	GetVariantsBySKU(ctx context.Context, companyID uuid.UUID, skus []string) ([]domain.ProductVariant, error)
	// GetReorderCandidates returns variants with a positive reorder point,
	// regardless of current stock; the calculator decides which need orders.
	GetReorderCandidates(ctx context.Context, companyID uuid.UUID) ([]domain.ProductVariant, error)
	UpdateReorderSettings(ctx context.Context, companyID, variantID uuid.UUID, reorderPoint, reorderQuantity *int) error
	AdjustStock(ctx context.Context, companyID uuid.UUID, adj domain.StockAdjustment) error
	// UpsertVariants creates or updates variants by SKU from an inventory
	// import; returns the number of rows applied.
	UpsertVariants(ctx context.Context, companyID uuid.UUID, rows []domain.InventoryUpsert) (int, error)
	InventoryValue(ctx context.Context, companyID uuid.UUID) (int64, error)
	LowStockCount(ctx context.Context, companyID uuid.UUID) (int, error)
}

type SalesRepository interface {
	// SalesSeries returns daily unit sales per SKU since the given date,
	// keyed by SKU, each series ordered by date ascending.
	SalesSeries(ctx context.Context, companyID uuid.UUID, skus []string, since time.Time) (map[string][]domain.SalesPoint, error)
	RevenueBySKU(ctx context.Context, companyID uuid.UUID, since time.Time) (map[string]int64, error)
	COGS(ctx context.Context, companyID uuid.UUID, since time.Time) (int64, error)
	VelocityRows(ctx context.Context, companyID uuid.UUID, since time.Time, midpoint time.Time) ([]analytics.VelocityRow, error)
	MarginRows(ctx context.Context, companyID uuid.UUID, since time.Time) ([]analytics.MarginRow, error)
	ListOrders(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]domain.Order, int, error)
	InsertOrders(ctx context.Context, companyID uuid.UUID, orders []domain.Order) (int, error)
}

type SupplierRepository interface {
	List(ctx context.Context, companyID uuid.UUID) ([]domain.Supplier, error)
	Get(ctx context.Context, companyID, supplierID uuid.UUID) (*domain.Supplier, error)
	Create(ctx context.Context, supplier *domain.Supplier) error
	Update(ctx context.Context, supplier *domain.Supplier) error
	Delete(ctx context.Context, companyID, supplierID uuid.UUID) error
	Metrics(ctx context.Context, companyID uuid.UUID) ([]domain.SupplierMetrics, error)
}

type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *domain.PurchaseOrder) error
	List(ctx context.Context, companyID uuid.UUID, status string, limit, offset int) ([]domain.PurchaseOrder, int, error)
	Get(ctx context.Context, companyID, poID uuid.UUID) (*domain.PurchaseOrder, error)
	// MarkReceived flips the PO to received and bumps variant stock by the
	// ordered quantities, atomically.
	MarkReceived(ctx context.Context, companyID, poID uuid.UUID, receivedAt time.Time) error
}

type CustomerRepository interface {
	List(ctx context.Context, companyID uuid.UUID, search string, limit, offset int) ([]domain.Customer, int, error)
	Get(ctx context.Context, companyID, customerID uuid.UUID) (*domain.Customer, error)
	Delete(ctx context.Context, companyID, customerID uuid.UUID) error
	// BehaviorRows returns per-customer order aggregates for segmentation.
	BehaviorRows(ctx context.Context, companyID uuid.UUID) ([]analytics.CustomerRow, error)
}

type SettingsRepository interface {
	// Get returns the company settings, falling back to defaults for any
	// missing row or column.
	Get(ctx context.Context, companyID uuid.UUID) (*domain.CompanySettings, error)
}

type AnalyticsRepository interface {
	DeadStock(ctx context.Context, companyID uuid.UUID, deadStockDays int) ([]domain.DeadStockItem, error)
	DashboardSummary(ctx context.Context, companyID uuid.UUID, periodDays int) (*domain.DashboardSummary, error)
}

type AuditRepository interface {
	Record(ctx context.Context, companyID uuid.UUID, action, details string) error
}
