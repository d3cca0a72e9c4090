package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ruthwikaki/invochat-go/internal/cache"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/imports"
	"github.com/ruthwikaki/invochat-go/internal/repository"
)

// ImportService turns uploaded sales and inventory files into rows in the
// database. XLSX files are converted to CSV before parsing.
type ImportService struct {
	inventoryRepo repository.InventoryRepository
	salesRepo     repository.SalesRepository
	auditRepo     repository.AuditRepository
	analytics     cache.AnalyticsCache
	uploadDir     string
}

func NewImportService(
	inventoryRepo repository.InventoryRepository,
	salesRepo repository.SalesRepository,
	auditRepo repository.AuditRepository,
	analytics cache.AnalyticsCache,
	uploadDir string,
) *ImportService {
	if analytics == nil {
		analytics = cache.NewNoopAnalyticsCache()
	}
	return &ImportService{
		inventoryRepo: inventoryRepo,
		salesRepo:     salesRepo,
		auditRepo:     auditRepo,
		analytics:     analytics,
		uploadDir:     uploadDir,
	}
}

// ImportOrders parses a sales CSV, resolves SKUs against the company catalog
// and inserts the orders. Rows referencing unknown SKUs fail the whole import.
func (s *ImportService) ImportOrders(ctx context.Context, companyID uuid.UUID, filename string, r io.Reader) (*imports.Result, error) {
	rows, err := imports.ParseOrdersCSV(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &imports.Result{Filename: filename, Kind: "orders"}, nil
	}

	skuSet := map[string]struct{}{}
	for _, row := range rows {
		skuSet[row.SKU] = struct{}{}
	}
	skus := make([]string, 0, len(skuSet))
	for sku := range skuSet {
		skus = append(skus, sku)
	}

	variants, err := s.inventoryRepo.GetVariantsBySKU(ctx, companyID, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve skus: %w", err)
	}
	bySKU := make(map[string]domain.ProductVariant, len(variants))
	for _, v := range variants {
		bySKU[v.SKU] = v
	}
	for _, row := range rows {
		if _, ok := bySKU[row.SKU]; !ok {
			return nil, fmt.Errorf("unknown sku %q in %s", row.SKU, filename)
		}
	}

	orders := assembleOrders(companyID, rows, bySKU)
	inserted, err := s.salesRepo.InsertOrders(ctx, companyID, orders)
	if err != nil {
		return nil, fmt.Errorf("failed to insert orders: %w", err)
	}

	s.recordImport(ctx, companyID, fmt.Sprintf("imported %d order(s) from %s", inserted, filename))
	if err := s.analytics.Invalidate(ctx, companyID); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate analytics cache")
	}

	return &imports.Result{Filename: filename, RowCount: len(rows), Applied: inserted, Kind: "orders"}, nil
}

// ImportInventory parses an inventory CSV and upserts variants by SKU.
func (s *ImportService) ImportInventory(ctx context.Context, companyID uuid.UUID, filename string, r io.Reader) (*imports.Result, error) {
	rows, err := imports.ParseInventoryCSV(r)
	if err != nil {
		return nil, err
	}

	upserts := make([]domain.InventoryUpsert, 0, len(rows))
	for _, row := range rows {
		upserts = append(upserts, domain.InventoryUpsert{
			SKU:             row.SKU,
			ProductTitle:    row.ProductTitle,
			Quantity:        row.Quantity,
			Cost:            row.Cost,
			Price:           row.Price,
			ReorderPoint:    row.ReorderPoint,
			ReorderQuantity: row.ReorderQuantity,
			SupplierName:    row.SupplierName,
		})
	}

	applied, err := s.inventoryRepo.UpsertVariants(ctx, companyID, upserts)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert inventory: %w", err)
	}

	s.recordImport(ctx, companyID, fmt.Sprintf("imported %d inventory row(s) from %s", applied, filename))
	if err := s.analytics.Invalidate(ctx, companyID); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate analytics cache")
	}

	return &imports.Result{Filename: filename, RowCount: len(rows), Applied: applied, Kind: "inventory"}, nil
}

// ImportFile dispatches on extension: XLSX files are converted to CSV in the
// upload directory first, then parsed like any CSV. The kind is "orders" or
// "inventory".
func (s *ImportService) ImportFile(ctx context.Context, companyID uuid.UUID, kind, filename string, r io.Reader) (*imports.Result, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".xlsx" {
		converted, err := s.convertUpload(filename, r)
		if err != nil {
			return nil, err
		}
		r = converted
	}

	switch kind {
	case "orders":
		return s.ImportOrders(ctx, companyID, filename, r)
	case "inventory":
		return s.ImportInventory(ctx, companyID, filename, r)
	default:
		return nil, fmt.Errorf("unknown import kind %q", kind)
	}
}

// convertUpload stages the XLSX upload in the configured directory, converts
// it, and hands back the CSV bytes. The staged file is always removed.
func (s *ImportService) convertUpload(filename string, r io.Reader) (io.Reader, error) {
	tmpXLSX, err := os.CreateTemp(s.uploadDir, "upload-*.xlsx")
	if err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	defer os.Remove(tmpXLSX.Name())

	if _, err := io.Copy(tmpXLSX, r); err != nil {
		tmpXLSX.Close()
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	tmpXLSX.Close()

	var buf bytes.Buffer
	if err := imports.ConvertXLSX(tmpXLSX.Name(), &buf); err != nil {
		return nil, fmt.Errorf("failed to convert %s: %w", filename, err)
	}
	return &buf, nil
}

func (s *ImportService) recordImport(ctx context.Context, companyID uuid.UUID, details string) {
	if s.auditRepo == nil {
		return
	}
	if err := s.auditRepo.Record(ctx, companyID, "import", details); err != nil {
		log.Warn().Err(err).Msg("failed to record audit entry")
	}
}

// assembleOrders groups rows by order number. Line-item cost comes from the
// variant's current cost, captured as cost_at_time.
func assembleOrders(companyID uuid.UUID, rows []imports.OrderRow, bySKU map[string]domain.ProductVariant) []domain.Order {
	byNumber := map[string]*domain.Order{}
	numberOrder := []string{}

	for _, row := range rows {
		order, ok := byNumber[row.OrderNumber]
		if !ok {
			order = &domain.Order{
				ID:          uuid.New(),
				CompanyID:   companyID,
				OrderNumber: row.OrderNumber,
				CreatedAt:   row.SaleDate,
			}
			byNumber[row.OrderNumber] = order
			numberOrder = append(numberOrder, row.OrderNumber)
		}

		variant := bySKU[row.SKU]
		order.LineItems = append(order.LineItems, domain.OrderLineItem{
			ID:         uuid.New(),
			CompanyID:  companyID,
			OrderID:    order.ID,
			VariantID:  variant.ID,
			SKU:        row.SKU,
			Quantity:   row.Quantity,
			Price:      row.UnitPrice,
			CostAtTime: variant.Cost,
		})
		order.TotalAmount += int64(row.Quantity) * row.UnitPrice
	}

	orders := make([]domain.Order, 0, len(numberOrder))
	for _, number := range numberOrder {
		orders = append(orders, *byNumber[number])
	}
	return orders
}
