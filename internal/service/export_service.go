package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/storage"
)

// ExportService renders reorder suggestions as CSV and archives a copy to
// object storage when one is configured.
type ExportService struct {
	store storage.ObjectStorage
}

func NewExportService(store storage.ObjectStorage) *ExportService {
	return &ExportService{store: store}
}

var exportHeader = []string{
	"sku",
	"product_name",
	"supplier_name",
	"current_quantity",
	"suggested_reorder_quantity",
	"unit_cost",
	"total_cost",
	"adjustment_reason",
	"confidence",
}

// SuggestionsCSV renders the suggestion list in export column order. Costs
// are integer cents; optional fields render as empty cells.
func (s *ExportService) SuggestionsCSV(ctx context.Context, companyID uuid.UUID, suggestions []domain.ReorderSuggestion) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeader); err != nil {
		return nil, "", fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, sg := range suggestions {
		record := []string{
			sg.SKU,
			sg.ProductName,
			strPtr(sg.SupplierName),
			strconv.Itoa(sg.CurrentQuantity),
			strconv.Itoa(sg.SuggestedReorderQuantity),
			centsPtr(sg.UnitCost),
			strconv.FormatInt(sg.TotalCost(), 10),
			strPtr(sg.AdjustmentReason),
			floatPtr(sg.Confidence),
		}
		if err := writer.Write(record); err != nil {
			return nil, "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to flush csv: %w", err)
	}

	filename := fmt.Sprintf("reorder_suggestions_%s.csv", time.Now().UTC().Format("20060102_150405"))
	s.archive(ctx, companyID, filename, buf.Bytes())

	return buf.Bytes(), filename, nil
}

var inventoryHeader = []string{
	"sku",
	"product_name",
	"supplier_name",
	"quantity",
	"cost",
	"price",
	"reorder_point",
	"reorder_quantity",
}

// InventoryCSV renders the variant list for download.
func (s *ExportService) InventoryCSV(ctx context.Context, companyID uuid.UUID, variants []domain.ProductVariant) ([]byte, string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(inventoryHeader); err != nil {
		return nil, "", fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, v := range variants {
		record := []string{
			v.SKU,
			v.ProductTitle,
			strPtr(v.SupplierName),
			strconv.Itoa(v.InventoryQuantity),
			centsPtr(v.Cost),
			centsPtr(v.Price),
			intPtr(v.ReorderPoint),
			intPtr(v.ReorderQuantity),
		}
		if err := writer.Write(record); err != nil {
			return nil, "", fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to flush csv: %w", err)
	}

	filename := fmt.Sprintf("inventory_%s.csv", time.Now().UTC().Format("20060102_150405"))
	s.archive(ctx, companyID, filename, buf.Bytes())

	return buf.Bytes(), filename, nil
}

// archive uploads a copy of the export; failure is logged, never fatal.
func (s *ExportService) archive(ctx context.Context, companyID uuid.UUID, filename string, payload []byte) {
	if s.store == nil {
		return
	}
	objectName := fmt.Sprintf("%s/%s", companyID, filename)
	if err := s.store.Upload(ctx, objectName, bytes.NewReader(payload), int64(len(payload)), "text/csv"); err != nil {
		log.Warn().Err(err).Str("object", objectName).Msg("failed to archive export")
	}
}

// ListArchives returns the filenames previously archived for a company.
func (s *ExportService) ListArchives(ctx context.Context, companyID uuid.UUID) ([]string, error) {
	if s.store == nil {
		return []string{}, nil
	}

	prefix := companyID.String() + "/"
	objects, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list archives: %w", err)
	}

	names := make([]string, 0, len(objects))
	for _, o := range objects {
		names = append(names, strings.TrimPrefix(o, prefix))
	}
	return names, nil
}

// FetchArchive opens one archived export. The name must be a bare filename;
// anything that could escape the company prefix is rejected.
func (s *ExportService) FetchArchive(ctx context.Context, companyID uuid.UUID, filename string) (io.ReadCloser, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not configured")
	}
	if filename == "" || strings.ContainsAny(filename, "/\\") || strings.Contains(filename, "..") {
		return nil, fmt.Errorf("invalid archive name %q", filename)
	}
	return s.store.Download(ctx, companyID.String()+"/"+filename)
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func centsPtr(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}

func intPtr(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}

func floatPtr(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}
