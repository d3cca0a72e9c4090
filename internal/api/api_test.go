package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/analytics"
	"github.com/ruthwikaki/invochat-go/internal/api/middleware"
	"github.com/ruthwikaki/invochat-go/internal/config"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/reorder"
	"github.com/ruthwikaki/invochat-go/internal/service"
)

// stubStore implements the repository interfaces the exercised routes need.
type stubStore struct {
	variants []domain.ProductVariant
}

func (s *stubStore) ListVariants(ctx context.Context, companyID uuid.UUID, search string, limit, offset int) ([]domain.ProductVariant, int, error) {
	return s.variants, len(s.variants), nil
}

func (s *stubStore) GetVariant(ctx context.Context, companyID, variantID uuid.UUID) (*domain.ProductVariant, error) {
	for _, v := range s.variants {
		if v.ID == variantID {
			return &v, nil
		}
	}
	return nil, nil
}

func (s *stubStore) GetVariantsBySKU(ctx context.Context, companyID uuid.UUID, skus []string) ([]domain.ProductVariant, error) {
	return s.variants, nil
}

func (s *stubStore) GetReorderCandidates(ctx context.Context, companyID uuid.UUID) ([]domain.ProductVariant, error) {
	return s.variants, nil
}

func (s *stubStore) UpdateReorderSettings(ctx context.Context, companyID, variantID uuid.UUID, reorderPoint, reorderQuantity *int) error {
	return nil
}

func (s *stubStore) AdjustStock(ctx context.Context, companyID uuid.UUID, adj domain.StockAdjustment) error {
	return nil
}

func (s *stubStore) UpsertVariants(ctx context.Context, companyID uuid.UUID, rows []domain.InventoryUpsert) (int, error) {
	return len(rows), nil
}

func (s *stubStore) InventoryValue(ctx context.Context, companyID uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *stubStore) LowStockCount(ctx context.Context, companyID uuid.UUID) (int, error) {
	return 0, nil
}

func (s *stubStore) SalesSeries(ctx context.Context, companyID uuid.UUID, skus []string, since time.Time) (map[string][]domain.SalesPoint, error) {
	return nil, nil
}

func (s *stubStore) RevenueBySKU(ctx context.Context, companyID uuid.UUID, since time.Time) (map[string]int64, error) {
	return nil, nil
}

func (s *stubStore) COGS(ctx context.Context, companyID uuid.UUID, since time.Time) (int64, error) {
	return 0, nil
}

func (s *stubStore) VelocityRows(ctx context.Context, companyID uuid.UUID, since, midpoint time.Time) ([]analytics.VelocityRow, error) {
	return nil, nil
}

func (s *stubStore) MarginRows(ctx context.Context, companyID uuid.UUID, since time.Time) ([]analytics.MarginRow, error) {
	return nil, nil
}

func (s *stubStore) ListOrders(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]domain.Order, int, error) {
	return nil, 0, nil
}

func (s *stubStore) InsertOrders(ctx context.Context, companyID uuid.UUID, orders []domain.Order) (int, error) {
	return len(orders), nil
}

func (s *stubStore) Get(ctx context.Context, companyID uuid.UUID) (*domain.CompanySettings, error) {
	return &domain.CompanySettings{
		CompanyID:          companyID,
		Timezone:           "UTC",
		DeadStockDays:      90,
		LeadTimeDays:       14,
		SafetyStockDays:    7,
		VelocityWindowDays: 90,
	}, nil
}

func (s *stubStore) Record(ctx context.Context, companyID uuid.UUID, action, details string) error {
	return nil
}

func intp(v int) *int { return &v }

func newTestRouter(variants []domain.ProductVariant) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := &stubStore{variants: variants}

	reorderSvc := service.NewReorderService(store, store, store, nil, store, reorder.NopRefiner{},
		config.ReorderConfig{MaxRefinementBatch: 50})

	return NewRouter(&Services{
		Inventory: service.NewInventoryService(store, nil),
		Reorder:   reorderSvc,
		Analytics: service.NewAnalyticsService(store, store, nil, nil, store, nil, nil),
		Export:    service.NewExportService(nil),
		Order:     service.NewOrderService(store),
	}, nil)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestMissingCompanyHeaderRejected(t *testing.T) {
	router := newTestRouter(nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without %s, got %d", middleware.CompanyHeader, w.Code)
	}
}

func TestInvalidCompanyHeaderRejected(t *testing.T) {
	router := newTestRouter(nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory", nil)
	req.Header.Set(middleware.CompanyHeader, "not-a-uuid")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad header, got %d", w.Code)
	}
}

func TestReorderReportEndpoint(t *testing.T) {
	variants := []domain.ProductVariant{
		{
			ID:                uuid.New(),
			SKU:               "SKU001",
			ProductTitle:      "Widget",
			InventoryQuantity: 30,
			ReorderPoint:      intp(50),
		},
	}
	router := newTestRouter(variants)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/reorder", nil)
	req.Header.Set(middleware.CompanyHeader, uuid.New().String())
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Suggestions []domain.ReorderSuggestion `json:"suggestions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(body.Suggestions) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(body.Suggestions))
	}
	got := body.Suggestions[0]
	if got.SuggestedReorderQuantity != 70 {
		t.Errorf("expected quantity 70, got %d", got.SuggestedReorderQuantity)
	}
	if got.AdjustmentReason == nil || *got.AdjustmentReason != reorder.FallbackReason {
		t.Errorf("expected fallback reason, got %v", got.AdjustmentReason)
	}
}

func TestExportReorderSuggestionsCSV(t *testing.T) {
	variants := []domain.ProductVariant{
		{
			ID:                uuid.New(),
			SKU:               "SKU001",
			ProductTitle:      "Widget",
			InventoryQuantity: 30,
			ReorderPoint:      intp(50),
		},
	}
	router := newTestRouter(variants)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/reorder-suggestions?refine=false", nil)
	req.Header.Set(middleware.CompanyHeader, uuid.New().String())
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Errorf("expected attachment disposition")
	}
	body := w.Body.String()
	if !containsLinePrefix(body, "sku,product_name,supplier_name") {
		t.Errorf("unexpected csv header: %q", body)
	}
}

func containsLinePrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
