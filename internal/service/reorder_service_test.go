package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/analytics"
	"github.com/ruthwikaki/invochat-go/internal/config"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/reorder"
)

type fakeInventoryRepo struct {
	candidates []domain.ProductVariant
}

func (f *fakeInventoryRepo) ListVariants(ctx context.Context, companyID uuid.UUID, search string, limit, offset int) ([]domain.ProductVariant, int, error) {
	return f.candidates, len(f.candidates), nil
}

func (f *fakeInventoryRepo) GetVariant(ctx context.Context, companyID, variantID uuid.UUID) (*domain.ProductVariant, error) {
	for _, v := range f.candidates {
		if v.ID == variantID {
			return &v, nil
		}
	}
	return nil, nil
}

func (f *fakeInventoryRepo) GetVariantsBySKU(ctx context.Context, companyID uuid.UUID, skus []string) ([]domain.ProductVariant, error) {
	var out []domain.ProductVariant
	for _, v := range f.candidates {
		for _, sku := range skus {
			if v.SKU == sku {
				out = append(out, v)
			}
		}
	}
	return out, nil
}

func (f *fakeInventoryRepo) GetReorderCandidates(ctx context.Context, companyID uuid.UUID) ([]domain.ProductVariant, error) {
	return f.candidates, nil
}

func (f *fakeInventoryRepo) UpdateReorderSettings(ctx context.Context, companyID, variantID uuid.UUID, reorderPoint, reorderQuantity *int) error {
	return nil
}

func (f *fakeInventoryRepo) AdjustStock(ctx context.Context, companyID uuid.UUID, adj domain.StockAdjustment) error {
	return nil
}

func (f *fakeInventoryRepo) UpsertVariants(ctx context.Context, companyID uuid.UUID, rows []domain.InventoryUpsert) (int, error) {
	return len(rows), nil
}

func (f *fakeInventoryRepo) InventoryValue(ctx context.Context, companyID uuid.UUID) (int64, error) {
	return 0, nil
}

func (f *fakeInventoryRepo) LowStockCount(ctx context.Context, companyID uuid.UUID) (int, error) {
	return 0, nil
}

type fakeSalesRepo struct {
	series map[string][]domain.SalesPoint
}

func (f *fakeSalesRepo) SalesSeries(ctx context.Context, companyID uuid.UUID, skus []string, since time.Time) (map[string][]domain.SalesPoint, error) {
	return f.series, nil
}

func (f *fakeSalesRepo) RevenueBySKU(ctx context.Context, companyID uuid.UUID, since time.Time) (map[string]int64, error) {
	return nil, nil
}

func (f *fakeSalesRepo) COGS(ctx context.Context, companyID uuid.UUID, since time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeSalesRepo) VelocityRows(ctx context.Context, companyID uuid.UUID, since, midpoint time.Time) ([]analytics.VelocityRow, error) {
	return nil, nil
}

func (f *fakeSalesRepo) MarginRows(ctx context.Context, companyID uuid.UUID, since time.Time) ([]analytics.MarginRow, error) {
	return nil, nil
}

func (f *fakeSalesRepo) ListOrders(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]domain.Order, int, error) {
	return nil, 0, nil
}

func (f *fakeSalesRepo) InsertOrders(ctx context.Context, companyID uuid.UUID, orders []domain.Order) (int, error) {
	return len(orders), nil
}

type fakeSettingsRepo struct {
	settings domain.CompanySettings
}

func (f *fakeSettingsRepo) Get(ctx context.Context, companyID uuid.UUID) (*domain.CompanySettings, error) {
	s := f.settings
	s.CompanyID = companyID
	return &s, nil
}

type fakePORepo struct {
	created []*domain.PurchaseOrder
}

func (f *fakePORepo) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	f.created = append(f.created, po)
	return nil
}

func (f *fakePORepo) List(ctx context.Context, companyID uuid.UUID, status string, limit, offset int) ([]domain.PurchaseOrder, int, error) {
	return nil, 0, nil
}

func (f *fakePORepo) Get(ctx context.Context, companyID, poID uuid.UUID) (*domain.PurchaseOrder, error) {
	return nil, nil
}

func (f *fakePORepo) MarkReceived(ctx context.Context, companyID, poID uuid.UUID, receivedAt time.Time) error {
	return nil
}

type fakeAuditRepo struct {
	entries []string
}

func (f *fakeAuditRepo) Record(ctx context.Context, companyID uuid.UUID, action, details string) error {
	f.entries = append(f.entries, action+": "+details)
	return nil
}

type stubRefiner struct {
	results map[string]domain.RefinementResult
	err     error
	inputs  []domain.RefinementInput
}

func (s *stubRefiner) Refine(ctx context.Context, inputs []domain.RefinementInput) (map[string]domain.RefinementResult, error) {
	s.inputs = inputs
	if s.err != nil {
		return nil, s.err
	}
	return s.results, nil
}

func intp(v int) *int       { return &v }
func centsp(v int64) *int64 { return &v }

func variant(sku string, qty, reorderPoint int, supplierID *uuid.UUID) domain.ProductVariant {
	return domain.ProductVariant{
		ID:                uuid.New(),
		SKU:               sku,
		ProductTitle:      "Product " + sku,
		InventoryQuantity: qty,
		ReorderPoint:      intp(reorderPoint),
		Cost:              centsp(250),
		SupplierID:        supplierID,
	}
}

func newTestReorderService(inv *fakeInventoryRepo, sales *fakeSalesRepo, po *fakePORepo, audit *fakeAuditRepo, refiner reorder.Refiner) *ReorderService {
	settings := &fakeSettingsRepo{settings: domain.CompanySettings{
		Timezone:           "UTC",
		DeadStockDays:      90,
		LeadTimeDays:       14,
		SafetyStockDays:    7,
		VelocityWindowDays: 90,
	}}
	return NewReorderService(inv, sales, settings, po, audit, refiner,
		config.ReorderConfig{MaxRefinementBatch: 50})
}

func TestSuggestionsAppliesRefinement(t *testing.T) {
	supplierID := uuid.New()
	inv := &fakeInventoryRepo{candidates: []domain.ProductVariant{
		variant("SKU001", 30, 50, &supplierID),
		variant("SKU002", 10, 40, &supplierID),
	}}
	sales := &fakeSalesRepo{series: map[string][]domain.SalesPoint{}}
	refiner := &stubRefiner{results: map[string]domain.RefinementResult{
		"SKU001": {SKU: "SKU001", SeasonalityFactor: 1.5, Confidence: 0.9, AdjustmentReason: "Holiday demand."},
	}}

	svc := newTestReorderService(inv, sales, &fakePORepo{}, &fakeAuditRepo{}, refiner)
	got, err := svc.Suggestions(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}

	// no history: base = 2*50 - 30 = 70, refined to round(70*1.5) = 105
	first := got[0]
	if first.BaseQuantity != 70 {
		t.Errorf("expected base 70, got %d", first.BaseQuantity)
	}
	if first.SuggestedReorderQuantity != 105 {
		t.Errorf("expected refined 105, got %d", first.SuggestedReorderQuantity)
	}
	if first.AdjustmentReason == nil || *first.AdjustmentReason != "Holiday demand." {
		t.Errorf("unexpected reason: %v", first.AdjustmentReason)
	}

	second := got[1]
	if second.SuggestedReorderQuantity != second.BaseQuantity {
		t.Errorf("unrefined SKU should keep base quantity")
	}
	if second.AdjustmentReason == nil || *second.AdjustmentReason != reorder.FallbackReason {
		t.Errorf("expected fallback reason, got %v", second.AdjustmentReason)
	}
}

func TestSuggestionsRefinerErrorFallsBack(t *testing.T) {
	supplierID := uuid.New()
	inv := &fakeInventoryRepo{candidates: []domain.ProductVariant{
		variant("SKU001", 30, 50, &supplierID),
	}}
	refiner := &stubRefiner{err: errors.New("upstream timeout")}

	svc := newTestReorderService(inv, &fakeSalesRepo{}, &fakePORepo{}, &fakeAuditRepo{}, refiner)
	got, err := svc.Suggestions(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("refiner failure must not fail the report: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	if got[0].SuggestedReorderQuantity != got[0].BaseQuantity {
		t.Errorf("expected baseline quantity after refiner failure")
	}
	if got[0].AdjustmentReason == nil || *got[0].AdjustmentReason != reorder.FallbackReason {
		t.Errorf("expected fallback reason, got %v", got[0].AdjustmentReason)
	}
}

func TestSuggestionsBatchCap(t *testing.T) {
	supplierID := uuid.New()
	inv := &fakeInventoryRepo{}
	for i := 0; i < 60; i++ {
		inv.candidates = append(inv.candidates, variant(fmt.Sprintf("SKU%03d", i), 0, 10, &supplierID))
	}
	refiner := &stubRefiner{}

	svc := newTestReorderService(inv, &fakeSalesRepo{}, &fakePORepo{}, &fakeAuditRepo{}, refiner)
	if _, err := svc.Suggestions(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refiner.inputs) != 50 {
		t.Errorf("expected refinement batch capped at 50, got %d", len(refiner.inputs))
	}
}

func TestBaselineSuggestionsSkipsRefiner(t *testing.T) {
	supplierID := uuid.New()
	inv := &fakeInventoryRepo{candidates: []domain.ProductVariant{
		variant("SKU001", 30, 50, &supplierID),
	}}
	refiner := &stubRefiner{results: map[string]domain.RefinementResult{
		"SKU001": {SKU: "SKU001", SeasonalityFactor: 2.0, Confidence: 0.9},
	}}

	svc := newTestReorderService(inv, &fakeSalesRepo{}, &fakePORepo{}, &fakeAuditRepo{}, refiner)
	got, err := svc.BaselineSuggestions(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refiner.inputs != nil {
		t.Errorf("refiner must not run for a baseline report")
	}
	if len(got) != 1 || got[0].SuggestedReorderQuantity != got[0].BaseQuantity {
		t.Errorf("expected baseline quantities, got %+v", got)
	}
}

func TestSuggestionsHealthyStockEmpty(t *testing.T) {
	supplierID := uuid.New()
	inv := &fakeInventoryRepo{candidates: []domain.ProductVariant{
		variant("SKU001", 100, 50, &supplierID),
	}}
	refiner := &stubRefiner{}

	svc := newTestReorderService(inv, &fakeSalesRepo{}, &fakePORepo{}, &fakeAuditRepo{}, refiner)
	got, err := svc.Suggestions(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty report, got %d suggestions", len(got))
	}
	if refiner.inputs != nil {
		t.Errorf("refiner should not run on an empty report")
	}
}

func TestCreatePurchaseOrdersGroupsAndSkips(t *testing.T) {
	supplierA := uuid.New()
	supplierB := uuid.New()
	po := &fakePORepo{}
	audit := &fakeAuditRepo{}
	svc := newTestReorderService(&fakeInventoryRepo{}, &fakeSalesRepo{}, po, audit, reorder.NopRefiner{})

	suggestions := []domain.ReorderSuggestion{
		{SKU: "SKU001", VariantID: uuid.New(), SupplierID: &supplierA, SuggestedReorderQuantity: 10, UnitCost: centsp(100)},
		{SKU: "SKU002", VariantID: uuid.New(), SupplierID: &supplierA, SuggestedReorderQuantity: 5, UnitCost: centsp(200)},
		{SKU: "SKU003", VariantID: uuid.New(), SupplierID: &supplierB, SuggestedReorderQuantity: 3},
		{SKU: "SKU004", VariantID: uuid.New(), SupplierID: nil, SuggestedReorderQuantity: 7},
		{SKU: "SKU005", VariantID: uuid.New(), SupplierID: nil, SuggestedReorderQuantity: 2},
	}

	result, err := svc.CreatePurchaseOrders(context.Background(), uuid.New(), suggestions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.CreatedCount != 2 {
		t.Errorf("expected 2 purchase orders, got %d", result.CreatedCount)
	}
	if result.SkippedCount != 2 {
		t.Errorf("expected 2 skipped, got %d", result.SkippedCount)
	}
	want := "2 purchase order(s) created. 2 item(s) were skipped (no supplier assigned)."
	if result.Message != want {
		t.Errorf("unexpected message: %q", result.Message)
	}
	if !strings.Contains(result.Message, "item(s) were skipped") {
		t.Errorf("message must mention skipped items: %q", result.Message)
	}

	if len(po.created) != 2 {
		t.Fatalf("expected 2 created POs, got %d", len(po.created))
	}
	first := po.created[0]
	if len(first.LineItems) != 2 {
		t.Errorf("expected first PO to have 2 line items, got %d", len(first.LineItems))
	}
	if first.TotalCost != 10*100+5*200 {
		t.Errorf("unexpected total cost %d", first.TotalCost)
	}
	if first.Status != domain.POStatusDraft {
		t.Errorf("expected draft status, got %q", first.Status)
	}
	if len(audit.entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(audit.entries))
	}
	entry := audit.entries[0]
	for _, sku := range []string{"SKU001", "SKU002", "SKU003"} {
		if !strings.Contains(entry, sku) {
			t.Errorf("audit entry should list included SKU %s: %q", sku, entry)
		}
	}
	if strings.Contains(entry, "SKU004") || strings.Contains(entry, "SKU005") {
		t.Errorf("audit entry should not list skipped SKUs: %q", entry)
	}
}

func TestCreatePurchaseOrdersEmptyBatch(t *testing.T) {
	po := &fakePORepo{}
	svc := newTestReorderService(&fakeInventoryRepo{}, &fakeSalesRepo{}, po, &fakeAuditRepo{}, reorder.NopRefiner{})

	result, err := svc.CreatePurchaseOrders(context.Background(), uuid.New(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CreatedCount != 0 || result.SkippedCount != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
	if len(po.created) != 0 {
		t.Errorf("no purchase orders should be created")
	}
}
