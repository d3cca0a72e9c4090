package reorder

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/domain"
)

func testPolicy() Policy {
	return Policy{LeadTimeDays: 14, SafetyStockDays: 7, VelocityWindowDays: 30}
}

func intPtr(v int) *int { return &v }

func variant(sku string, stock int, reorderPoint *int) domain.ProductVariant {
	return domain.ProductVariant{
		ID:                uuid.New(),
		SKU:               sku,
		ProductTitle:      "Product " + sku,
		InventoryQuantity: stock,
		ReorderPoint:      reorderPoint,
	}
}

func dailySales(now time.Time, days, qtyPerDay int) []domain.SalesPoint {
	series := make([]domain.SalesPoint, 0, days)
	for i := 1; i <= days; i++ {
		series = append(series, domain.SalesPoint{
			SaleDate:      now.AddDate(0, 0, -i),
			TotalQuantity: qtyPerDay,
		})
	}
	return series
}

func TestBaseQuantityAboveReorderPoint(t *testing.T) {
	c := NewCalculator(testPolicy())

	if got := c.BaseQuantity(100, 50, 3.5); got != 0 {
		t.Fatalf("stock above reorder point: expected 0, got %d", got)
	}
	if got := c.BaseQuantity(50, 50, 3.5); got != 0 {
		t.Fatalf("stock at reorder point: expected 0, got %d", got)
	}
}

func TestBaseQuantityNoSalesHistory(t *testing.T) {
	c := NewCalculator(testPolicy())

	// Documented default: 2*reorder_point - current.
	if got := c.BaseQuantity(10, 40, 0); got != 70 {
		t.Fatalf("expected 70, got %d", got)
	}
	if got := c.BaseQuantity(0, 25, 0); got != 50 {
		t.Fatalf("expected 50, got %d", got)
	}
}

func TestBaseQuantityCoversLeadTimeDemand(t *testing.T) {
	c := NewCalculator(testPolicy())

	// velocity 5/day over 21 cover days = 105 demand, above the 2*rp floor of 40.
	if got := c.BaseQuantity(10, 20, 5); got != 95 {
		t.Fatalf("expected 95, got %d", got)
	}

	// Fractional demand rounds up: 0.5 * 21 = 10.5 -> 11; floor 2*20=40 wins.
	if got := c.BaseQuantity(10, 20, 0.5); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
}

func TestBaseQuantityNeverNegative(t *testing.T) {
	c := NewCalculator(testPolicy())

	if got := c.BaseQuantity(-5, 10, 0); got < 0 {
		t.Fatalf("negative result: %d", got)
	}
	if got := c.BaseQuantity(0, 0, 10); got != 0 {
		t.Fatalf("zero reorder point should yield 0, got %d", got)
	}
}

func TestVelocityWindow(t *testing.T) {
	c := NewCalculator(testPolicy())
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// 30 days of 2 units/day inside the window plus stale points outside it.
	series := dailySales(now, 30, 2)
	series = append(series, domain.SalesPoint{SaleDate: now.AddDate(0, 0, -60), TotalQuantity: 500})

	got := c.Velocity(series, now)
	if got != 2.0 {
		t.Fatalf("expected velocity 2.0, got %v", got)
	}
}

func TestVelocityEmptySeries(t *testing.T) {
	c := NewCalculator(testPolicy())
	if got := c.Velocity(nil, time.Now()); got != 0 {
		t.Fatalf("expected 0 velocity, got %v", got)
	}
}

func TestBuildSuggestionsExcludesZeroQuantity(t *testing.T) {
	c := NewCalculator(testPolicy())
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	variants := []domain.ProductVariant{
		variant("SKU001", 10, intPtr(40)),  // below reorder point -> active
		variant("SKU002", 100, intPtr(40)), // healthy -> excluded
		variant("SKU003", 5, nil),          // no reorder point configured -> excluded
	}

	got := c.BuildSuggestions(variants, nil, now)
	if len(got) != 1 {
		t.Fatalf("expected 1 active suggestion, got %d", len(got))
	}
	if got[0].SKU != "SKU001" {
		t.Fatalf("expected SKU001, got %s", got[0].SKU)
	}
	if got[0].BaseQuantity != 70 {
		t.Fatalf("expected base 70, got %d", got[0].BaseQuantity)
	}
	if got[0].SuggestedReorderQuantity != got[0].BaseQuantity {
		t.Fatalf("suggested must equal base before refinement")
	}
}

func TestBuildSuggestionsPreservesOrder(t *testing.T) {
	c := NewCalculator(testPolicy())
	now := time.Now()

	variants := []domain.ProductVariant{
		variant("B-SKU", 1, intPtr(10)),
		variant("A-SKU", 2, intPtr(10)),
		variant("C-SKU", 3, intPtr(10)),
	}

	got := c.BuildSuggestions(variants, nil, now)
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(got))
	}
	for i, want := range []string{"B-SKU", "A-SKU", "C-SKU"} {
		if got[i].SKU != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, got[i].SKU)
		}
	}
}
