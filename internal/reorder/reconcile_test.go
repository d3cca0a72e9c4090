package reorder

import (
	"context"
	"errors"
	"testing"

	"github.com/ruthwikaki/invochat-go/internal/domain"
)

func baseSuggestions(skus ...string) []domain.ReorderSuggestion {
	out := make([]domain.ReorderSuggestion, 0, len(skus))
	for i, sku := range skus {
		qty := 50 + i*10
		out = append(out, domain.ReorderSuggestion{
			SKU:                      sku,
			BaseQuantity:             qty,
			SuggestedReorderQuantity: qty,
		})
	}
	return out
}

func TestReconcileAppliesSeasonalityFactor(t *testing.T) {
	base := baseSuggestions("SKU001")
	refined := map[string]domain.RefinementResult{
		"SKU001": {SKU: "SKU001", SeasonalityFactor: 1.3, Confidence: 0.8, AdjustmentReason: "Summer demand peak"},
	}

	out := Reconcile(base, refined)
	if len(out) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(out))
	}
	// round(50 * 1.3) == 65
	if out[0].SuggestedReorderQuantity != 65 {
		t.Fatalf("expected 65, got %d", out[0].SuggestedReorderQuantity)
	}
	if out[0].SeasonalityFactor == nil || *out[0].SeasonalityFactor != 1.3 {
		t.Fatalf("seasonality factor not carried over")
	}
	if out[0].Confidence == nil || *out[0].Confidence != 0.8 {
		t.Fatalf("confidence not carried over")
	}
	if out[0].AdjustmentReason == nil || *out[0].AdjustmentReason != "Summer demand peak" {
		t.Fatalf("adjustment reason not carried over")
	}
	if out[0].BaseQuantity != 50 {
		t.Fatalf("base quantity must stay untouched, got %d", out[0].BaseQuantity)
	}
}

func TestReconcilePreservesCardinalityAndOrder(t *testing.T) {
	base := baseSuggestions("SKU001", "SKU002", "SKU003")

	for _, refined := range []map[string]domain.RefinementResult{
		nil,
		{},
		{"SKU002": {SKU: "SKU002", SeasonalityFactor: 0.5, Confidence: 0.9, AdjustmentReason: "Slow season"}},
	} {
		out := Reconcile(base, refined)
		if len(out) != len(base) {
			t.Fatalf("cardinality changed: %d != %d", len(out), len(base))
		}
		for i := range base {
			if out[i].SKU != base[i].SKU {
				t.Fatalf("order changed at %d: %s != %s", i, out[i].SKU, base[i].SKU)
			}
		}
	}
}

func TestReconcilePartialRefinement(t *testing.T) {
	base := baseSuggestions("SKU001", "SKU002", "SKU003")
	refined := map[string]domain.RefinementResult{
		"SKU002": {SKU: "SKU002", SeasonalityFactor: 2.0, Confidence: 0.7, AdjustmentReason: "Holiday spike"},
	}

	out := Reconcile(base, refined)

	// SKU002 overridden: round(60 * 2.0) == 120.
	if out[1].SuggestedReorderQuantity != 120 {
		t.Fatalf("expected 120, got %d", out[1].SuggestedReorderQuantity)
	}

	// The rest keep base values with the fallback marker.
	for _, i := range []int{0, 2} {
		s := out[i]
		if s.SuggestedReorderQuantity != s.BaseQuantity {
			t.Fatalf("%s: expected base quantity %d, got %d", s.SKU, s.BaseQuantity, s.SuggestedReorderQuantity)
		}
		if s.AdjustmentReason == nil || *s.AdjustmentReason != FallbackReason {
			t.Fatalf("%s: missing fallback reason", s.SKU)
		}
		if s.SeasonalityFactor != nil || s.Confidence != nil {
			t.Fatalf("%s: unexpected refinement fields on fallback entry", s.SKU)
		}
	}
}

func TestReconcileFullFallback(t *testing.T) {
	base := baseSuggestions("SKU001", "SKU002")

	out := Reconcile(base, nil)
	for _, s := range out {
		if s.SuggestedReorderQuantity != s.BaseQuantity {
			t.Fatalf("%s: expected base quantity", s.SKU)
		}
		if s.AdjustmentReason == nil || *s.AdjustmentReason != FallbackReason {
			t.Fatalf("%s: missing fallback reason", s.SKU)
		}
	}
}

func TestReconcileClampsNegativeQuantity(t *testing.T) {
	base := baseSuggestions("SKU001")
	refined := map[string]domain.RefinementResult{
		"SKU001": {SKU: "SKU001", SeasonalityFactor: -1, Confidence: 0.2, AdjustmentReason: "bad factor"},
	}

	out := Reconcile(base, refined)
	if out[0].SuggestedReorderQuantity != 0 {
		t.Fatalf("negative quantity not clamped: %d", out[0].SuggestedReorderQuantity)
	}
}

type failingRefiner struct{}

func (failingRefiner) Refine(ctx context.Context, inputs []domain.RefinementInput) (map[string]domain.RefinementResult, error) {
	return nil, errors.New("upstream unavailable")
}

func TestNopRefiner(t *testing.T) {
	got, err := NopRefiner{}.Refine(context.Background(), []domain.RefinementInput{{SKU: "SKU001"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil map, got %v", got)
	}
}

func TestRefinerFailureDegradesToBase(t *testing.T) {
	base := baseSuggestions("SKU001", "SKU002")

	refined, err := failingRefiner{}.Refine(context.Background(), nil)
	if err == nil {
		t.Fatal("expected error from failing refiner")
	}
	// On error the caller drops the refinement map entirely.
	out := Reconcile(base, refined)
	if len(out) != len(base) {
		t.Fatalf("cardinality changed on failure")
	}
	for _, s := range out {
		if s.SuggestedReorderQuantity != s.BaseQuantity {
			t.Fatalf("%s: failure must fall back to base", s.SKU)
		}
		if s.AdjustmentReason == nil || *s.AdjustmentReason != FallbackReason {
			t.Fatalf("%s: missing fallback reason", s.SKU)
		}
	}
}
