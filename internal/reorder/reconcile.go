package reorder

import (
	"math"

	"github.com/ruthwikaki/invochat-go/internal/domain"
)

// Reconcile left-joins the base suggestions with the (possibly partial,
// possibly nil) refinement results, keyed by SKU. The output has exactly one
// entry per input suggestion, in input order.
//
// A matched SKU gets suggested_reorder_quantity = round(base * factor) along
// with the seasonality factor, confidence and reason from the refinement.
// Everything else keeps its base quantity and is marked with FallbackReason.
func Reconcile(base []domain.ReorderSuggestion, refined map[string]domain.RefinementResult) []domain.ReorderSuggestion {
	out := make([]domain.ReorderSuggestion, len(base))

	for i, s := range base {
		r, ok := refined[s.SKU]
		if !ok {
			s.SuggestedReorderQuantity = s.BaseQuantity
			reason := FallbackReason
			s.AdjustmentReason = &reason
			out[i] = s
			continue
		}

		qty := int(math.Round(float64(s.BaseQuantity) * r.SeasonalityFactor))
		if qty < 0 {
			qty = 0
		}
		s.SuggestedReorderQuantity = qty
		factor := r.SeasonalityFactor
		confidence := r.Confidence
		reason := r.AdjustmentReason
		s.SeasonalityFactor = &factor
		s.Confidence = &confidence
		s.AdjustmentReason = &reason
		out[i] = s
	}

	return out
}
