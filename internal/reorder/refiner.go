package reorder

import (
	"context"

	"github.com/ruthwikaki/invochat-go/internal/domain"
)

// FallbackReason marks suggestions that kept their baseline quantity because
// the refinement step failed or omitted their SKU.
const FallbackReason = "Using baseline heuristic."

// Refiner asks an external service for seasonality-adjusted quantities.
// Implementations return a partial map of overrides keyed by SKU; any SKU
// absent from the map keeps its baseline. A non-nil error means the whole
// refinement step is skipped, it is never retried.
type Refiner interface {
	Refine(ctx context.Context, inputs []domain.RefinementInput) (map[string]domain.RefinementResult, error)
}

// NopRefiner refines nothing. Used when the AI step is disabled.
type NopRefiner struct{}

func (NopRefiner) Refine(ctx context.Context, inputs []domain.RefinementInput) (map[string]domain.RefinementResult, error) {
	return nil, nil
}
