// internal/domain/reorder.go
package domain

import "github.com/google/uuid"

// ReorderSuggestion is one row of the reorder report, computed on demand and
// never persisted. SuggestedReorderQuantity equals BaseQuantity unless the
// refinement step supplied a replacement for that SKU.
type ReorderSuggestion struct {
	SKU                      string     `json:"sku"`
	ProductName              string     `json:"product_name"`
	VariantID                uuid.UUID  `json:"variant_id"`
	SupplierID               *uuid.UUID `json:"supplier_id,omitempty"`
	SupplierName             *string    `json:"supplier_name,omitempty"`
	CurrentQuantity          int        `json:"current_quantity"`
	ReorderPoint             int        `json:"reorder_point"`
	BaseQuantity             int        `json:"base_quantity"`
	SuggestedReorderQuantity int        `json:"suggested_reorder_quantity"`
	UnitCost                 *int64     `json:"unit_cost,omitempty"`
	SeasonalityFactor        *float64   `json:"seasonality_factor,omitempty"`
	Confidence               *float64   `json:"confidence,omitempty"`
	AdjustmentReason         *string    `json:"adjustment_reason,omitempty"`
}

// TotalCost returns quantity times unit cost in cents, zero when cost is unknown.
func (s ReorderSuggestion) TotalCost() int64 {
	if s.UnitCost == nil {
		return 0
	}
	return int64(s.SuggestedReorderQuantity) * *s.UnitCost
}

// RefinementInput is one SKU handed to the refinement step.
type RefinementInput struct {
	SKU               string       `json:"sku"`
	BaseQuantity      int          `json:"base_quantity"`
	RecentSalesSeries []SalesPoint `json:"recent_sales_series"`
}

// RefinementResult is the validated per-SKU output of the refinement step.
// The contract is multiplicative: the adjusted quantity is
// round(base_quantity * SeasonalityFactor).
type RefinementResult struct {
	SKU               string  `json:"sku"`
	SeasonalityFactor float64 `json:"seasonality_factor"`
	Confidence        float64 `json:"confidence"`
	AdjustmentReason  string  `json:"adjustment_reason"`
}

// CreatePOResult reports the outcome of materializing purchase orders from a
// suggestion batch.
type CreatePOResult struct {
	CreatedCount int         `json:"created_count"`
	SkippedCount int         `json:"skipped_count"`
	POIDs        []uuid.UUID `json:"po_ids"`
	Message      string      `json:"message"`
}
