package reorder

import (
	"math"
	"time"

	"github.com/ruthwikaki/invochat-go/internal/domain"
)

// Policy carries the knobs of the base-quantity heuristic. Zero values are
// replaced with the defaults below.
type Policy struct {
	LeadTimeDays       int
	SafetyStockDays    int
	VelocityWindowDays int
}

const (
	defaultLeadTimeDays       = 14
	defaultSafetyStockDays    = 7
	defaultVelocityWindowDays = 90
)

func (p Policy) normalized() Policy {
	if p.LeadTimeDays <= 0 {
		p.LeadTimeDays = defaultLeadTimeDays
	}
	if p.SafetyStockDays < 0 {
		p.SafetyStockDays = defaultSafetyStockDays
	}
	if p.VelocityWindowDays <= 0 {
		p.VelocityWindowDays = defaultVelocityWindowDays
	}
	return p
}

// Calculator derives baseline reorder quantities from current stock, the
// configured reorder point and trailing sales velocity.
type Calculator struct {
	policy Policy
}

// NewCalculator creates a calculator with the given policy.
func NewCalculator(policy Policy) *Calculator {
	return &Calculator{policy: policy.normalized()}
}

// Velocity returns average units sold per day over the trailing window.
// Points older than the window are ignored.
func (c *Calculator) Velocity(series []domain.SalesPoint, now time.Time) float64 {
	cutoff := now.AddDate(0, 0, -c.policy.VelocityWindowDays)

	total := 0
	for _, p := range series {
		if p.SaleDate.Before(cutoff) {
			continue
		}
		total += p.TotalQuantity
	}
	if total == 0 {
		return 0
	}
	return float64(total) / float64(c.policy.VelocityWindowDays)
}

// BaseQuantity computes the baseline order quantity for a single variant.
//
// A variant at or above its reorder point needs nothing. Otherwise the
// target stock level is whichever is larger: enough to cover expected demand
// over lead time plus safety margin, or twice the reorder point. With no
// sales history this reduces to 2*reorderPoint - current, the documented
// default. The result is a non-negative integer, demand rounded up.
func (c *Calculator) BaseQuantity(current, reorderPoint int, velocity float64) int {
	if current < 0 {
		current = 0
	}
	if reorderPoint <= 0 || current >= reorderPoint {
		return 0
	}

	demand := int(math.Ceil(velocity * float64(c.policy.LeadTimeDays+c.policy.SafetyStockDays)))
	target := 2 * reorderPoint
	if demand > target {
		target = demand
	}

	if target <= current {
		return 0
	}
	return target - current
}

// BuildSuggestions computes base quantities for all variants and returns the
// active suggestion list: variants whose base quantity is zero are excluded.
// Input order is preserved. The sales map is keyed by SKU.
func (c *Calculator) BuildSuggestions(variants []domain.ProductVariant, sales map[string][]domain.SalesPoint, now time.Time) []domain.ReorderSuggestion {
	suggestions := make([]domain.ReorderSuggestion, 0, len(variants))

	for _, v := range variants {
		if v.ReorderPoint == nil || *v.ReorderPoint <= 0 {
			continue
		}

		velocity := c.Velocity(sales[v.SKU], now)
		base := c.BaseQuantity(v.InventoryQuantity, *v.ReorderPoint, velocity)
		if base == 0 {
			continue
		}

		suggestions = append(suggestions, domain.ReorderSuggestion{
			SKU:                      v.SKU,
			ProductName:              v.ProductTitle,
			VariantID:                v.ID,
			SupplierID:               v.SupplierID,
			SupplierName:             v.SupplierName,
			CurrentQuantity:          v.InventoryQuantity,
			ReorderPoint:             *v.ReorderPoint,
			BaseQuantity:             base,
			SuggestedReorderQuantity: base,
			UnitCost:                 v.Cost,
		})
	}

	return suggestions
}
