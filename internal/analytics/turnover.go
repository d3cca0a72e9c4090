package analytics

import "github.com/ruthwikaki/invochat-go/internal/domain"

// Turnover computes the inventory turnover ratio for a trailing period:
// COGS over the period divided by current inventory value, both in cents.
func Turnover(periodDays int, cogs, inventoryValue int64) domain.TurnoverResult {
	result := domain.TurnoverResult{
		PeriodDays:     periodDays,
		COGS:           cogs,
		InventoryValue: inventoryValue,
	}

	if inventoryValue <= 0 || cogs <= 0 {
		result.Performance = "Dead Stock"
		return result
	}

	ratio := float64(cogs) / float64(inventoryValue)
	result.TurnoverRatio = ratio
	result.DaysOfInventory = float64(periodDays) / ratio

	switch {
	case ratio >= 10:
		result.Performance = "Excellent"
	case ratio >= 6:
		result.Performance = "Good"
	case ratio >= 3:
		result.Performance = "Average"
	default:
		result.Performance = "Poor"
	}

	return result
}
