package analytics

import "github.com/ruthwikaki/invochat-go/internal/domain"

// VelocityRow is the per-SKU aggregate the sales repository returns for a
// trailing period, plus first/last half quantities for trend detection.
type VelocityRow struct {
	SKU               string `db:"sku"`
	ProductTitle      string `db:"product_title"`
	TotalQuantity     int    `db:"total_quantity"`
	TotalRevenue      int64  `db:"total_revenue"`
	FirstHalfQuantity int    `db:"first_half_quantity"`
	LastHalfQuantity  int    `db:"last_half_quantity"`
}

// SalesVelocity derives per-day velocity and a coarse trend per SKU.
func SalesVelocity(rows []VelocityRow, periodDays int) []domain.VelocityItem {
	if periodDays <= 0 {
		periodDays = 30
	}

	items := make([]domain.VelocityItem, 0, len(rows))
	for _, r := range rows {
		trend := "stable"
		if r.LastHalfQuantity > r.FirstHalfQuantity {
			trend = "increasing"
		} else if r.LastHalfQuantity < r.FirstHalfQuantity {
			trend = "decreasing"
		}

		items = append(items, domain.VelocityItem{
			SKU:            r.SKU,
			ProductTitle:   r.ProductTitle,
			TotalQuantity:  r.TotalQuantity,
			TotalRevenue:   r.TotalRevenue,
			DaysPeriod:     periodDays,
			VelocityPerDay: float64(r.TotalQuantity) / float64(periodDays),
			RevenuePerDay:  float64(r.TotalRevenue) / float64(periodDays),
			Trend:          trend,
		})
	}

	return items
}
