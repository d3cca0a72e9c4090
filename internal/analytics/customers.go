package analytics

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/domain"
)

// CustomerRow is the per-customer order aggregate used for segmentation.
type CustomerRow struct {
	CustomerID   uuid.UUID  `db:"customer_id"`
	Name         string     `db:"name"`
	TotalOrders  int        `db:"total_orders"`
	TotalSpent   int64      `db:"total_spent"`
	FirstOrderAt *time.Time `db:"first_order_at"`
}

// CustomerInsights segments customers RFM-style. Each dimension scores up to
// 5: order frequency per month, total orders normalized by 4, and spend
// normalized by $1000. Segment cut points are 12/9/6 on the summed score.
func CustomerInsights(rows []CustomerRow, now time.Time) []domain.CustomerInsight {
	insights := make([]domain.CustomerInsight, 0, len(rows))
	for _, r := range rows {
		if r.TotalOrders == 0 {
			continue
		}

		months := 1.0
		if r.FirstOrderAt != nil {
			if m := now.Sub(*r.FirstOrderAt).Hours() / 24 / 30; m > 1 {
				months = m
			}
		}

		recency := min5(float64(r.TotalOrders) / months)
		frequency := min5(float64(r.TotalOrders) / 4)
		monetary := min5(float64(r.TotalSpent) / 100000)
		total := recency + frequency + monetary

		segment := "New Customers"
		switch {
		case total >= 12:
			segment = "Champions"
		case total >= 9:
			segment = "Loyal Customers"
		case total >= 6:
			segment = "Potential Loyalists"
		}

		insights = append(insights, domain.CustomerInsight{
			CustomerID:    r.CustomerID,
			Name:          r.Name,
			TotalOrders:   r.TotalOrders,
			TotalSpent:    r.TotalSpent,
			AvgOrderValue: r.TotalSpent / int64(r.TotalOrders),
			TotalScore:    total,
			Segment:       segment,
		})
	}

	sort.Slice(insights, func(i, j int) bool {
		if insights[i].TotalScore != insights[j].TotalScore {
			return insights[i].TotalScore > insights[j].TotalScore
		}
		return insights[i].Name < insights[j].Name
	})
	return insights
}

func min5(v float64) float64 {
	if v > 5 {
		return 5
	}
	return v
}
