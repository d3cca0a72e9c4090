package analytics

import (
	"sort"

	"github.com/ruthwikaki/invochat-go/internal/domain"
)

// MarginRow is the per-SKU revenue/cost aggregate the sales repository
// returns for a trailing period, in cents.
type MarginRow struct {
	SKU          string `db:"sku"`
	ProductTitle string `db:"product_title"`
	Revenue      int64  `db:"revenue"`
	Cost         int64  `db:"cost"`
	Quantity     int    `db:"quantity"`
}

// GrossMargin computes profit, margin percentage and margin per unit for each
// SKU. Output is sorted by profit descending.
func GrossMargin(rows []MarginRow) []domain.MarginItem {
	items := make([]domain.MarginItem, 0, len(rows))
	for _, r := range rows {
		profit := r.Revenue - r.Cost
		item := domain.MarginItem{
			SKU:          r.SKU,
			ProductTitle: r.ProductTitle,
			Revenue:      r.Revenue,
			Cost:         r.Cost,
			Profit:       profit,
			Quantity:     r.Quantity,
		}
		if r.Revenue > 0 {
			item.MarginPercentage = float64(profit) / float64(r.Revenue) * 100
		}
		if r.Quantity > 0 {
			item.MarginPerUnit = float64(profit) / float64(r.Quantity)
		}
		items = append(items, item)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Profit != items[j].Profit {
			return items[i].Profit > items[j].Profit
		}
		return items[i].SKU < items[j].SKU
	})
	return items
}
