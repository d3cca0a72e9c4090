// Package analytics holds the pure report calculations. Input rows come from
// the repositories; nothing in here touches the database.
package analytics

import (
	"sort"

	"github.com/ruthwikaki/invochat-go/internal/domain"
)

// ABCAnalysis categorizes SKUs by cumulative revenue share: A up to 80%,
// B up to 95%, C for the tail. Output is sorted by revenue descending.
func ABCAnalysis(revenueBySKU map[string]int64) []domain.ABCItem {
	if len(revenueBySKU) == 0 {
		return []domain.ABCItem{}
	}

	items := make([]domain.ABCItem, 0, len(revenueBySKU))
	var total int64
	for sku, revenue := range revenueBySKU {
		items = append(items, domain.ABCItem{SKU: sku, Revenue: revenue})
		total += revenue
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Revenue != items[j].Revenue {
			return items[i].Revenue > items[j].Revenue
		}
		return items[i].SKU < items[j].SKU
	})

	if total == 0 {
		for i := range items {
			items[i].Category = "C"
		}
		return items
	}

	var cumulative int64
	for i := range items {
		cumulative += items[i].Revenue
		pct := float64(cumulative) / float64(total) * 100
		items[i].CumulativePercentage = pct

		switch {
		case pct <= 80:
			items[i].Category = "A"
		case pct <= 95:
			items[i].Category = "B"
		default:
			items[i].Category = "C"
		}
	}

	return items
}
