package analytics

import (
	"sort"

	"github.com/ruthwikaki/invochat-go/internal/domain"
)

// OpportunityInput is the margin/velocity/stock profile of one SKU.
type OpportunityInput struct {
	SKU              string
	ProductTitle     string
	MarginPercentage float64
	VelocityPerDay   float64
	Inventory        int
}

// HiddenOpportunities scores SKUs whose performance mix leaves revenue on the
// table. High margin moving slowly wants marketing, high velocity at thin
// margin wants pricing work, and a deep balanced stock wants promotion.
// SKUs scoring zero are omitted; output is sorted by score descending.
func HiddenOpportunities(inputs []OpportunityInput) []domain.OpportunityItem {
	items := make([]domain.OpportunityItem, 0)
	for _, in := range inputs {
		score := 0
		var recommendations []string

		if in.MarginPercentage > 50 && in.VelocityPerDay < 5 {
			score += 30
			recommendations = append(recommendations, "Increase marketing for high-margin product")
		}
		if in.VelocityPerDay > 15 && in.MarginPercentage < 20 {
			score += 25
			recommendations = append(recommendations, "Optimize pricing or reduce costs")
		}
		if in.Inventory > 60 && in.MarginPercentage >= 20 && in.MarginPercentage <= 50 {
			score += 20
			recommendations = append(recommendations, "Consider bundling or promotional campaigns")
		}

		if score == 0 {
			continue
		}
		items = append(items, domain.OpportunityItem{
			SKU:              in.SKU,
			ProductTitle:     in.ProductTitle,
			OpportunityScore: score,
			MarginPercentage: in.MarginPercentage,
			VelocityPerDay:   in.VelocityPerDay,
			Inventory:        in.Inventory,
			Recommendations:  recommendations,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].OpportunityScore != items[j].OpportunityScore {
			return items[i].OpportunityScore > items[j].OpportunityScore
		}
		return items[i].SKU < items[j].SKU
	})
	return items
}
