package analytics

import (
	"math"
	"sort"

	"github.com/ruthwikaki/invochat-go/internal/domain"
)

// Weights of the supplier performance score.
const (
	deliveryWeight = 0.30
	qualityWeight  = 0.25
	costWeight     = 0.25
	responseWeight = 0.20
)

// ScoreSuppliers turns raw per-supplier metrics into weighted performance
// scores with tiers, sorted best first. Response time is normalized so that
// every hour of average response costs five points.
func ScoreSuppliers(metrics []domain.SupplierMetrics) []domain.SupplierScore {
	scores := make([]domain.SupplierScore, 0, len(metrics))

	for _, m := range metrics {
		responseScore := math.Max(0, 100-m.ResponseTimeHours*5)

		score := m.OnTimeDeliveryRate*deliveryWeight +
			m.QualityScore*qualityWeight +
			m.CostCompetitiveness*costWeight +
			responseScore*responseWeight

		score = math.Round(score*10) / 10

		scores = append(scores, domain.SupplierScore{
			SupplierID:       m.SupplierID,
			SupplierName:     m.SupplierName,
			PerformanceScore: score,
			Tier:             supplierTier(score),
			TotalOrders:      m.TotalOrders,
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].PerformanceScore != scores[j].PerformanceScore {
			return scores[i].PerformanceScore > scores[j].PerformanceScore
		}
		return scores[i].SupplierName < scores[j].SupplierName
	})

	return scores
}

func supplierTier(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 80:
		return "Good"
	case score >= 70:
		return "Average"
	default:
		return "Poor"
	}
}
