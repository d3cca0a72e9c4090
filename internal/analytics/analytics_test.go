package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/domain"
)

func TestABCAnalysisCategorization(t *testing.T) {
	revenue := map[string]int64{
		"A1": 10000,
		"A2": 8000,
		"B1": 3000,
		"B2": 2000,
		"C1": 500,
		"C2": 300,
	}

	items := ABCAnalysis(revenue)
	if len(items) != 6 {
		t.Fatalf("expected 6 items, got %d", len(items))
	}

	byCategory := map[string]string{}
	for _, it := range items {
		byCategory[it.SKU] = it.Category
	}

	// Total 23800: A1 42.0%, +A2 75.6%, +B1 88.2%, +B2 96.6%, tail C.
	for sku, want := range map[string]string{
		"A1": "A", "A2": "A", "B1": "B", "B2": "C", "C1": "C", "C2": "C",
	} {
		if byCategory[sku] != want {
			t.Fatalf("%s: expected %s, got %s", sku, want, byCategory[sku])
		}
	}

	if items[0].SKU != "A1" {
		t.Fatalf("expected highest revenue first, got %s", items[0].SKU)
	}
	if items[len(items)-1].CumulativePercentage < 99.9 {
		t.Fatalf("last cumulative percentage should reach 100, got %v", items[len(items)-1].CumulativePercentage)
	}
}

func TestABCAnalysisEmpty(t *testing.T) {
	if got := ABCAnalysis(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %d items", len(got))
	}
}

func TestTurnoverRatios(t *testing.T) {
	fast := Turnover(365, 1200000, 10000)
	if fast.TurnoverRatio != 120 {
		t.Fatalf("expected ratio 120, got %v", fast.TurnoverRatio)
	}
	if fast.Performance != "Excellent" {
		t.Fatalf("expected Excellent, got %s", fast.Performance)
	}

	slow := Turnover(365, 600000, 200000)
	if slow.TurnoverRatio != 3 {
		t.Fatalf("expected ratio 3, got %v", slow.TurnoverRatio)
	}
	if slow.Performance != "Average" {
		t.Fatalf("expected Average, got %s", slow.Performance)
	}

	dead := Turnover(365, 0, 150000)
	if dead.Performance != "Dead Stock" {
		t.Fatalf("expected Dead Stock, got %s", dead.Performance)
	}
}

func TestScoreSuppliers(t *testing.T) {
	metrics := []domain.SupplierMetrics{
		{
			SupplierID:          uuid.New(),
			SupplierName:        "Acme Logistics",
			OnTimeDeliveryRate:  95,
			QualityScore:        88,
			CostCompetitiveness: 85,
			ResponseTimeHours:   2,
			TotalOrders:         150,
		},
		{
			SupplierID:          uuid.New(),
			SupplierName:        "Budget Freight",
			OnTimeDeliveryRate:  78,
			QualityScore:        92,
			CostCompetitiveness: 90,
			ResponseTimeHours:   8,
			TotalOrders:         75,
		},
	}

	scores := ScoreSuppliers(metrics)
	if len(scores) != 2 {
		t.Fatalf("expected 2 scores, got %d", len(scores))
	}

	// 95*.3 + 88*.25 + 85*.25 + 90*.2 = 89.75 -> 89.8
	if scores[0].SupplierName != "Acme Logistics" {
		t.Fatalf("expected Acme first, got %s", scores[0].SupplierName)
	}
	if scores[0].PerformanceScore != 89.8 {
		t.Fatalf("expected 89.8, got %v", scores[0].PerformanceScore)
	}
	if scores[0].Tier != "Good" {
		t.Fatalf("expected Good, got %s", scores[0].Tier)
	}
	if scores[1].PerformanceScore >= scores[0].PerformanceScore {
		t.Fatalf("expected Budget Freight to score lower")
	}
}

func TestForecastIncreasingTrend(t *testing.T) {
	series := []float64{100, 120, 110, 130, 125, 140, 135, 150}

	got := Forecast("SKU001", series)
	if len(got.MovingAverages) != 5 {
		t.Fatalf("expected 5 moving averages, got %d", len(got.MovingAverages))
	}
	if got.MovingAverages[0] != 115 {
		t.Fatalf("expected first average 115, got %v", got.MovingAverages[0])
	}
	if got.Forecast <= 135 {
		t.Fatalf("expected increasing forecast above 135, got %v", got.Forecast)
	}
	if got.Trend != "increasing" {
		t.Fatalf("expected increasing trend, got %s", got.Trend)
	}
}

func TestForecastShortSeries(t *testing.T) {
	got := Forecast("SKU001", []float64{10, 20})
	if got.Forecast != 15 {
		t.Fatalf("expected mean fallback 15, got %v", got.Forecast)
	}
	if got.Trend != "stable" {
		t.Fatalf("expected stable trend, got %s", got.Trend)
	}

	empty := Forecast("SKU002", nil)
	if empty.Forecast != 0 {
		t.Fatalf("expected 0 for empty series, got %v", empty.Forecast)
	}
}

func TestSalesVelocity(t *testing.T) {
	rows := []VelocityRow{
		{SKU: "TEST-001", ProductTitle: "Widget", TotalQuantity: 45, TotalRevenue: 450000, FirstHalfQuantity: 10, LastHalfQuantity: 20},
		{SKU: "TEST-002", ProductTitle: "Gadget", TotalQuantity: 30, TotalRevenue: 90000, FirstHalfQuantity: 15, LastHalfQuantity: 15},
	}

	items := SalesVelocity(rows, 30)
	if items[0].VelocityPerDay != 1.5 {
		t.Fatalf("expected 1.5/day, got %v", items[0].VelocityPerDay)
	}
	if items[0].RevenuePerDay != 15000 {
		t.Fatalf("expected 15000 cents/day, got %v", items[0].RevenuePerDay)
	}
	if items[0].Trend != "increasing" {
		t.Fatalf("expected increasing, got %s", items[0].Trend)
	}
	if items[1].Trend != "stable" {
		t.Fatalf("expected stable, got %s", items[1].Trend)
	}
}

func TestGrossMargin(t *testing.T) {
	rows := []MarginRow{
		{SKU: "PROD-002", ProductTitle: "Gadget", Revenue: 500000, Cost: 400000, Quantity: 50},
		{SKU: "PROD-001", ProductTitle: "Widget", Revenue: 1000000, Cost: 600000, Quantity: 100},
	}

	items := GrossMargin(rows)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].SKU != "PROD-001" {
		t.Fatalf("expected highest profit first, got %s", items[0].SKU)
	}
	if items[0].Profit != 400000 {
		t.Fatalf("expected profit 400000, got %d", items[0].Profit)
	}
	if items[0].MarginPercentage != 40 {
		t.Fatalf("expected 40%% margin, got %v", items[0].MarginPercentage)
	}
	if items[0].MarginPerUnit != 4000 {
		t.Fatalf("expected 4000 cents/unit, got %v", items[0].MarginPerUnit)
	}
	if items[1].MarginPercentage != 20 {
		t.Fatalf("expected 20%% margin, got %v", items[1].MarginPercentage)
	}
}

func TestGrossMarginZeroRevenue(t *testing.T) {
	items := GrossMargin([]MarginRow{{SKU: "FREEBIE", Cost: 100, Quantity: 0}})
	if items[0].MarginPercentage != 0 || items[0].MarginPerUnit != 0 {
		t.Fatalf("zero revenue and quantity must not divide: %+v", items[0])
	}
}

func TestHiddenOpportunities(t *testing.T) {
	inputs := []OpportunityInput{
		{SKU: "HIGH-MARGIN-LOW-VEL", MarginPercentage: 60, VelocityPerDay: 2, Inventory: 100},
		{SKU: "LOW-MARGIN-HIGH-VEL", MarginPercentage: 15, VelocityPerDay: 20, Inventory: 50},
		{SKU: "BALANCED-PROD", MarginPercentage: 35, VelocityPerDay: 10, Inventory: 75},
		{SKU: "NOTHING-TO-SEE", MarginPercentage: 30, VelocityPerDay: 8, Inventory: 10},
	}

	items := HiddenOpportunities(inputs)
	if len(items) != 3 {
		t.Fatalf("expected 3 opportunities, got %d", len(items))
	}

	scores := map[string]int{}
	for _, it := range items {
		scores[it.SKU] = it.OpportunityScore
	}
	if scores["HIGH-MARGIN-LOW-VEL"] != 30 {
		t.Errorf("expected score 30 for slow high-margin SKU, got %d", scores["HIGH-MARGIN-LOW-VEL"])
	}
	if scores["LOW-MARGIN-HIGH-VEL"] != 25 {
		t.Errorf("expected score 25 for thin-margin mover, got %d", scores["LOW-MARGIN-HIGH-VEL"])
	}
	if scores["BALANCED-PROD"] != 20 {
		t.Errorf("expected score 20 for deep balanced stock, got %d", scores["BALANCED-PROD"])
	}
	if items[0].SKU != "HIGH-MARGIN-LOW-VEL" {
		t.Errorf("expected highest score first, got %s", items[0].SKU)
	}
	if len(items[0].Recommendations) == 0 {
		t.Errorf("opportunities must carry recommendations")
	}
}

func TestCustomerInsightsSegments(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	eightMonths := now.AddDate(0, -8, 0)
	tenMonths := now.AddDate(0, -10, 0)

	rows := []CustomerRow{
		{CustomerID: uuid.New(), Name: "Big Spender", TotalOrders: 20, TotalSpent: 500000, FirstOrderAt: &eightMonths},
		{CustomerID: uuid.New(), Name: "One Timer", TotalOrders: 2, TotalSpent: 80000, FirstOrderAt: &tenMonths},
		{CustomerID: uuid.New(), Name: "No Orders", TotalOrders: 0},
	}

	insights := CustomerInsights(rows, now)
	if len(insights) != 2 {
		t.Fatalf("expected customers without orders to be skipped, got %d", len(insights))
	}
	if insights[0].Name != "Big Spender" || insights[0].Segment != "Champions" {
		t.Fatalf("expected Big Spender as Champions, got %s/%s", insights[0].Name, insights[0].Segment)
	}
	if insights[0].AvgOrderValue != 25000 {
		t.Errorf("expected avg order 25000 cents, got %d", insights[0].AvgOrderValue)
	}
	if insights[1].Segment != "New Customers" {
		t.Errorf("expected One Timer as New Customers, got %s", insights[1].Segment)
	}
}
