// internal/domain/analytics.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// DeadStockItem is a variant with stock on hand and no sale within the
// company's dead-stock window.
type DeadStockItem struct {
	VariantID     uuid.UUID  `json:"variant_id" db:"variant_id"`
	SKU           string     `json:"sku" db:"sku"`
	ProductTitle  string     `json:"product_title" db:"product_title"`
	Quantity      int        `json:"quantity" db:"quantity"`
	CostPerUnit   int64      `json:"cost_per_unit" db:"cost_per_unit"`
	TotalValue    int64      `json:"total_value" db:"total_value"`
	LastSoldAt    *time.Time `json:"last_sold_at,omitempty" db:"last_sold_at"`
	DaysSinceSale int        `json:"days_since_sale" db:"days_since_sale"`
}

// ABCItem is one SKU with its revenue-based category.
type ABCItem struct {
	SKU                  string  `json:"sku"`
	Revenue              int64   `json:"revenue"`
	CumulativePercentage float64 `json:"cumulative_percentage"`
	Category             string  `json:"category"`
}

// TurnoverResult is the inventory turnover ratio for a trailing period.
type TurnoverResult struct {
	PeriodDays      int     `json:"period_days"`
	COGS            int64   `json:"cogs"`
	InventoryValue  int64   `json:"inventory_value"`
	TurnoverRatio   float64 `json:"turnover_ratio"`
	Performance     string  `json:"performance"`
	DaysOfInventory float64 `json:"days_of_inventory"`
}

// VelocityItem is per-SKU sales velocity over a trailing period.
type VelocityItem struct {
	SKU            string  `json:"sku" db:"sku"`
	ProductTitle   string  `json:"product_title" db:"product_title"`
	TotalQuantity  int     `json:"total_quantity" db:"total_quantity"`
	TotalRevenue   int64   `json:"total_revenue" db:"total_revenue"`
	DaysPeriod     int     `json:"days_period" db:"days_period"`
	VelocityPerDay float64 `json:"velocity_per_day" db:"velocity_per_day"`
	RevenuePerDay  float64 `json:"revenue_per_day" db:"revenue_per_day"`
	Trend          string  `json:"trend" db:"trend"`
}

// SupplierMetrics are the raw per-supplier inputs to performance scoring.
type SupplierMetrics struct {
	SupplierID          uuid.UUID `json:"supplier_id" db:"supplier_id"`
	SupplierName        string    `json:"supplier_name" db:"supplier_name"`
	OnTimeDeliveryRate  float64   `json:"on_time_delivery_rate" db:"on_time_delivery_rate"`
	QualityScore        float64   `json:"quality_score" db:"quality_score"`
	CostCompetitiveness float64   `json:"cost_competitiveness" db:"cost_competitiveness"`
	ResponseTimeHours   float64   `json:"response_time_hours" db:"response_time_hours"`
	TotalOrders         int       `json:"total_orders" db:"total_orders"`
}

// SupplierScore is a supplier with its weighted performance score and tier.
type SupplierScore struct {
	SupplierID       uuid.UUID `json:"supplier_id"`
	SupplierName     string    `json:"supplier_name"`
	PerformanceScore float64   `json:"performance_score"`
	Tier             string    `json:"tier"`
	TotalOrders      int       `json:"total_orders"`
}

// ForecastResult is a moving-average demand forecast for one SKU.
type ForecastResult struct {
	SKU            string    `json:"sku"`
	MovingAverages []float64 `json:"moving_averages"`
	Forecast       float64   `json:"forecast"`
	Trend          string    `json:"trend"`
}

// MarginItem is per-SKU gross margin over a trailing period, cents.
type MarginItem struct {
	SKU              string  `json:"sku"`
	ProductTitle     string  `json:"product_title"`
	Revenue          int64   `json:"revenue"`
	Cost             int64   `json:"cost"`
	Profit           int64   `json:"profit"`
	MarginPercentage float64 `json:"gross_margin_percentage"`
	MarginPerUnit    float64 `json:"margin_per_unit"`
	Quantity         int     `json:"quantity"`
}

// OpportunityItem flags a SKU whose margin/velocity/stock mix suggests an
// action worth taking, with the matching recommendations.
type OpportunityItem struct {
	SKU              string   `json:"sku"`
	ProductTitle     string   `json:"product_title"`
	OpportunityScore int      `json:"opportunity_score"`
	MarginPercentage float64  `json:"gross_margin_percentage"`
	VelocityPerDay   float64  `json:"velocity_per_day"`
	Inventory        int      `json:"inventory_quantity"`
	Recommendations  []string `json:"recommendations"`
}

// CustomerInsight is one customer with its RFM-style segment.
type CustomerInsight struct {
	CustomerID    uuid.UUID `json:"customer_id"`
	Name          string    `json:"name"`
	TotalOrders   int       `json:"total_orders"`
	TotalSpent    int64     `json:"total_spent"`
	AvgOrderValue int64     `json:"avg_order_value"`
	TotalScore    float64   `json:"total_score"`
	Segment       string    `json:"segment"`
}

// DashboardSummary is the headline metrics block.
type DashboardSummary struct {
	PeriodDays     int   `json:"period_days"`
	TotalRevenue   int64 `json:"total_revenue" db:"total_revenue"`
	OrderCount     int   `json:"order_count" db:"order_count"`
	LowStockCount  int   `json:"low_stock_count" db:"low_stock_count"`
	DeadStockValue int64 `json:"dead_stock_value" db:"dead_stock_value"`
}
