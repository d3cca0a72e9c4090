package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ruthwikaki/invochat-go/internal/analytics"
	"github.com/ruthwikaki/invochat-go/internal/cache"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/repository"
)

// AnalyticsService computes the reporting set. Results are cached per company
// and report with a short TTL; cache failures degrade to a fresh computation.
type AnalyticsService struct {
	inventoryRepo repository.InventoryRepository
	salesRepo     repository.SalesRepository
	supplierRepo  repository.SupplierRepository
	analyticsRepo repository.AnalyticsRepository
	settingsRepo  repository.SettingsRepository
	customerRepo  repository.CustomerRepository
	cache         cache.AnalyticsCache
}

func NewAnalyticsService(
	inventoryRepo repository.InventoryRepository,
	salesRepo repository.SalesRepository,
	supplierRepo repository.SupplierRepository,
	analyticsRepo repository.AnalyticsRepository,
	settingsRepo repository.SettingsRepository,
	customerRepo repository.CustomerRepository,
	c cache.AnalyticsCache,
) *AnalyticsService {
	if c == nil {
		c = cache.NewNoopAnalyticsCache()
	}
	return &AnalyticsService{
		inventoryRepo: inventoryRepo,
		salesRepo:     salesRepo,
		supplierRepo:  supplierRepo,
		analyticsRepo: analyticsRepo,
		settingsRepo:  settingsRepo,
		customerRepo:  customerRepo,
		cache:         c,
	}
}

func (s *AnalyticsService) DeadStock(ctx context.Context, companyID uuid.UUID) ([]domain.DeadStockItem, error) {
	var cached []domain.DeadStockItem
	if hit := s.cacheGet(ctx, companyID, "dead_stock", nil, &cached); hit {
		return cached, nil
	}

	settings, err := s.settingsRepo.Get(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company settings: %w", err)
	}

	items, err := s.analyticsRepo.DeadStock(ctx, companyID, settings.DeadStockDays)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, companyID, "dead_stock", nil, items)
	return items, nil
}

func (s *AnalyticsService) ABCAnalysis(ctx context.Context, companyID uuid.UUID, periodDays int) ([]domain.ABCItem, error) {
	if periodDays <= 0 {
		periodDays = 90
	}
	params := map[string]string{"period_days": strconv.Itoa(periodDays)}

	var cached []domain.ABCItem
	if hit := s.cacheGet(ctx, companyID, "abc", params, &cached); hit {
		return cached, nil
	}

	since := time.Now().UTC().AddDate(0, 0, -periodDays)
	revenue, err := s.salesRepo.RevenueBySKU(ctx, companyID, since)
	if err != nil {
		return nil, err
	}

	items := analytics.ABCAnalysis(revenue)
	s.cacheSet(ctx, companyID, "abc", params, items)
	return items, nil
}

func (s *AnalyticsService) Turnover(ctx context.Context, companyID uuid.UUID, periodDays int) (*domain.TurnoverResult, error) {
	if periodDays <= 0 {
		periodDays = 365
	}
	params := map[string]string{"period_days": strconv.Itoa(periodDays)}

	var cached domain.TurnoverResult
	if hit := s.cacheGet(ctx, companyID, "turnover", params, &cached); hit {
		return &cached, nil
	}

	since := time.Now().UTC().AddDate(0, 0, -periodDays)
	cogs, err := s.salesRepo.COGS(ctx, companyID, since)
	if err != nil {
		return nil, err
	}
	value, err := s.inventoryRepo.InventoryValue(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := analytics.Turnover(periodDays, cogs, value)
	s.cacheSet(ctx, companyID, "turnover", params, result)
	return &result, nil
}

func (s *AnalyticsService) SalesVelocity(ctx context.Context, companyID uuid.UUID, periodDays int) ([]domain.VelocityItem, error) {
	if periodDays <= 0 {
		periodDays = 30
	}
	params := map[string]string{"period_days": strconv.Itoa(periodDays)}

	var cached []domain.VelocityItem
	if hit := s.cacheGet(ctx, companyID, "velocity", params, &cached); hit {
		return cached, nil
	}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -periodDays)
	midpoint := now.AddDate(0, 0, -periodDays/2)

	rows, err := s.salesRepo.VelocityRows(ctx, companyID, since, midpoint)
	if err != nil {
		return nil, err
	}

	items := analytics.SalesVelocity(rows, periodDays)
	s.cacheSet(ctx, companyID, "velocity", params, items)
	return items, nil
}

func (s *AnalyticsService) GrossMargin(ctx context.Context, companyID uuid.UUID, periodDays int) ([]domain.MarginItem, error) {
	if periodDays <= 0 {
		periodDays = 90
	}
	params := map[string]string{"period_days": strconv.Itoa(periodDays)}

	var cached []domain.MarginItem
	if hit := s.cacheGet(ctx, companyID, "gross_margin", params, &cached); hit {
		return cached, nil
	}

	since := time.Now().UTC().AddDate(0, 0, -periodDays)
	rows, err := s.salesRepo.MarginRows(ctx, companyID, since)
	if err != nil {
		return nil, err
	}

	items := analytics.GrossMargin(rows)
	s.cacheSet(ctx, companyID, "gross_margin", params, items)
	return items, nil
}

// HiddenOpportunities cross-references margin, velocity and stock depth to
// flag SKUs worth a pricing or promotion pass.
func (s *AnalyticsService) HiddenOpportunities(ctx context.Context, companyID uuid.UUID, periodDays int) ([]domain.OpportunityItem, error) {
	if periodDays <= 0 {
		periodDays = 90
	}
	params := map[string]string{"period_days": strconv.Itoa(periodDays)}

	var cached []domain.OpportunityItem
	if hit := s.cacheGet(ctx, companyID, "hidden_opportunities", params, &cached); hit {
		return cached, nil
	}

	since := time.Now().UTC().AddDate(0, 0, -periodDays)
	margins, err := s.salesRepo.MarginRows(ctx, companyID, since)
	if err != nil {
		return nil, err
	}
	if len(margins) == 0 {
		return []domain.OpportunityItem{}, nil
	}

	skus := make([]string, 0, len(margins))
	for _, m := range margins {
		skus = append(skus, m.SKU)
	}
	variants, err := s.inventoryRepo.GetVariantsBySKU(ctx, companyID, skus)
	if err != nil {
		return nil, err
	}
	stockBySKU := make(map[string]int, len(variants))
	for _, v := range variants {
		stockBySKU[v.SKU] = v.InventoryQuantity
	}

	inputs := make([]analytics.OpportunityInput, 0, len(margins))
	for _, item := range analytics.GrossMargin(margins) {
		inputs = append(inputs, analytics.OpportunityInput{
			SKU:              item.SKU,
			ProductTitle:     item.ProductTitle,
			MarginPercentage: item.MarginPercentage,
			VelocityPerDay:   float64(item.Quantity) / float64(periodDays),
			Inventory:        stockBySKU[item.SKU],
		})
	}

	items := analytics.HiddenOpportunities(inputs)
	s.cacheSet(ctx, companyID, "hidden_opportunities", params, items)
	return items, nil
}

func (s *AnalyticsService) CustomerInsights(ctx context.Context, companyID uuid.UUID) ([]domain.CustomerInsight, error) {
	var cached []domain.CustomerInsight
	if hit := s.cacheGet(ctx, companyID, "customer_insights", nil, &cached); hit {
		return cached, nil
	}

	rows, err := s.customerRepo.BehaviorRows(ctx, companyID)
	if err != nil {
		return nil, err
	}

	insights := analytics.CustomerInsights(rows, time.Now().UTC())
	s.cacheSet(ctx, companyID, "customer_insights", nil, insights)
	return insights, nil
}

func (s *AnalyticsService) SupplierPerformance(ctx context.Context, companyID uuid.UUID) ([]domain.SupplierScore, error) {
	var cached []domain.SupplierScore
	if hit := s.cacheGet(ctx, companyID, "supplier_performance", nil, &cached); hit {
		return cached, nil
	}

	metrics, err := s.supplierRepo.Metrics(ctx, companyID)
	if err != nil {
		return nil, err
	}

	scores := analytics.ScoreSuppliers(metrics)
	s.cacheSet(ctx, companyID, "supplier_performance", nil, scores)
	return scores, nil
}

// Forecast projects demand for one SKU from its weekly sales totals over the
// trailing period.
func (s *AnalyticsService) Forecast(ctx context.Context, companyID uuid.UUID, sku string, periodDays int) (*domain.ForecastResult, error) {
	if periodDays <= 0 {
		periodDays = 180
	}
	params := map[string]string{"sku": sku, "period_days": strconv.Itoa(periodDays)}

	var cached domain.ForecastResult
	if hit := s.cacheGet(ctx, companyID, "forecast", params, &cached); hit {
		return &cached, nil
	}

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -periodDays)
	salesMap, err := s.salesRepo.SalesSeries(ctx, companyID, []string{sku}, since)
	if err != nil {
		return nil, err
	}

	series := weeklyTotals(salesMap[sku], since, now)
	result := analytics.Forecast(sku, series)
	s.cacheSet(ctx, companyID, "forecast", params, result)
	return &result, nil
}

func (s *AnalyticsService) DashboardSummary(ctx context.Context, companyID uuid.UUID, periodDays int) (*domain.DashboardSummary, error) {
	if periodDays <= 0 {
		periodDays = 30
	}
	params := map[string]string{"period_days": strconv.Itoa(periodDays)}

	var cached domain.DashboardSummary
	if hit := s.cacheGet(ctx, companyID, "dashboard", params, &cached); hit {
		return &cached, nil
	}

	summary, err := s.analyticsRepo.DashboardSummary(ctx, companyID, periodDays)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, companyID, "dashboard", params, summary)
	return summary, nil
}

func (s *AnalyticsService) cacheGet(ctx context.Context, companyID uuid.UUID, report string, params map[string]string, dest interface{}) bool {
	hit, err := s.cache.Get(ctx, companyID, report, params, dest)
	if err != nil {
		log.Warn().Err(err).Str("report", report).Msg("analytics cache read failed")
		return false
	}
	return hit
}

func (s *AnalyticsService) cacheSet(ctx context.Context, companyID uuid.UUID, report string, params map[string]string, value interface{}) {
	if err := s.cache.Set(ctx, companyID, report, params, value); err != nil {
		log.Warn().Err(err).Str("report", report).Msg("analytics cache write failed")
	}
}

// weeklyTotals buckets daily sales points into consecutive 7-day totals from
// the window start, zero-filling empty weeks so the series is contiguous.
func weeklyTotals(points []domain.SalesPoint, since, now time.Time) []float64 {
	weeks := int(now.Sub(since).Hours()/(24*7)) + 1
	if weeks < 1 {
		weeks = 1
	}
	totals := make([]float64, weeks)

	for _, p := range points {
		if p.SaleDate.Before(since) {
			continue
		}
		idx := int(p.SaleDate.Sub(since).Hours() / (24 * 7))
		if idx < 0 || idx >= weeks {
			continue
		}
		totals[idx] += float64(p.TotalQuantity)
	}
	return totals
}
