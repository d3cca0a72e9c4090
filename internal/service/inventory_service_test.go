package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/domain"
)

type failingAnalyticsCache struct {
	invalidations int
}

func (c *failingAnalyticsCache) Get(ctx context.Context, companyID uuid.UUID, report string, params map[string]string, dest interface{}) (bool, error) {
	return false, nil
}

func (c *failingAnalyticsCache) Set(ctx context.Context, companyID uuid.UUID, report string, params map[string]string, value interface{}) error {
	return nil
}

func (c *failingAnalyticsCache) Invalidate(ctx context.Context, companyID uuid.UUID) error {
	c.invalidations++
	return fmt.Errorf("cache unavailable")
}

func TestAdjustStockSurvivesCacheFailure(t *testing.T) {
	cache := &failingAnalyticsCache{}
	svc := NewInventoryService(&fakeInventoryRepo{}, cache)

	adj := domain.StockAdjustment{VariantID: uuid.New(), Delta: 5, Reason: "cycle count"}
	if err := svc.AdjustStock(context.Background(), uuid.New(), adj); err != nil {
		t.Fatalf("adjustment must succeed when invalidation fails: %v", err)
	}
	if cache.invalidations != 1 {
		t.Errorf("expected one invalidation attempt, got %d", cache.invalidations)
	}
}
