package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ruthwikaki/invochat-go/internal/cache"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/repository"
)

type InventoryService struct {
	repo      repository.InventoryRepository
	analytics cache.AnalyticsCache
}

func NewInventoryService(repo repository.InventoryRepository, analytics cache.AnalyticsCache) *InventoryService {
	if analytics == nil {
		analytics = cache.NewNoopAnalyticsCache()
	}
	return &InventoryService{repo: repo, analytics: analytics}
}

func (s *InventoryService) List(ctx context.Context, companyID uuid.UUID, search string, limit, offset int) ([]domain.ProductVariant, int, error) {
	return s.repo.ListVariants(ctx, companyID, search, limit, offset)
}

func (s *InventoryService) Get(ctx context.Context, companyID, variantID uuid.UUID) (*domain.ProductVariant, error) {
	return s.repo.GetVariant(ctx, companyID, variantID)
}

// UpdateReorderSettings validates and stores the reorder point and quantity.
// A nil value clears the corresponding column.
func (s *InventoryService) UpdateReorderSettings(ctx context.Context, companyID, variantID uuid.UUID, reorderPoint, reorderQuantity *int) error {
	if reorderPoint != nil && *reorderPoint < 0 {
		return fmt.Errorf("reorder point must not be negative")
	}
	if reorderQuantity != nil && *reorderQuantity < 0 {
		return fmt.Errorf("reorder quantity must not be negative")
	}
	return s.repo.UpdateReorderSettings(ctx, companyID, variantID, reorderPoint, reorderQuantity)
}

// AdjustStock applies a manual stock correction. The stored quantity never
// goes below zero; analytics caches for the company are invalidated.
func (s *InventoryService) AdjustStock(ctx context.Context, companyID uuid.UUID, adj domain.StockAdjustment) error {
	if adj.VariantID == uuid.Nil {
		return fmt.Errorf("variant_id is required")
	}
	if adj.Delta == 0 {
		return fmt.Errorf("delta must not be zero")
	}
	if adj.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	if err := s.repo.AdjustStock(ctx, companyID, adj); err != nil {
		return err
	}
	if err := s.analytics.Invalidate(ctx, companyID); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate analytics cache")
	}
	return nil
}
