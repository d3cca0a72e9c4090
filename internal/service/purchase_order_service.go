package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ruthwikaki/invochat-go/internal/cache"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/repository"
)

type PurchaseOrderService struct {
	repo      repository.PurchaseOrderRepository
	analytics cache.AnalyticsCache
}

func NewPurchaseOrderService(repo repository.PurchaseOrderRepository, analytics cache.AnalyticsCache) *PurchaseOrderService {
	if analytics == nil {
		analytics = cache.NewNoopAnalyticsCache()
	}
	return &PurchaseOrderService{repo: repo, analytics: analytics}
}

// Create places a manually assembled purchase order. The PO number and total
// are filled in when the caller leaves them empty.
func (s *PurchaseOrderService) Create(ctx context.Context, companyID uuid.UUID, po *domain.PurchaseOrder) error {
	if po.SupplierID == uuid.Nil {
		return fmt.Errorf("supplier_id is required")
	}
	if len(po.LineItems) == 0 {
		return fmt.Errorf("at least one line item is required")
	}
	for _, item := range po.LineItems {
		if item.VariantID == uuid.Nil || item.SKU == "" {
			return fmt.Errorf("line items need a variant_id and sku")
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("quantity for %s must be positive", item.SKU)
		}
	}

	po.CompanyID = companyID
	if po.PONumber == "" {
		po.PONumber = fmt.Sprintf("PO-%s-%s", time.Now().UTC().Format("20060102"), shortID())
	}
	if po.Status == "" {
		po.Status = domain.POStatusDraft
	}
	if po.TotalCost == 0 {
		for _, item := range po.LineItems {
			if item.UnitCost != nil {
				po.TotalCost += int64(item.Quantity) * *item.UnitCost
			}
		}
	}

	if err := s.repo.Create(ctx, po); err != nil {
		return err
	}
	if err := s.analytics.Invalidate(ctx, companyID); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate analytics cache")
	}
	return nil
}

func (s *PurchaseOrderService) List(ctx context.Context, companyID uuid.UUID, status string, limit, offset int) ([]domain.PurchaseOrder, int, error) {
	switch status {
	case "", domain.POStatusDraft, domain.POStatusSent, domain.POStatusReceived, domain.POStatusCanceled:
	default:
		return nil, 0, fmt.Errorf("unknown status %q", status)
	}
	return s.repo.List(ctx, companyID, status, limit, offset)
}

func (s *PurchaseOrderService) Get(ctx context.Context, companyID, poID uuid.UUID) (*domain.PurchaseOrder, error) {
	return s.repo.Get(ctx, companyID, poID)
}

// MarkReceived receives a purchase order: the status flips and the ordered
// quantities land in inventory in one transaction.
func (s *PurchaseOrderService) MarkReceived(ctx context.Context, companyID, poID uuid.UUID) error {
	if err := s.repo.MarkReceived(ctx, companyID, poID, time.Now().UTC()); err != nil {
		return err
	}
	if err := s.analytics.Invalidate(ctx, companyID); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate analytics cache")
	}
	return nil
}
