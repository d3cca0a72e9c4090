package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/ruthwikaki/invochat-go/internal/config"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/reorder"
	"github.com/ruthwikaki/invochat-go/internal/repository"
)

// ReorderService runs the suggestion pipeline: baseline heuristic, optional
// AI refinement, reconciliation. Suggestions are computed on demand and never
// persisted; materializing them into purchase orders is a separate call.
type ReorderService struct {
	inventoryRepo repository.InventoryRepository
	salesRepo     repository.SalesRepository
	settingsRepo  repository.SettingsRepository
	poRepo        repository.PurchaseOrderRepository
	auditRepo     repository.AuditRepository
	refiner       reorder.Refiner
	cfg           config.ReorderConfig
}

func NewReorderService(
	inventoryRepo repository.InventoryRepository,
	salesRepo repository.SalesRepository,
	settingsRepo repository.SettingsRepository,
	poRepo repository.PurchaseOrderRepository,
	auditRepo repository.AuditRepository,
	refiner reorder.Refiner,
	cfg config.ReorderConfig,
) *ReorderService {
	if refiner == nil {
		refiner = reorder.NopRefiner{}
	}
	return &ReorderService{
		inventoryRepo: inventoryRepo,
		salesRepo:     salesRepo,
		settingsRepo:  settingsRepo,
		poRepo:        poRepo,
		auditRepo:     auditRepo,
		refiner:       refiner,
		cfg:           cfg,
	}
}

// Suggestions computes the current reorder report for a company, with the
// refinement step enabled.
//
// A refinement failure is logged and swallowed: every suggestion then falls
// back to its baseline quantity.
func (s *ReorderService) Suggestions(ctx context.Context, companyID uuid.UUID) ([]domain.ReorderSuggestion, error) {
	return s.suggestions(ctx, companyID, true)
}

// BaselineSuggestions skips the refinement step entirely; every suggestion
// carries the fallback reason.
func (s *ReorderService) BaselineSuggestions(ctx context.Context, companyID uuid.UUID) ([]domain.ReorderSuggestion, error) {
	return s.suggestions(ctx, companyID, false)
}

func (s *ReorderService) suggestions(ctx context.Context, companyID uuid.UUID, refine bool) ([]domain.ReorderSuggestion, error) {
	settings, err := s.settingsRepo.Get(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company settings: %w", err)
	}

	candidates, err := s.inventoryRepo.GetReorderCandidates(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reorder candidates: %w", err)
	}
	if len(candidates) == 0 {
		return []domain.ReorderSuggestion{}, nil
	}

	now := time.Now().UTC()
	skus := make([]string, 0, len(candidates))
	for _, v := range candidates {
		skus = append(skus, v.SKU)
	}

	since := now.AddDate(0, 0, -settings.VelocityWindowDays)
	salesMap, err := s.salesRepo.SalesSeries(ctx, companyID, skus, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales history: %w", err)
	}

	calc := reorder.NewCalculator(reorder.Policy{
		LeadTimeDays:       settings.LeadTimeDays,
		SafetyStockDays:    settings.SafetyStockDays,
		VelocityWindowDays: settings.VelocityWindowDays,
	})
	base := calc.BuildSuggestions(candidates, salesMap, now)
	if len(base) == 0 {
		return []domain.ReorderSuggestion{}, nil
	}

	var refined map[string]domain.RefinementResult
	if refine {
		refined = s.refine(ctx, companyID, base, salesMap)
	}
	return reorder.Reconcile(base, refined), nil
}

// refine runs the AI step for up to MaxRefinementBatch suggestions. Any error
// drops the whole result set so reconciliation falls back everywhere.
func (s *ReorderService) refine(ctx context.Context, companyID uuid.UUID, base []domain.ReorderSuggestion, salesMap map[string][]domain.SalesPoint) map[string]domain.RefinementResult {
	batch := base
	if max := s.cfg.MaxRefinementBatch; max > 0 && len(batch) > max {
		batch = batch[:max]
	}

	inputs := make([]domain.RefinementInput, 0, len(batch))
	for _, sg := range batch {
		inputs = append(inputs, domain.RefinementInput{
			SKU:               sg.SKU,
			BaseQuantity:      sg.BaseQuantity,
			RecentSalesSeries: salesMap[sg.SKU],
		})
	}

	refined, err := s.refiner.Refine(ctx, inputs)
	if err != nil {
		log.Warn().Err(err).
			Str("company_id", companyID.String()).
			Int("batch_size", len(inputs)).
			Msg("refinement step failed, keeping baseline quantities")
		return nil
	}
	return refined
}

// CreatePurchaseOrders materializes a suggestion batch into draft purchase
// orders, one per supplier. Suggestions without an assigned supplier are
// skipped and counted.
func (s *ReorderService) CreatePurchaseOrders(ctx context.Context, companyID uuid.UUID, suggestions []domain.ReorderSuggestion) (*domain.CreatePOResult, error) {
	bySupplier := make(map[uuid.UUID][]domain.ReorderSuggestion)
	supplierOrder := []uuid.UUID{}
	skipped := 0

	for _, sg := range suggestions {
		if sg.SuggestedReorderQuantity <= 0 {
			continue
		}
		if sg.SupplierID == nil {
			skipped++
			continue
		}
		if _, seen := bySupplier[*sg.SupplierID]; !seen {
			supplierOrder = append(supplierOrder, *sg.SupplierID)
		}
		bySupplier[*sg.SupplierID] = append(bySupplier[*sg.SupplierID], sg)
	}

	result := &domain.CreatePOResult{SkippedCount: skipped}
	now := time.Now().UTC()

	var includedSKUs []string
	for _, supplierID := range supplierOrder {
		group := bySupplier[supplierID]

		po := &domain.PurchaseOrder{
			ID:         uuid.New(),
			CompanyID:  companyID,
			PONumber:   fmt.Sprintf("PO-%s-%s", now.Format("20060102"), shortID()),
			SupplierID: supplierID,
			Status:     domain.POStatusDraft,
		}
		for _, sg := range group {
			po.LineItems = append(po.LineItems, domain.PurchaseOrderItem{
				VariantID: sg.VariantID,
				SKU:       sg.SKU,
				Quantity:  sg.SuggestedReorderQuantity,
				UnitCost:  sg.UnitCost,
			})
			po.TotalCost += sg.TotalCost()
			includedSKUs = append(includedSKUs, sg.SKU)
		}

		if err := s.poRepo.Create(ctx, po); err != nil {
			return nil, fmt.Errorf("failed to create purchase order for supplier %s: %w", supplierID, err)
		}
		result.CreatedCount++
		result.POIDs = append(result.POIDs, po.ID)
	}

	result.Message = fmt.Sprintf("%d purchase order(s) created. %d item(s) were skipped (no supplier assigned).",
		result.CreatedCount, result.SkippedCount)

	// The audit trail records which SKUs made it into the batch, not just the counts.
	if s.auditRepo != nil {
		detail := result.Message
		if len(includedSKUs) > 0 {
			detail += " SKUs: " + strings.Join(includedSKUs, ", ")
		}
		if err := s.auditRepo.Record(ctx, companyID, "reorder.create_pos", detail); err != nil {
			log.Warn().Err(err).Msg("failed to record audit entry")
		}
	}

	return result, nil
}

func shortID() string {
	return uuid.New().String()[:8]
}
