package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/repository"
)

type OrderService struct {
	repo repository.SalesRepository
}

func NewOrderService(repo repository.SalesRepository) *OrderService {
	return &OrderService{repo: repo}
}

func (s *OrderService) List(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]domain.Order, int, error) {
	return s.repo.ListOrders(ctx, companyID, limit, offset)
}

// SalesSeries returns daily unit sales per SKU over the trailing window.
func (s *OrderService) SalesSeries(ctx context.Context, companyID uuid.UUID, skus []string, days int) (map[string][]domain.SalesPoint, error) {
	if len(skus) == 0 {
		return nil, fmt.Errorf("at least one sku is required")
	}
	if days <= 0 {
		days = 90
	}
	since := time.Now().UTC().AddDate(0, 0, -days)
	return s.repo.SalesSeries(ctx, companyID, skus, since)
}
