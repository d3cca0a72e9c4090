package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/repository"
)

type CustomerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

func (s *CustomerService) List(ctx context.Context, companyID uuid.UUID, search string, limit, offset int) ([]domain.Customer, int, error) {
	return s.repo.List(ctx, companyID, search, limit, offset)
}

func (s *CustomerService) Get(ctx context.Context, companyID, customerID uuid.UUID) (*domain.Customer, error) {
	return s.repo.Get(ctx, companyID, customerID)
}

func (s *CustomerService) Delete(ctx context.Context, companyID, customerID uuid.UUID) error {
	return s.repo.Delete(ctx, companyID, customerID)
}
