package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/repository"
)

type SupplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) *SupplierService {
	return &SupplierService{repo: repo}
}

func (s *SupplierService) List(ctx context.Context, companyID uuid.UUID) ([]domain.Supplier, error) {
	return s.repo.List(ctx, companyID)
}

func (s *SupplierService) Get(ctx context.Context, companyID, supplierID uuid.UUID) (*domain.Supplier, error) {
	return s.repo.Get(ctx, companyID, supplierID)
}

func (s *SupplierService) Create(ctx context.Context, companyID uuid.UUID, supplier *domain.Supplier) error {
	if err := validateSupplier(supplier); err != nil {
		return err
	}
	supplier.CompanyID = companyID
	return s.repo.Create(ctx, supplier)
}

func (s *SupplierService) Update(ctx context.Context, companyID uuid.UUID, supplier *domain.Supplier) error {
	if supplier.ID == uuid.Nil {
		return fmt.Errorf("supplier id is required")
	}
	if err := validateSupplier(supplier); err != nil {
		return err
	}
	supplier.CompanyID = companyID
	return s.repo.Update(ctx, supplier)
}

func (s *SupplierService) Delete(ctx context.Context, companyID, supplierID uuid.UUID) error {
	return s.repo.Delete(ctx, companyID, supplierID)
}

func validateSupplier(supplier *domain.Supplier) error {
	if strings.TrimSpace(supplier.Name) == "" {
		return fmt.Errorf("supplier name is required")
	}
	if supplier.DefaultLeadTimeDays != nil && *supplier.DefaultLeadTimeDays < 0 {
		return fmt.Errorf("default lead time must not be negative")
	}
	return nil
}
