package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/repository"
)

type supplierRepository struct {
	db *DB
}

func NewSupplierRepository(db *DB) repository.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) List(ctx context.Context, companyID uuid.UUID) ([]domain.Supplier, error) {
	suppliers := []domain.Supplier{}
	err := r.db.SelectContext(ctx, &suppliers, `
        SELECT id, company_id, name, email, phone, default_lead_time_days, created_at, updated_at, deleted_at
        FROM suppliers
        WHERE company_id = $1 AND deleted_at IS NULL
        ORDER BY name ASC`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	return suppliers, nil
}

func (r *supplierRepository) Get(ctx context.Context, companyID, supplierID uuid.UUID) (*domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.GetContext(ctx, &s, `
        SELECT id, company_id, name, email, phone, default_lead_time_days, created_at, updated_at, deleted_at
        FROM suppliers
        WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL`,
		companyID, supplierID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get supplier: %w", err)
	}
	return &s, nil
}

func (r *supplierRepository) Create(ctx context.Context, supplier *domain.Supplier) error {
	if supplier.ID == uuid.Nil {
		supplier.ID = uuid.New()
	}
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO suppliers (id, company_id, name, email, phone, default_lead_time_days, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())`,
		supplier.ID, supplier.CompanyID, supplier.Name, supplier.Email, supplier.Phone, supplier.DefaultLeadTimeDays)
	if err != nil {
		return fmt.Errorf("failed to create supplier: %w", err)
	}
	return nil
}

func (r *supplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	result, err := r.db.ExecContext(ctx, `
        UPDATE suppliers
        SET name = $3, email = $4, phone = $5, default_lead_time_days = $6, updated_at = NOW()
        WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL`,
		supplier.CompanyID, supplier.ID, supplier.Name, supplier.Email, supplier.Phone, supplier.DefaultLeadTimeDays)
	if err != nil {
		return fmt.Errorf("failed to update supplier: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("supplier %s not found", supplier.ID)
	}
	return nil
}

func (r *supplierRepository) Delete(ctx context.Context, companyID, supplierID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
        UPDATE suppliers SET deleted_at = NOW()
        WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL`,
		companyID, supplierID)
	if err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("supplier %s not found", supplierID)
	}
	return nil
}

// Metrics aggregates on-time rate and order counts from received POs. Quality
// and cost inputs come from the supplier_reviews table when present, defaulting
// to a neutral midpoint otherwise.
func (r *supplierRepository) Metrics(ctx context.Context, companyID uuid.UUID) ([]domain.SupplierMetrics, error) {
	metrics := []domain.SupplierMetrics{}
	err := r.db.SelectContext(ctx, &metrics, `
        WITH po_stats AS (
            SELECT supplier_id,
                   COUNT(*) AS total_orders,
                   AVG(CASE WHEN received_at IS NOT NULL AND sent_at IS NOT NULL
                            AND received_at <= sent_at + make_interval(days => 14)
                            THEN 100.0 ELSE 0.0 END) AS on_time_delivery_rate
            FROM purchase_orders
            WHERE company_id = $1 AND status = 'received'
            GROUP BY supplier_id
        )
        SELECT s.id AS supplier_id,
               s.name AS supplier_name,
               COALESCE(ps.on_time_delivery_rate, 0) AS on_time_delivery_rate,
               COALESCE(sr.quality_score, 75) AS quality_score,
               COALESCE(sr.cost_competitiveness, 75) AS cost_competitiveness,
               COALESCE(sr.response_time_hours, 24) AS response_time_hours,
               COALESCE(ps.total_orders, 0) AS total_orders
        FROM suppliers s
        LEFT JOIN po_stats ps ON ps.supplier_id = s.id
        LEFT JOIN supplier_reviews sr ON sr.supplier_id = s.id AND sr.company_id = $1
        WHERE s.company_id = $1 AND s.deleted_at IS NULL
        ORDER BY s.name ASC`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query supplier metrics: %w", err)
	}
	return metrics, nil
}
