package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/analytics"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/repository"
)

type customerRepository struct {
	db *DB
}

func NewCustomerRepository(db *DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) List(ctx context.Context, companyID uuid.UUID, search string, limit, offset int) ([]domain.Customer, int, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	where := `WHERE c.company_id = $1 AND c.deleted_at IS NULL`
	args := []interface{}{companyID}
	if search != "" {
		where += ` AND (c.customer_name ILIKE $2 OR c.email ILIKE $2)`
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM customers c `+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT c.id, c.company_id, c.customer_name, c.email,
               COALESCE(agg.total_orders, 0) AS total_orders,
               COALESCE(agg.total_spent, 0) AS total_spent,
               c.created_at, c.deleted_at
        FROM customers c
        LEFT JOIN (
            SELECT customer_id, COUNT(*) AS total_orders, SUM(total_amount) AS total_spent
            FROM orders
            WHERE company_id = $1
            GROUP BY customer_id
        ) agg ON agg.customer_id = c.id
        %s
        ORDER BY c.customer_name ASC
        LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	customers := []domain.Customer{}
	if err := r.db.SelectContext(ctx, &customers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, total, nil
}

func (r *customerRepository) Get(ctx context.Context, companyID, customerID uuid.UUID) (*domain.Customer, error) {
	var c domain.Customer
	err := r.db.GetContext(ctx, &c, `
        SELECT c.id, c.company_id, c.customer_name, c.email,
               COALESCE(agg.total_orders, 0) AS total_orders,
               COALESCE(agg.total_spent, 0) AS total_spent,
               c.created_at, c.deleted_at
        FROM customers c
        LEFT JOIN (
            SELECT customer_id, COUNT(*) AS total_orders, SUM(total_amount) AS total_spent
            FROM orders
            WHERE company_id = $1
            GROUP BY customer_id
        ) agg ON agg.customer_id = c.id
        WHERE c.company_id = $1 AND c.id = $2 AND c.deleted_at IS NULL`,
		companyID, customerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return &c, nil
}

func (r *customerRepository) BehaviorRows(ctx context.Context, companyID uuid.UUID) ([]analytics.CustomerRow, error) {
	rows := []analytics.CustomerRow{}
	err := r.db.SelectContext(ctx, &rows, `
        SELECT c.id AS customer_id,
               c.customer_name AS name,
               COUNT(o.id) AS total_orders,
               COALESCE(SUM(o.total_amount), 0) AS total_spent,
               MIN(o.created_at) AS first_order_at
        FROM customers c
        JOIN orders o ON o.customer_id = c.id AND o.company_id = $1
        WHERE c.company_id = $1 AND c.deleted_at IS NULL
        GROUP BY c.id, c.customer_name
        ORDER BY total_spent DESC`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query customer behavior rows: %w", err)
	}
	return rows, nil
}

func (r *customerRepository) Delete(ctx context.Context, companyID, customerID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
        UPDATE customers SET deleted_at = NOW()
        WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL`,
		companyID, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("customer %s not found", customerID)
	}
	return nil
}
