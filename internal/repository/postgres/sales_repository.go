package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ruthwikaki/invochat-go/internal/analytics"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/repository"
)

type salesRepository struct {
	db *DB
}

func NewSalesRepository(db *DB) repository.SalesRepository {
	return &salesRepository{db: db}
}

func (r *salesRepository) SalesSeries(ctx context.Context, companyID uuid.UUID, skus []string, since time.Time) (map[string][]domain.SalesPoint, error) {
	if len(skus) == 0 {
		return map[string][]domain.SalesPoint{}, nil
	}

	query, args, err := sqlx.In(`
        SELECT oli.sku, DATE(o.created_at) AS sale_date, SUM(oli.quantity) AS total_quantity
        FROM order_line_items oli
        JOIN orders o ON o.id = oli.order_id
        WHERE oli.company_id = ? AND oli.sku IN (?) AND o.created_at >= ?
        GROUP BY oli.sku, DATE(o.created_at)
        ORDER BY oli.sku, sale_date ASC`, companyID, skus, since)
	if err != nil {
		return nil, fmt.Errorf("failed to build sales series query: %w", err)
	}
	query = r.db.Rebind(query)

	rows := []struct {
		SKU           string    `db:"sku"`
		SaleDate      time.Time `db:"sale_date"`
		TotalQuantity int       `db:"total_quantity"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query sales series: %w", err)
	}

	series := make(map[string][]domain.SalesPoint, len(skus))
	for _, row := range rows {
		series[row.SKU] = append(series[row.SKU], domain.SalesPoint{
			SaleDate:      row.SaleDate,
			TotalQuantity: row.TotalQuantity,
		})
	}
	return series, nil
}

func (r *salesRepository) RevenueBySKU(ctx context.Context, companyID uuid.UUID, since time.Time) (map[string]int64, error) {
	rows := []struct {
		SKU     string `db:"sku"`
		Revenue int64  `db:"revenue"`
	}{}
	err := r.db.SelectContext(ctx, &rows, `
        SELECT oli.sku, SUM(oli.quantity * oli.price) AS revenue
        FROM order_line_items oli
        JOIN orders o ON o.id = oli.order_id
        WHERE oli.company_id = $1 AND o.created_at >= $2
        GROUP BY oli.sku`,
		companyID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query revenue by sku: %w", err)
	}

	revenue := make(map[string]int64, len(rows))
	for _, row := range rows {
		revenue[row.SKU] = row.Revenue
	}
	return revenue, nil
}

func (r *salesRepository) COGS(ctx context.Context, companyID uuid.UUID, since time.Time) (int64, error) {
	var cogs int64
	err := r.db.GetContext(ctx, &cogs, `
        SELECT COALESCE(SUM(oli.quantity * COALESCE(oli.cost_at_time, 0)), 0)
        FROM order_line_items oli
        JOIN orders o ON o.id = oli.order_id
        WHERE oli.company_id = $1 AND o.created_at >= $2`,
		companyID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to compute cogs: %w", err)
	}
	return cogs, nil
}

func (r *salesRepository) VelocityRows(ctx context.Context, companyID uuid.UUID, since time.Time, midpoint time.Time) ([]analytics.VelocityRow, error) {
	rows := []analytics.VelocityRow{}
	err := r.db.SelectContext(ctx, &rows, `
        SELECT
            oli.sku,
            MAX(p.title) AS product_title,
            SUM(oli.quantity) AS total_quantity,
            SUM(oli.quantity * oli.price) AS total_revenue,
            SUM(CASE WHEN o.created_at < $3 THEN oli.quantity ELSE 0 END) AS first_half_quantity,
            SUM(CASE WHEN o.created_at >= $3 THEN oli.quantity ELSE 0 END) AS last_half_quantity
        FROM order_line_items oli
        JOIN orders o ON o.id = oli.order_id
        JOIN product_variants pv ON pv.id = oli.variant_id
        JOIN products p ON p.id = pv.product_id
        WHERE oli.company_id = $1 AND o.created_at >= $2
        GROUP BY oli.sku
        ORDER BY total_quantity DESC`,
		companyID, since, midpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to query velocity rows: %w", err)
	}
	return rows, nil
}

func (r *salesRepository) MarginRows(ctx context.Context, companyID uuid.UUID, since time.Time) ([]analytics.MarginRow, error) {
	rows := []analytics.MarginRow{}
	err := r.db.SelectContext(ctx, &rows, `
        SELECT
            oli.sku,
            MAX(p.title) AS product_title,
            SUM(oli.quantity * oli.price) AS revenue,
            SUM(oli.quantity * COALESCE(oli.cost_at_time, 0)) AS cost,
            SUM(oli.quantity) AS quantity
        FROM order_line_items oli
        JOIN orders o ON o.id = oli.order_id
        JOIN product_variants pv ON pv.id = oli.variant_id
        JOIN products p ON p.id = pv.product_id
        WHERE oli.company_id = $1 AND o.created_at >= $2
        GROUP BY oli.sku
        ORDER BY revenue DESC`,
		companyID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query margin rows: %w", err)
	}
	return rows, nil
}

func (r *salesRepository) ListOrders(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]domain.Order, int, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM orders WHERE company_id = $1`, companyID); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	orders := []domain.Order{}
	err := r.db.SelectContext(ctx, &orders, `
        SELECT id, company_id, order_number, customer_id, total_amount, created_at
        FROM orders
        WHERE company_id = $1
        ORDER BY created_at DESC
        LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

func (r *salesRepository) InsertOrders(ctx context.Context, companyID uuid.UUID, orders []domain.Order) (int, error) {
	if len(orders) == 0 {
		return 0, nil
	}

	inserted := 0
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, o := range orders {
			if o.ID == uuid.Nil {
				o.ID = uuid.New()
			}
			res, err := tx.ExecContext(ctx, `
                INSERT INTO orders (id, company_id, order_number, customer_id, total_amount, created_at)
                VALUES ($1, $2, $3, $4, $5, $6)
                ON CONFLICT (company_id, order_number) DO NOTHING`,
				o.ID, companyID, o.OrderNumber, o.CustomerID, o.TotalAmount, o.CreatedAt)
			if err != nil {
				return fmt.Errorf("failed to insert order %s: %w", o.OrderNumber, err)
			}
			rows, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to check insert result: %w", err)
			}
			if rows == 0 {
				continue
			}
			inserted++

			for _, li := range o.LineItems {
				if li.ID == uuid.Nil {
					li.ID = uuid.New()
				}
				_, err := tx.ExecContext(ctx, `
                    INSERT INTO order_line_items (id, company_id, order_id, variant_id, sku, quantity, price, cost_at_time, created_at)
                    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
					li.ID, companyID, o.ID, li.VariantID, li.SKU, li.Quantity, li.Price, li.CostAtTime, o.CreatedAt)
				if err != nil {
					return fmt.Errorf("failed to insert line item for order %s: %w", o.OrderNumber, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
