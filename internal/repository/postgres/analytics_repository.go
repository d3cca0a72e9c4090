package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/repository"
)

type analyticsRepository struct {
	db *DB
}

func NewAnalyticsRepository(db *DB) repository.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) DeadStock(ctx context.Context, companyID uuid.UUID, deadStockDays int) ([]domain.DeadStockItem, error) {
	if deadStockDays <= 0 {
		deadStockDays = 90
	}

	items := []domain.DeadStockItem{}
	err := r.db.SelectContext(ctx, &items, `
        WITH last_sales AS (
            SELECT oli.variant_id, MAX(o.created_at) AS last_sold_at
            FROM order_line_items oli
            JOIN orders o ON o.id = oli.order_id
            WHERE oli.company_id = $1
            GROUP BY oli.variant_id
        )
        SELECT pv.id AS variant_id,
               pv.sku,
               p.title AS product_title,
               pv.inventory_quantity AS quantity,
               COALESCE(pv.cost, 0) AS cost_per_unit,
               pv.inventory_quantity * COALESCE(pv.cost, 0) AS total_value,
               ls.last_sold_at,
               COALESCE(EXTRACT(DAY FROM NOW() - ls.last_sold_at)::int, $2) AS days_since_sale
        FROM product_variants pv
        JOIN products p ON p.id = pv.product_id
        LEFT JOIN last_sales ls ON ls.variant_id = pv.id
        WHERE pv.company_id = $1
        AND pv.deleted_at IS NULL
        AND pv.inventory_quantity > 0
        AND (ls.last_sold_at IS NULL OR ls.last_sold_at < NOW() - make_interval(days => $2))
        ORDER BY total_value DESC`,
		companyID, deadStockDays)
	if err != nil {
		return nil, fmt.Errorf("failed to query dead stock: %w", err)
	}
	return items, nil
}

func (r *analyticsRepository) DashboardSummary(ctx context.Context, companyID uuid.UUID, periodDays int) (*domain.DashboardSummary, error) {
	if periodDays <= 0 {
		periodDays = 30
	}

	summary := &domain.DashboardSummary{PeriodDays: periodDays}
	err := r.db.GetContext(ctx, summary, `
        SELECT COALESCE(SUM(total_amount), 0) AS total_revenue,
               COUNT(*) AS order_count
        FROM orders
        WHERE company_id = $1 AND created_at >= NOW() - make_interval(days => $2)`,
		companyID, periodDays)
	if err != nil {
		return nil, fmt.Errorf("failed to query dashboard revenue: %w", err)
	}

	err = r.db.GetContext(ctx, &summary.LowStockCount, `
        SELECT COUNT(*)
        FROM product_variants
        WHERE company_id = $1 AND deleted_at IS NULL
        AND reorder_point IS NOT NULL
        AND inventory_quantity < reorder_point`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock count: %w", err)
	}

	err = r.db.GetContext(ctx, &summary.DeadStockValue, `
        WITH last_sales AS (
            SELECT oli.variant_id, MAX(o.created_at) AS last_sold_at
            FROM order_line_items oli
            JOIN orders o ON o.id = oli.order_id
            WHERE oli.company_id = $1
            GROUP BY oli.variant_id
        )
        SELECT COALESCE(SUM(pv.inventory_quantity * COALESCE(pv.cost, 0)), 0)
        FROM product_variants pv
        LEFT JOIN last_sales ls ON ls.variant_id = pv.id
        WHERE pv.company_id = $1
        AND pv.deleted_at IS NULL
        AND pv.inventory_quantity > 0
        AND (ls.last_sold_at IS NULL OR ls.last_sold_at < NOW() - make_interval(days => 90))`,
		companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dead stock value: %w", err)
	}

	return summary, nil
}
