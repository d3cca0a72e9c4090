package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/repository"
)

type inventoryRepository struct {
	db *DB
}

func NewInventoryRepository(db *DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

const variantColumns = `
    pv.id, pv.company_id, pv.product_id, p.title AS product_title, pv.sku,
    pv.inventory_quantity, pv.cost, pv.price, pv.reorder_point,
    pv.reorder_quantity, pv.supplier_id, s.name AS supplier_name,
    pv.created_at, pv.updated_at, pv.deleted_at
`

const variantJoins = `
    FROM product_variants pv
    JOIN products p ON p.id = pv.product_id
    LEFT JOIN suppliers s ON s.id = pv.supplier_id
`

func (r *inventoryRepository) ListVariants(ctx context.Context, companyID uuid.UUID, search string, limit, offset int) ([]domain.ProductVariant, int, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	where := `WHERE pv.company_id = $1 AND pv.deleted_at IS NULL`
	args := []interface{}{companyID}
	if search != "" {
		where += ` AND (pv.sku ILIKE $2 OR p.title ILIKE $2)`
		args = append(args, "%"+search+"%")
	}

	var total int
	countQuery := `SELECT COUNT(*)` + variantJoins + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count variants: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s %s %s ORDER BY pv.sku ASC LIMIT $%d OFFSET $%d`,
		variantColumns, variantJoins, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	variants := []domain.ProductVariant{}
	if err := r.db.SelectContext(ctx, &variants, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list variants: %w", err)
	}

	return variants, total, nil
}

func (r *inventoryRepository) GetVariant(ctx context.Context, companyID, variantID uuid.UUID) (*domain.ProductVariant, error) {
	query := `SELECT ` + variantColumns + variantJoins + `
        WHERE pv.company_id = $1 AND pv.id = $2 AND pv.deleted_at IS NULL`

	var v domain.ProductVariant
	if err := r.db.GetContext(ctx, &v, query, companyID, variantID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get variant: %w", err)
	}
	return &v, nil
}

func (r *inventoryRepository) GetVariantsBySKU(ctx context.Context, companyID uuid.UUID, skus []string) ([]domain.ProductVariant, error) {
	if len(skus) == 0 {
		return []domain.ProductVariant{}, nil
	}

	query, args, err := sqlx.In(`SELECT `+variantColumns+variantJoins+`
        WHERE pv.company_id = ? AND pv.sku IN (?) AND pv.deleted_at IS NULL`, companyID, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to build sku query: %w", err)
	}
	query = r.db.Rebind(query)

	variants := []domain.ProductVariant{}
	if err := r.db.SelectContext(ctx, &variants, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get variants by sku: %w", err)
	}
	return variants, nil
}

func (r *inventoryRepository) GetReorderCandidates(ctx context.Context, companyID uuid.UUID) ([]domain.ProductVariant, error) {
	query := `SELECT ` + variantColumns + variantJoins + `
        WHERE pv.company_id = $1
        AND pv.deleted_at IS NULL
        AND pv.reorder_point IS NOT NULL
        AND pv.reorder_point > 0
        ORDER BY pv.sku ASC`

	variants := []domain.ProductVariant{}
	if err := r.db.SelectContext(ctx, &variants, query, companyID); err != nil {
		return nil, fmt.Errorf("failed to get reorder candidates: %w", err)
	}
	return variants, nil
}

func (r *inventoryRepository) UpdateReorderSettings(ctx context.Context, companyID, variantID uuid.UUID, reorderPoint, reorderQuantity *int) error {
	result, err := r.db.ExecContext(ctx, `
        UPDATE product_variants
        SET reorder_point = $3, reorder_quantity = $4, updated_at = NOW()
        WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL`,
		companyID, variantID, reorderPoint, reorderQuantity)
	if err != nil {
		return fmt.Errorf("failed to update reorder settings: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("variant %s not found", variantID)
	}
	return nil
}

func (r *inventoryRepository) AdjustStock(ctx context.Context, companyID uuid.UUID, adj domain.StockAdjustment) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
            UPDATE product_variants
            SET inventory_quantity = GREATEST(inventory_quantity + $3, 0), updated_at = NOW()
            WHERE company_id = $1 AND id = $2 AND deleted_at IS NULL`,
			companyID, adj.VariantID, adj.Delta)
		if err != nil {
			return fmt.Errorf("failed to adjust stock: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check adjust result: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("variant %s not found", adj.VariantID)
		}

		_, err = tx.ExecContext(ctx, `
            INSERT INTO stock_movements (id, company_id, variant_id, delta, reason, created_at)
            VALUES ($1, $2, $3, $4, $5, NOW())`,
			uuid.New(), companyID, adj.VariantID, adj.Delta, adj.Reason)
		if err != nil {
			return fmt.Errorf("failed to record stock movement: %w", err)
		}
		return nil
	})
}

func (r *inventoryRepository) UpsertVariants(ctx context.Context, companyID uuid.UUID, rows []domain.InventoryUpsert) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	applied := 0
	err := r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, row := range rows {
			var supplierID *uuid.UUID
			if row.SupplierName != "" {
				var id uuid.UUID
				err := tx.GetContext(ctx, &id, `
                    SELECT id FROM suppliers
                    WHERE company_id = $1 AND name = $2 AND deleted_at IS NULL`,
					companyID, row.SupplierName)
				if err != nil && err != sql.ErrNoRows {
					return fmt.Errorf("failed to resolve supplier %q: %w", row.SupplierName, err)
				}
				if err == nil {
					supplierID = &id
				}
			}

			var productID uuid.UUID
			err := tx.GetContext(ctx, &productID, `
                SELECT product_id FROM product_variants
                WHERE company_id = $1 AND sku = $2`,
				companyID, row.SKU)
			if err == sql.ErrNoRows {
				productID = uuid.New()
				_, err = tx.ExecContext(ctx, `
                    INSERT INTO products (id, company_id, title, status, created_at, updated_at)
                    VALUES ($1, $2, $3, 'active', NOW(), NOW())`,
					productID, companyID, row.ProductTitle)
				if err != nil {
					return fmt.Errorf("failed to create product for %s: %w", row.SKU, err)
				}
			} else if err != nil {
				return fmt.Errorf("failed to look up variant %s: %w", row.SKU, err)
			}

			_, err = tx.ExecContext(ctx, `
                INSERT INTO product_variants
                    (id, company_id, product_id, sku, inventory_quantity, cost, price,
                     reorder_point, reorder_quantity, supplier_id, created_at, updated_at)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
                ON CONFLICT (company_id, sku) DO UPDATE SET
                    inventory_quantity = EXCLUDED.inventory_quantity,
                    cost = COALESCE(EXCLUDED.cost, product_variants.cost),
                    price = COALESCE(EXCLUDED.price, product_variants.price),
                    reorder_point = COALESCE(EXCLUDED.reorder_point, product_variants.reorder_point),
                    reorder_quantity = COALESCE(EXCLUDED.reorder_quantity, product_variants.reorder_quantity),
                    supplier_id = COALESCE(EXCLUDED.supplier_id, product_variants.supplier_id),
                    deleted_at = NULL,
                    updated_at = NOW()`,
				uuid.New(), companyID, productID, row.SKU, row.Quantity, row.Cost, row.Price,
				row.ReorderPoint, row.ReorderQuantity, supplierID)
			if err != nil {
				return fmt.Errorf("failed to upsert variant %s: %w", row.SKU, err)
			}
			applied++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

func (r *inventoryRepository) InventoryValue(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var value int64
	err := r.db.GetContext(ctx, &value, `
        SELECT COALESCE(SUM(inventory_quantity * COALESCE(cost, 0)), 0)
        FROM product_variants
        WHERE company_id = $1 AND deleted_at IS NULL AND inventory_quantity > 0`,
		companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute inventory value: %w", err)
	}
	return value, nil
}

func (r *inventoryRepository) LowStockCount(ctx context.Context, companyID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
        SELECT COUNT(*)
        FROM product_variants
        WHERE company_id = $1 AND deleted_at IS NULL
        AND reorder_point IS NOT NULL
        AND inventory_quantity < reorder_point`,
		companyID)
	if err != nil {
		return 0, fmt.Errorf("failed to count low stock: %w", err)
	}
	return count, nil
}
