package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ruthwikaki/invochat-go/internal/domain"
	"github.com/ruthwikaki/invochat-go/internal/repository"
)

type purchaseOrderRepository struct {
	db *DB
}

func NewPurchaseOrderRepository(db *DB) repository.PurchaseOrderRepository {
	return &purchaseOrderRepository{db: db}
}

const poColumns = `
    po.id, po.company_id, po.po_number, po.supplier_id, s.name AS supplier_name,
    po.status, po.total_cost, po.created_at, po.sent_at, po.received_at
`

func (r *purchaseOrderRepository) Create(ctx context.Context, po *domain.PurchaseOrder) error {
	if po.ID == uuid.Nil {
		po.ID = uuid.New()
	}
	if po.Status == "" {
		po.Status = domain.POStatusDraft
	}

	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO purchase_orders (id, company_id, po_number, supplier_id, status, total_cost, created_at)
            VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
			po.ID, po.CompanyID, po.PONumber, po.SupplierID, po.Status, po.TotalCost)
		if err != nil {
			return fmt.Errorf("failed to create purchase order: %w", err)
		}

		for i := range po.LineItems {
			item := &po.LineItems[i]
			if item.ID == uuid.Nil {
				item.ID = uuid.New()
			}
			item.PurchaseOrderID = po.ID
			_, err := tx.ExecContext(ctx, `
                INSERT INTO purchase_order_items (id, purchase_order_id, variant_id, sku, quantity, unit_cost)
                VALUES ($1, $2, $3, $4, $5, $6)`,
				item.ID, item.PurchaseOrderID, item.VariantID, item.SKU, item.Quantity, item.UnitCost)
			if err != nil {
				return fmt.Errorf("failed to create purchase order item %s: %w", item.SKU, err)
			}
		}
		return nil
	})
}

func (r *purchaseOrderRepository) List(ctx context.Context, companyID uuid.UUID, status string, limit, offset int) ([]domain.PurchaseOrder, int, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	where := `WHERE po.company_id = $1`
	args := []interface{}{companyID}
	if status != "" {
		where += ` AND po.status = $2`
		args = append(args, status)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM purchase_orders po ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count purchase orders: %w", err)
	}

	query := fmt.Sprintf(`
        SELECT %s
        FROM purchase_orders po
        JOIN suppliers s ON s.id = po.supplier_id
        %s
        ORDER BY po.created_at DESC
        LIMIT $%d OFFSET $%d`, poColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	pos := []domain.PurchaseOrder{}
	if err := r.db.SelectContext(ctx, &pos, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list purchase orders: %w", err)
	}
	return pos, total, nil
}

func (r *purchaseOrderRepository) Get(ctx context.Context, companyID, poID uuid.UUID) (*domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	err := r.db.GetContext(ctx, &po, `
        SELECT `+poColumns+`
        FROM purchase_orders po
        JOIN suppliers s ON s.id = po.supplier_id
        WHERE po.company_id = $1 AND po.id = $2`,
		companyID, poID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get purchase order: %w", err)
	}

	items := []domain.PurchaseOrderItem{}
	err = r.db.SelectContext(ctx, &items, `
        SELECT id, purchase_order_id, variant_id, sku, quantity, unit_cost
        FROM purchase_order_items
        WHERE purchase_order_id = $1
        ORDER BY sku ASC`,
		poID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase order items: %w", err)
	}
	po.LineItems = items
	return &po, nil
}

func (r *purchaseOrderRepository) MarkReceived(ctx context.Context, companyID, poID uuid.UUID, receivedAt time.Time) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx, `
            UPDATE purchase_orders
            SET status = $3, received_at = $4
            WHERE company_id = $1 AND id = $2 AND status != $3`,
			companyID, poID, domain.POStatusReceived, receivedAt)
		if err != nil {
			return fmt.Errorf("failed to mark purchase order received: %w", err)
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check update result: %w", err)
		}
		if rows == 0 {
			return fmt.Errorf("purchase order %s not found or already received", poID)
		}

		_, err = tx.ExecContext(ctx, `
            UPDATE product_variants pv
            SET inventory_quantity = pv.inventory_quantity + poi.quantity, updated_at = NOW()
            FROM purchase_order_items poi
            WHERE poi.purchase_order_id = $1 AND poi.variant_id = pv.id AND pv.company_id = $2`,
			poID, companyID)
		if err != nil {
			return fmt.Errorf("failed to apply received quantities: %w", err)
		}
		return nil
	})
}
