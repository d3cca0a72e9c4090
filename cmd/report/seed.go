package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/urfave/cli/v2"
)

type seedVariant struct {
	sku          string
	title        string
	quantity     int
	cost         int64
	price        int64
	reorderPoint int
	reorderQty   int
	supplier     int // index into the seeded suppliers
	dailySales   int // average units sold per day
}

var seedSuppliers = []struct {
	name     string
	email    string
	leadTime int
}{
	{"Pacific Trade Co", "orders@pacifictrade.example", 14},
	{"Northline Supply", "purchasing@northline.example", 7},
}

var seedCatalog = []seedVariant{
	{"TEE-BLK-M", "Classic Tee Black M", 120, 450, 1499, 40, 80, 0, 4},
	{"TEE-BLK-L", "Classic Tee Black L", 35, 450, 1499, 40, 80, 0, 5},
	{"HOOD-GRY-M", "Fleece Hoodie Grey M", 18, 1450, 3999, 25, 50, 0, 3},
	{"MUG-12OZ", "Enamel Camp Mug 12oz", 210, 320, 1199, 60, 120, 1, 6},
	{"BTL-STL-750", "Steel Bottle 750ml", 12, 780, 2499, 30, 60, 1, 2},
	{"SOCK-WL-OS", "Wool Hiking Socks", 300, 260, 899, 80, 160, 1, 8},
	{"CAP-NVY-OS", "Snapback Cap Navy", 55, 510, 1899, 20, 40, 0, 1},
	{"PIN-LOGO", "Enamel Logo Pin", 500, 90, 499, 0, 0, 1, 1},
}

func runSeed(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	companyID := uuid.New()
	historyDays := c.Int("history-days")
	now := time.Now().UTC()

	err = db.WithTx(c.Context, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(c.Context, `
            INSERT INTO companies (id, name, created_at, updated_at)
            VALUES ($1, $2, NOW(), NOW())`,
			companyID, c.String("company-name"))
		if err != nil {
			return fmt.Errorf("failed to create company: %w", err)
		}

		supplierIDs := make([]uuid.UUID, len(seedSuppliers))
		for i, s := range seedSuppliers {
			supplierIDs[i] = uuid.New()
			_, err := tx.ExecContext(c.Context, `
                INSERT INTO suppliers (id, company_id, name, email, default_lead_time_days, created_at, updated_at)
                VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`,
				supplierIDs[i], companyID, s.name, s.email, s.leadTime)
			if err != nil {
				return fmt.Errorf("failed to create supplier %s: %w", s.name, err)
			}
		}

		variantIDs := make([]uuid.UUID, len(seedCatalog))
		for i, v := range seedCatalog {
			productID := uuid.New()
			_, err := tx.ExecContext(c.Context, `
                INSERT INTO products (id, company_id, title, status, created_at, updated_at)
                VALUES ($1, $2, $3, 'active', NOW(), NOW())`,
				productID, companyID, v.title)
			if err != nil {
				return fmt.Errorf("failed to create product %s: %w", v.title, err)
			}

			variantIDs[i] = uuid.New()
			var reorderPoint, reorderQty interface{}
			if v.reorderPoint > 0 {
				reorderPoint, reorderQty = v.reorderPoint, v.reorderQty
			}
			_, err = tx.ExecContext(c.Context, `
                INSERT INTO product_variants
                    (id, company_id, product_id, sku, inventory_quantity, cost, price,
                     reorder_point, reorder_quantity, supplier_id, created_at, updated_at)
                VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())`,
				variantIDs[i], companyID, productID, v.sku, v.quantity, v.cost, v.price,
				reorderPoint, reorderQty, supplierIDs[v.supplier])
			if err != nil {
				return fmt.Errorf("failed to create variant %s: %w", v.sku, err)
			}
		}

		orders := 0
		for day := historyDays; day >= 1; day-- {
			createdAt := now.AddDate(0, 0, -day)
			orderID := uuid.New()
			orderNumber := fmt.Sprintf("SEED-%s", createdAt.Format("20060102"))

			var total int64
			type seedLine struct {
				variant seedVariant
				id      uuid.UUID
				qty     int
			}
			var lines []seedLine
			for i, v := range seedCatalog {
				qty := dailyQuantity(v.dailySales, day, i)
				if qty == 0 {
					continue
				}
				lines = append(lines, seedLine{variant: v, id: variantIDs[i], qty: qty})
				total += int64(qty) * v.price
			}
			if len(lines) == 0 {
				continue
			}

			_, err := tx.ExecContext(c.Context, `
                INSERT INTO orders (id, company_id, order_number, total_amount, created_at)
                VALUES ($1, $2, $3, $4, $5)`,
				orderID, companyID, orderNumber, total, createdAt)
			if err != nil {
				return fmt.Errorf("failed to create order %s: %w", orderNumber, err)
			}
			orders++

			for _, line := range lines {
				_, err := tx.ExecContext(c.Context, `
                    INSERT INTO order_line_items (id, company_id, order_id, variant_id, sku, quantity, price, cost_at_time, created_at)
                    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
					uuid.New(), companyID, orderID, line.id, line.variant.sku,
					line.qty, line.variant.price, line.variant.cost, createdAt)
				if err != nil {
					return fmt.Errorf("failed to create line item for %s: %w", line.variant.sku, err)
				}
			}
		}

		fmt.Printf("Seeded company %s (%s): %d suppliers, %d variants, %d orders over %d days.\n",
			c.String("company-name"), companyID, len(seedSuppliers), len(seedCatalog), orders, historyDays)
		return nil
	})
	return err
}

// dailyQuantity produces a repeatable sales pattern: a weekly cycle with a
// weekend bump, offset per variant so the series do not move in lockstep.
func dailyQuantity(avg, day, variantIndex int) int {
	if avg == 0 {
		return 0
	}
	weekday := (day + variantIndex) % 7
	switch weekday {
	case 0, 6:
		return avg + avg/2
	case 3:
		if avg <= 1 {
			return 0
		}
		return avg / 2
	default:
		return avg
	}
}
