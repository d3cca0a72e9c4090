package imports

import (
	"strings"
	"testing"
)

func TestParseOrdersCSV(t *testing.T) {
	input := `order_number,sku,quantity,unit_price,sale_date,customer_name
ORD-1,SKU001,2,12.99,2026-01-15,Alice
ORD-1,SKU002,1,5.00,2026-01-15,Alice
ORD-2,SKU001,3,12.99,2026-01-16,
`
	rows, err := ParseOrdersCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].OrderNumber != "ORD-1" || rows[0].SKU != "SKU001" {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if rows[0].UnitPrice != 1299 {
		t.Errorf("expected 1299 cents, got %d", rows[0].UnitPrice)
	}
	if rows[1].UnitPrice != 500 {
		t.Errorf("expected 500 cents, got %d", rows[1].UnitPrice)
	}
	if rows[2].SaleDate.Day() != 16 {
		t.Errorf("unexpected sale date: %v", rows[2].SaleDate)
	}
}

func TestParseOrdersCSVMissingColumn(t *testing.T) {
	input := "order_number,sku,quantity\nORD-1,SKU001,2\n"
	if _, err := ParseOrdersCSV(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestParseOrdersCSVInvalidQuantity(t *testing.T) {
	input := "order_number,sku,quantity,unit_price,sale_date\nORD-1,SKU001,zero,1.00,2026-01-15\n"
	if _, err := ParseOrdersCSV(strings.NewReader(input)); err == nil {
		t.Fatal("expected error for invalid quantity")
	}
}

func TestParseInventoryCSV(t *testing.T) {
	input := `sku,product_name,quantity,cost,price,reorder_point,reorder_quantity,supplier_name
SKU001,Widget,40,3.50,9.99,50,100,Acme
SKU002,Gadget,10,,,,,
`
	rows, err := ParseInventoryCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Cost == nil || *first.Cost != 350 {
		t.Errorf("expected cost 350 cents, got %v", first.Cost)
	}
	if first.ReorderPoint == nil || *first.ReorderPoint != 50 {
		t.Errorf("expected reorder point 50, got %v", first.ReorderPoint)
	}
	if first.SupplierName != "Acme" {
		t.Errorf("expected supplier Acme, got %q", first.SupplierName)
	}

	second := rows[1]
	if second.Cost != nil || second.ReorderPoint != nil {
		t.Errorf("expected optional fields to be nil: %+v", second)
	}
}

func TestParseInventoryCSVHeaderCaseInsensitive(t *testing.T) {
	input := "SKU,Product_Name,Quantity\nSKU001,Widget,5\n"
	rows, err := ParseInventoryCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].Quantity != 5 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}
