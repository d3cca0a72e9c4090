// Package imports parses sales and inventory files uploaded by tenants or
// pulled from a Google Drive folder, normalizing them into domain rows.
package imports

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

// OrderRow is one parsed line of a sales CSV. Rows sharing an order number
// become line items of a single order.
type OrderRow struct {
	OrderNumber  string
	SKU          string
	Quantity     int
	UnitPrice    int64
	SaleDate     time.Time
	CustomerName string
}

// InventoryRow is one parsed line of an inventory CSV.
type InventoryRow struct {
	SKU             string
	ProductTitle    string
	Quantity        int
	Cost            *int64
	Price           *int64
	ReorderPoint    *int
	ReorderQuantity *int
	SupplierName    string
}

var orderDateFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
}

// ParseOrdersCSV reads a sales CSV with columns order_number, sku, quantity,
// unit_price and sale_date (customer_name optional). Header names are matched
// case-insensitively; unknown columns are ignored.
func ParseOrdersCSV(r io.Reader) ([]OrderRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	cols := indexColumns(header)

	for _, required := range []string{"order_number", "sku", "quantity", "unit_price", "sale_date"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var rows []OrderRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", line+1, err)
		}
		line++

		qty, err := strconv.Atoi(strings.TrimSpace(field(record, cols, "quantity")))
		if err != nil || qty <= 0 {
			return nil, fmt.Errorf("row %d: invalid quantity %q", line, field(record, cols, "quantity"))
		}
		price, err := parseCents(field(record, cols, "unit_price"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid unit_price: %w", line, err)
		}
		saleDate, err := parseDate(field(record, cols, "sale_date"))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid sale_date: %w", line, err)
		}

		row := OrderRow{
			OrderNumber:  strings.TrimSpace(field(record, cols, "order_number")),
			SKU:          strings.TrimSpace(field(record, cols, "sku")),
			Quantity:     qty,
			UnitPrice:    price,
			SaleDate:     saleDate,
			CustomerName: strings.TrimSpace(field(record, cols, "customer_name")),
		}
		if row.OrderNumber == "" || row.SKU == "" {
			return nil, fmt.Errorf("row %d: order_number and sku are required", line)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// ParseInventoryCSV reads an inventory CSV with columns sku, product_name and
// quantity (cost, price, reorder_point, reorder_quantity, supplier_name
// optional).
func ParseInventoryCSV(r io.Reader) ([]InventoryRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	cols := indexColumns(header)

	for _, required := range []string{"sku", "product_name", "quantity"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var rows []InventoryRow
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", line+1, err)
		}
		line++

		qty, err := strconv.Atoi(strings.TrimSpace(field(record, cols, "quantity")))
		if err != nil || qty < 0 {
			return nil, fmt.Errorf("row %d: invalid quantity %q", line, field(record, cols, "quantity"))
		}

		row := InventoryRow{
			SKU:          strings.TrimSpace(field(record, cols, "sku")),
			ProductTitle: strings.TrimSpace(field(record, cols, "product_name")),
			Quantity:     qty,
			SupplierName: strings.TrimSpace(field(record, cols, "supplier_name")),
		}
		if row.SKU == "" || row.ProductTitle == "" {
			return nil, fmt.Errorf("row %d: sku and product_name are required", line)
		}

		if v := field(record, cols, "cost"); v != "" {
			cents, err := parseCents(v)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid cost: %w", line, err)
			}
			row.Cost = &cents
		}
		if v := field(record, cols, "price"); v != "" {
			cents, err := parseCents(v)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid price: %w", line, err)
			}
			row.Price = &cents
		}
		if v := field(record, cols, "reorder_point"); v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("row %d: invalid reorder_point %q", line, v)
			}
			row.ReorderPoint = &n
		}
		if v := field(record, cols, "reorder_quantity"); v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || n < 0 {
				return nil, fmt.Errorf("row %d: invalid reorder_quantity %q", line, v)
			}
			row.ReorderQuantity = &n
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// parseCents converts a decimal money string such as "12.99" to integer cents.
func parseCents(s string) (int64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid money value %q", s)
	}
	if f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid money value %q", s)
	}
	return int64(math.Round(f * 100)), nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range orderDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
