// internal/domain/models.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product groups the variants sold under one listing.
type Product struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	CompanyID uuid.UUID  `json:"company_id" db:"company_id"`
	Title     string     `json:"title" db:"title"`
	Status    string     `json:"status" db:"status"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// ProductVariant is the sellable unit; SKU is unique per company.
// Cost is stored in integer cents.
type ProductVariant struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	CompanyID         uuid.UUID  `json:"company_id" db:"company_id"`
	ProductID         uuid.UUID  `json:"product_id" db:"product_id"`
	ProductTitle      string     `json:"product_title" db:"product_title"`
	SKU               string     `json:"sku" db:"sku"`
	InventoryQuantity int        `json:"inventory_quantity" db:"inventory_quantity"`
	Cost              *int64     `json:"cost,omitempty" db:"cost"`
	Price             *int64     `json:"price,omitempty" db:"price"`
	ReorderPoint      *int       `json:"reorder_point,omitempty" db:"reorder_point"`
	ReorderQuantity   *int       `json:"reorder_quantity,omitempty" db:"reorder_quantity"`
	SupplierID        *uuid.UUID `json:"supplier_id,omitempty" db:"supplier_id"`
	SupplierName      *string    `json:"supplier_name,omitempty" db:"supplier_name"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt         *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Supplier represents a vendor purchase orders are sent to.
type Supplier struct {
	ID                  uuid.UUID  `json:"id" db:"id"`
	CompanyID           uuid.UUID  `json:"company_id" db:"company_id"`
	Name                string     `json:"name" db:"name"`
	Email               *string    `json:"email,omitempty" db:"email"`
	Phone               *string    `json:"phone,omitempty" db:"phone"`
	DefaultLeadTimeDays *int       `json:"default_lead_time_days,omitempty" db:"default_lead_time_days"`
	CreatedAt           time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt           *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Customer represents a buyer synced from the sales channels.
type Customer struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	CompanyID    uuid.UUID  `json:"company_id" db:"company_id"`
	CustomerName string     `json:"customer_name" db:"customer_name"`
	Email        *string    `json:"email,omitempty" db:"email"`
	TotalOrders  int        `json:"total_orders" db:"total_orders"`
	TotalSpent   int64      `json:"total_spent" db:"total_spent"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Order is a sales order; line items carry the per-SKU quantities.
type Order struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	CompanyID   uuid.UUID       `json:"company_id" db:"company_id"`
	OrderNumber string          `json:"order_number" db:"order_number"`
	CustomerID  *uuid.UUID      `json:"customer_id,omitempty" db:"customer_id"`
	TotalAmount int64           `json:"total_amount" db:"total_amount"`
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`
	LineItems   []OrderLineItem `json:"line_items,omitempty" db:"-"`
}

// OrderLineItem records one SKU on an order. CostAtTime captures the unit
// cost in cents when the sale happened, for COGS calculations.
type OrderLineItem struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CompanyID  uuid.UUID `json:"company_id" db:"company_id"`
	OrderID    uuid.UUID `json:"order_id" db:"order_id"`
	VariantID  uuid.UUID `json:"variant_id" db:"variant_id"`
	SKU        string    `json:"sku" db:"sku"`
	Quantity   int       `json:"quantity" db:"quantity"`
	Price      int64     `json:"price" db:"price"`
	CostAtTime *int64    `json:"cost_at_time,omitempty" db:"cost_at_time"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// SalesPoint is one day of aggregated unit sales for a SKU.
type SalesPoint struct {
	SaleDate      time.Time `json:"sale_date" db:"sale_date"`
	TotalQuantity int       `json:"total_quantity" db:"total_quantity"`
}

// PurchaseOrderStatus values follow the PO lifecycle.
const (
	POStatusDraft    = "draft"
	POStatusSent     = "sent"
	POStatusReceived = "received"
	POStatusCanceled = "canceled"
)

// PurchaseOrder groups line items sent to a single supplier.
type PurchaseOrder struct {
	ID           uuid.UUID           `json:"id" db:"id"`
	CompanyID    uuid.UUID           `json:"company_id" db:"company_id"`
	PONumber     string              `json:"po_number" db:"po_number"`
	SupplierID   uuid.UUID           `json:"supplier_id" db:"supplier_id"`
	SupplierName string              `json:"supplier_name" db:"supplier_name"`
	Status       string              `json:"status" db:"status"`
	TotalCost    int64               `json:"total_cost" db:"total_cost"`
	CreatedAt    time.Time           `json:"created_at" db:"created_at"`
	SentAt       *time.Time          `json:"sent_at,omitempty" db:"sent_at"`
	ReceivedAt   *time.Time          `json:"received_at,omitempty" db:"received_at"`
	LineItems    []PurchaseOrderItem `json:"line_items,omitempty" db:"-"`
}

// PurchaseOrderItem is one SKU on a purchase order.
type PurchaseOrderItem struct {
	ID              uuid.UUID `json:"id" db:"id"`
	PurchaseOrderID uuid.UUID `json:"purchase_order_id" db:"purchase_order_id"`
	VariantID       uuid.UUID `json:"variant_id" db:"variant_id"`
	SKU             string    `json:"sku" db:"sku"`
	Quantity        int       `json:"quantity" db:"quantity"`
	UnitCost        *int64    `json:"unit_cost,omitempty" db:"unit_cost"`
}

// CompanySettings holds the per-tenant reorder policy knobs.
type CompanySettings struct {
	CompanyID          uuid.UUID `json:"company_id" db:"company_id"`
	Timezone           string    `json:"timezone" db:"timezone"`
	DeadStockDays      int       `json:"dead_stock_days" db:"dead_stock_days"`
	LeadTimeDays       int       `json:"lead_time_days" db:"lead_time_days"`
	SafetyStockDays    int       `json:"safety_stock_days" db:"safety_stock_days"`
	VelocityWindowDays int       `json:"velocity_window_days" db:"velocity_window_days"`
}

// AuditEntry records an action taken on behalf of a company, such as
// materializing purchase orders from a suggestion batch.
type AuditEntry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CompanyID uuid.UUID `json:"company_id" db:"company_id"`
	Action    string    `json:"action" db:"action"`
	Details   string    `json:"details" db:"details"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// StockAdjustment is a manual inventory correction.
type StockAdjustment struct {
	VariantID uuid.UUID `json:"variant_id"`
	Delta     int       `json:"delta"`
	Reason    string    `json:"reason"`
}

// InventoryUpsert is one row of an inventory import. Matching is by SKU;
// supplier is resolved by name and left unassigned when unknown.
type InventoryUpsert struct {
	SKU             string `json:"sku"`
	ProductTitle    string `json:"product_title"`
	Quantity        int    `json:"quantity"`
	Cost            *int64 `json:"cost,omitempty"`
	Price           *int64 `json:"price,omitempty"`
	ReorderPoint    *int   `json:"reorder_point,omitempty"`
	ReorderQuantity *int   `json:"reorder_quantity,omitempty"`
	SupplierName    string `json:"supplier_name,omitempty"`
}
