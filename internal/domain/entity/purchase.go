package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase cabecera de una compra a proveedor (supplier_purchases).
type Purchase struct {
	ID             string          `db:"id"`
	SupplierID     string          `db:"supplier_id"`
	PurchaseDate   time.Time       `db:"purchase_date"`
	TotalAmount    decimal.Decimal `db:"total_amount"`
	InvoiceNumber  string          `db:"invoice_number"`
	Notes          string          `db:"notes"`
	PaymentDueDate *time.Time      `db:"payment_due_date"`
	PaymentStatus  string          `db:"payment_status"`
}

// PurchaseItem línea de una compra.
type PurchaseItem struct {
	ID         string          `db:"id"`
	PurchaseID string          `db:"purchase_id"`
	ProductID  string          `db:"product_id"`
	Quantity   decimal.Decimal `db:"quantity"`
	CostPrice  decimal.Decimal `db:"cost_price"`
}

// Subtotal cantidad por costo.
func (i *PurchaseItem) Subtotal() decimal.Decimal { return i.Quantity.Mul(i.CostPrice) }
