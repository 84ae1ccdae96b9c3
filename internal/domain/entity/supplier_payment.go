package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierPayment pago a cuenta de un proveedor (supplier_payments).
type SupplierPayment struct {
	ID            string          `db:"id"`
	SupplierID    string          `db:"supplier_id"`
	Amount        decimal.Decimal `db:"payment_amount"`
	PaymentDate   time.Time       `db:"payment_date"`
	PaymentMethod string          `db:"payment_method"`
	Notes         string          `db:"notes"`
	CreatedAt     time.Time       `db:"created_at"`
}

// SupplierTotal monto acumulado por proveedor.
type SupplierTotal struct {
	SupplierID string          `db:"supplier_id"`
	Total      decimal.Decimal `db:"total"`
}
