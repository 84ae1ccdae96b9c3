package dto

import (
	"time"

	"github.com/jhoicas/distribuidora-api/pkg/numeric"
	"github.com/shopspring/decimal"
)

// CreateSupplierPaymentRequest body para POST /api/suppliers/:supplierId/payments.
type CreateSupplierPaymentRequest struct {
	Amount        numeric.Decimal `json:"paymentAmount"`
	PaymentDate   string          `json:"paymentDate"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
}

type SupplierPaymentResponse struct {
	ID            string          `json:"id"`
	SupplierID    string          `json:"supplierId"`
	Amount        decimal.Decimal `json:"paymentAmount"`
	PaymentDate   time.Time       `json:"paymentDate"`
	PaymentMethod string          `json:"paymentMethod"`
	Notes         string          `json:"notes"`
}

// SupplierDebtResponse saldo de un proveedor: compras menos pagos.
type SupplierDebtResponse struct {
	SupplierID     string          `json:"supplierId"`
	TotalPurchased decimal.Decimal `json:"totalPurchased"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	Balance        decimal.Decimal `json:"balance"`
}
