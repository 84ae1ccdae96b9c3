package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados usados por ventas, pedidos y compras.
const (
	StatusPending       = "Pendiente"
	StatusInPreparation = "En preparación"
	StatusDelivered     = "Entregado"

	CommissionPending = "pendiente"
	CommissionPaid    = "pagada"
)

// Sale cabecera de una venta directa (sales_records).
type Sale struct {
	ID                    string          `db:"id"`
	SalespersonID         string          `db:"salesperson_id"`
	CustomerID            string          `db:"customer_id"`
	SaleAmount            decimal.Decimal `db:"sale_amount"`
	CommissionRate        decimal.Decimal `db:"commission_rate"`
	CommissionAmount      decimal.Decimal `db:"commission_amount"`
	SaleDate              time.Time       `db:"sale_date"`
	Notes                 string          `db:"notes"`
	PaymentMethod         string          `db:"payment_method"`
	IsPaidToCashbox       bool            `db:"is_paid_to_cashbox"`
	DeliveryStatus        string          `db:"delivery_status"`
	DeliveryStatusDate    *time.Time      `db:"delivery_status_date"`
	CollectionStatus      string          `db:"collection_status"`
	CollectionDate        *time.Time      `db:"collection_date"`
	CommissionPaidStatus  string          `db:"commission_paid_status"`
	CommissionPaymentDate *time.Time      `db:"commission_payment_date"`
}

// SaleItem línea de una venta.
type SaleItem struct {
	ID                  string          `db:"id"`
	SaleID              string          `db:"sale_record_id"`
	ProductID           string          `db:"product_id"`
	Quantity            decimal.Decimal `db:"quantity"`
	Price               decimal.Decimal `db:"price"`
	PriceOverrideReason string          `db:"price_override_reason"`
}

// Subtotal cantidad por precio.
func (i *SaleItem) Subtotal() decimal.Decimal { return i.Quantity.Mul(i.Price) }
