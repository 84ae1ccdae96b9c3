package dto

import (
	"time"

	"github.com/jhoicas/distribuidora-api/pkg/numeric"
	"github.com/shopspring/decimal"
)

// PurchaseItemRequest línea de compra.
type PurchaseItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  numeric.Decimal `json:"quantity"`
	CostPrice numeric.Decimal `json:"costPrice"`
}

// CreatePurchaseRequest body para POST /api/purchases. Fechas en formato YYYY-MM-DD.
type CreatePurchaseRequest struct {
	SupplierID     string                `json:"supplierId"`
	PurchaseDate   string                `json:"purchaseDate"`
	InvoiceNumber  string                `json:"invoiceNumber"`
	Notes          string                `json:"notes"`
	PaymentDueDate string                `json:"paymentDueDate"`
	Items          []PurchaseItemRequest `json:"items"`
}

type PurchaseItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
	CostPrice decimal.Decimal `json:"costPrice"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type PurchaseResponse struct {
	ID             string                 `json:"id"`
	SupplierID     string                 `json:"supplierId"`
	PurchaseDate   time.Time              `json:"purchaseDate"`
	TotalAmount    decimal.Decimal        `json:"totalAmount"`
	InvoiceNumber  string                 `json:"invoiceNumber"`
	Notes          string                 `json:"notes"`
	PaymentDueDate *time.Time             `json:"paymentDueDate,omitempty"`
	PaymentStatus  string                 `json:"paymentStatus"`
	Items          []PurchaseItemResponse `json:"items,omitempty"`
}
