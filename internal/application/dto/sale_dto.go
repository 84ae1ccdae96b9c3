package dto

import (
	"time"

	"github.com/jhoicas/distribuidora-api/pkg/numeric"
	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta.
type SaleItemRequest struct {
	ProductID           string          `json:"productId"`
	Quantity            numeric.Decimal `json:"quantity"`
	Price               numeric.Decimal `json:"price"`
	PriceOverrideReason string          `json:"priceOverrideReason"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	SalespersonID    string            `json:"salespersonId"`
	CustomerID       string            `json:"customerId"`
	Items            []SaleItemRequest `json:"items"`
	Notes            string            `json:"notes"`
	PaymentMethod    string            `json:"paymentMethod"`
	IsPaidToCashbox  bool              `json:"isPaidToCashbox"`
	DeliveryStatus   string            `json:"deliveryStatus"`
	CollectionStatus string            `json:"collectionStatus"`
	CommissionRate   numeric.Decimal   `json:"commissionRate"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ID                  string          `json:"id"`
	ProductID           string          `json:"productId"`
	Quantity            decimal.Decimal `json:"quantity"`
	Price               decimal.Decimal `json:"price"`
	Subtotal            decimal.Decimal `json:"subtotal"`
	PriceOverrideReason string          `json:"priceOverrideReason,omitempty"`
}

// SaleResponse venta con sus líneas (Items vacío en listados).
type SaleResponse struct {
	ID                    string             `json:"id"`
	SalespersonID         string             `json:"salespersonId"`
	CustomerID            string             `json:"customerId"`
	SaleAmount            decimal.Decimal    `json:"saleAmount"`
	CommissionRate        decimal.Decimal    `json:"commissionRate"`
	CommissionAmount      decimal.Decimal    `json:"commissionAmount"`
	SaleDate              time.Time          `json:"saleDate"`
	Notes                 string             `json:"notes"`
	PaymentMethod         string             `json:"paymentMethod"`
	IsPaidToCashbox       bool               `json:"isPaidToCashbox"`
	DeliveryStatus        string             `json:"deliveryStatus"`
	DeliveryStatusDate    *time.Time         `json:"deliveryStatusDate,omitempty"`
	CollectionStatus      string             `json:"collectionStatus"`
	CommissionPaidStatus  string             `json:"commissionPaidStatus"`
	CommissionPaymentDate *time.Time         `json:"commissionPaymentDate,omitempty"`
	Items                 []SaleItemResponse `json:"items,omitempty"`
}

// UpdateCommissionRequest body para PUT /api/sales/:id/commission.
type UpdateCommissionRequest struct {
	Status      string `json:"status"`
	PaymentDate string `json:"paymentDate"` // YYYY-MM-DD, solo si status = pagada
}
