package dto

import (
	"time"

	"github.com/jhoicas/distribuidora-api/pkg/numeric"
	"github.com/shopspring/decimal"
)

// OrderItemRequest línea del carrito.
type OrderItemRequest struct {
	ProductID    string          `json:"productId"`
	Quantity     numeric.Decimal `json:"quantity"`
	PricePerUnit numeric.Decimal `json:"pricePerUnit"`
}

// CreateOrderRequest body para POST /api/orders. TotalAmount es opcional; si viene debe coincidir.
type CreateOrderRequest struct {
	CustomerName string             `json:"customerName"`
	Items        []OrderItemRequest `json:"items"`
	TotalAmount  numeric.Decimal    `json:"totalAmount"`
	Status       string             `json:"status"`
}

type OrderItemResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	ID           string              `json:"id"`
	CustomerName string              `json:"customerName"`
	OrderDate    time.Time           `json:"orderDate"`
	Status       string              `json:"status"`
	TotalAmount  decimal.Decimal     `json:"totalAmount"`
	Items        []OrderItemResponse `json:"items,omitempty"`
}
