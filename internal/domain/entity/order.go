package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order pedido generado desde el carrito (orders).
type Order struct {
	ID           string          `db:"id"`
	CustomerName string          `db:"customer_name"`
	OrderDate    time.Time       `db:"order_date"`
	Status       string          `db:"status"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
}

// OrderItem línea de un pedido.
type OrderItem struct {
	ID           string          `db:"id"`
	OrderID      string          `db:"order_id"`
	ProductID    string          `db:"product_id"`
	ProductName  string          `db:"product_name"`
	Quantity     decimal.Decimal `db:"quantity"`
	PricePerUnit decimal.Decimal `db:"price_per_unit"`
}

// Subtotal cantidad por precio.
func (i *OrderItem) Subtotal() decimal.Decimal { return i.Quantity.Mul(i.PricePerUnit) }
