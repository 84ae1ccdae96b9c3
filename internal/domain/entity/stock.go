package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel es la cantidad disponible de un producto (una fila por producto).
// Se crea de forma perezosa en el primer movimiento que suma stock.
type StockLevel struct {
	ProductID string          `db:"product_id"`
	Quantity  decimal.Decimal `db:"quantity"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// LowStock fila para avisos de bajo stock.
type LowStock struct {
	ProductID   string          `db:"product_id"`
	ProductName string          `db:"name"`
	Quantity    decimal.Decimal `db:"quantity"`
}
