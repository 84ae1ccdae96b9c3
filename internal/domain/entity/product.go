package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo de la distribuidora.
// El stock no vive aquí: se maneja en StockLevel y solo lo modifica el ledger.
type Product struct {
	ID             string          `db:"id"`
	Name           string          `db:"name"`
	Price          decimal.Decimal `db:"price"`      // precio de venta unitario
	Unit           string          `db:"unit"`       // unidad de venta (kg, caja, unidad...)
	CostPrice      decimal.Decimal `db:"cost_price"` // costo unitario
	LotNumber      string          `db:"lot_number"`
	ExpirationDate *time.Time      `db:"expiration_date"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// ProductStock es un producto con su cantidad disponible (0 si no tiene fila de stock).
type ProductStock struct {
	Product
	Stock decimal.Decimal `db:"stock"`
}
