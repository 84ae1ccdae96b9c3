package repository

import (
	"context"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockRepository define el puerto sobre la tabla stock. Solo el ledger de inventario
// debe usar Decrease/Increase; el resto del sistema lee.
type StockRepository interface {
	// Get devuelve la fila de stock; si no existe devuelve cantidad 0.
	Get(ctx context.Context, productID string) (*entity.StockLevel, error)
	// Decrease resta qty solo si quantity >= qty (guarda). ok=false si no se afectaron filas.
	Decrease(ctx context.Context, productID string, qty decimal.Decimal) (newQty decimal.Decimal, ok bool, err error)
	// Increase suma delta (con signo) creando la fila si no existe.
	Increase(ctx context.Context, productID string, delta decimal.Decimal) (newQty decimal.Decimal, err error)
}
