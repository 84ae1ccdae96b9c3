package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get devuelve la fila de stock del producto; cantidad 0 si todavía no existe.
func (r *StockRepo) Get(ctx context.Context, productID string) (*entity.StockLevel, error) {
	var s entity.StockLevel
	err := r.q.QueryRow(ctx,
		`SELECT product_id, quantity, updated_at FROM stock WHERE product_id = $1`, productID,
	).Scan(&s.ProductID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{ProductID: productID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// Decrease resta qty solo si alcanza. El UPDATE condicional toma el lock de la fila,
// así que dos restas concurrentes sobre el mismo producto se serializan.
func (r *StockRepo) Decrease(ctx context.Context, productID string, qty decimal.Decimal) (decimal.Decimal, bool, error) {
	query := `
		UPDATE stock
		SET quantity = quantity - $2, updated_at = $3
		WHERE product_id = $1 AND quantity >= $2
		RETURNING quantity`
	var newQty decimal.Decimal
	err := r.q.QueryRow(ctx, query, productID, qty, time.Now().UTC()).Scan(&newQty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, fmt.Errorf("decrease stock: %w", err)
	}
	return newQty, true, nil
}

// Increase suma delta creando la fila si no existe.
func (r *StockRepo) Increase(ctx context.Context, productID string, delta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		INSERT INTO stock (product_id, quantity, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id) DO UPDATE
		SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
		RETURNING quantity`
	var newQty decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID, delta, time.Now().UTC()).Scan(&newQty); err != nil {
		return decimal.Zero, mapWriteError("increase stock", err)
	}
	return newQty, nil
}
