package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// errStockChanged la fila cambió entre la lectura y la escritura.
var errStockChanged = errors.New("stock modificado por otra escritura")

// StockRepo tabla stock sobre SQLite.
// Las cantidades se guardan como TEXT y la aritmética se hace con decimal en Go:
// SQLite operaría en coma flotante binaria.
type StockRepo struct {
	q Querier
}

func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func (r *StockRepo) Get(ctx context.Context, productID string) (*entity.StockLevel, error) {
	var s entity.StockLevel
	err := sqlx.GetContext(ctx, r.q, &s,
		`SELECT product_id, quantity, updated_at FROM stock WHERE product_id = ?`, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &entity.StockLevel{ProductID: productID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// current devuelve el texto guardado y su valor; found=false si no hay fila.
func (r *StockRepo) current(ctx context.Context, productID string) (string, decimal.Decimal, bool, error) {
	var raw string
	err := r.q.QueryRowxContext(ctx, `SELECT quantity FROM stock WHERE product_id = ?`, productID).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", decimal.Zero, false, nil
		}
		return "", decimal.Zero, false, err
	}
	qty, err := decimal.NewFromString(raw)
	if err != nil {
		return "", decimal.Zero, false, fmt.Errorf("cantidad guardada inválida %q: %w", raw, err)
	}
	return raw, qty, true, nil
}

// swap escribe newQty solo si la fila conserva el valor leído.
func (r *StockRepo) swap(ctx context.Context, productID, raw string, newQty decimal.Decimal) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE stock SET quantity = ?, updated_at = ? WHERE product_id = ? AND quantity = ?`,
		newQty.String(), time.Now().UTC(), productID, raw)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errStockChanged
	}
	return nil
}

// Decrease resta qty solo si alcanza. ok=false si no hay fila o la cantidad no cubre qty.
func (r *StockRepo) Decrease(ctx context.Context, productID string, qty decimal.Decimal) (decimal.Decimal, bool, error) {
	raw, cur, found, err := r.current(ctx, productID)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("decrease stock: %w", err)
	}
	if !found || cur.LessThan(qty) {
		return decimal.Zero, false, nil
	}
	newQty := cur.Sub(qty)
	if err := r.swap(ctx, productID, raw, newQty); err != nil {
		return decimal.Zero, false, fmt.Errorf("decrease stock: %w", err)
	}
	return newQty, true, nil
}

// Increase suma delta (con signo) creando la fila si no existe.
func (r *StockRepo) Increase(ctx context.Context, productID string, delta decimal.Decimal) (decimal.Decimal, error) {
	raw, cur, found, err := r.current(ctx, productID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("increase stock: %w", err)
	}
	if !found {
		_, err := r.q.ExecContext(ctx,
			`INSERT INTO stock (product_id, quantity, updated_at) VALUES (?, ?, ?)`,
			productID, delta.String(), time.Now().UTC())
		if err != nil {
			return decimal.Zero, mapWriteError("increase stock", err)
		}
		return delta, nil
	}
	newQty := cur.Add(delta)
	if err := r.swap(ctx, productID, raw, newQty); err != nil {
		return decimal.Zero, fmt.Errorf("increase stock: %w", err)
	}
	return newQty, nil
}
