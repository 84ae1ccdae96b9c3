package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, change_quantity, new_quantity, movement_type, reason, record_id, created_at`

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create agrega una fila al historial y completa m.ID.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_history (product_id, change_quantity, new_quantity, movement_type, reason, record_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		m.ProductID, m.ChangeQuantity, m.NewQuantity, m.MovementType, m.Reason, m.RecordID, m.CreatedAt,
	).Scan(&m.ID)
	if err != nil {
		return mapWriteError("insert stock movement", err)
	}
	return nil
}

// ListByProduct historial de un producto, más reciente primero.
func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_history
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	return r.collect(ctx, query, productID, limit, offset)
}

// ListByRecord movimientos generados por una operación, en orden de aplicación.
func (r *StockMovementRepo) ListByRecord(ctx context.Context, recordID string) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_history WHERE record_id = $1 ORDER BY id`
	return r.collect(ctx, query, recordID)
}

func (r *StockMovementRepo) collect(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.StockMovement])
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return list, nil
}
