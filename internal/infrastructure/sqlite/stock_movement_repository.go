package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementColumns = `id, product_id, change_quantity, new_quantity, movement_type, reason, record_id, created_at`

// StockMovementRepo historial de stock sobre SQLite.
type StockMovementRepo struct {
	q Querier
}

func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	const q = `
		INSERT INTO stock_history (product_id, change_quantity, new_quantity, movement_type, reason, record_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.q.ExecContext(ctx, q,
		m.ProductID, m.ChangeQuantity, m.NewQuantity, m.MovementType, m.Reason, m.RecordID, m.CreatedAt)
	if err != nil {
		return mapWriteError("insert stock movement", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	m.ID = id
	return nil
}

func (r *StockMovementRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	q := `SELECT ` + movementColumns + ` FROM stock_history
		WHERE product_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`
	var list []*entity.StockMovement
	if err := sqlx.SelectContext(ctx, r.q, &list, q, productID, limit, offset); err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return list, nil
}

func (r *StockMovementRepo) ListByRecord(ctx context.Context, recordID string) ([]*entity.StockMovement, error) {
	q := `SELECT ` + movementColumns + ` FROM stock_history WHERE record_id = ? ORDER BY id`
	var list []*entity.StockMovement
	if err := sqlx.SelectContext(ctx, r.q, &list, q, recordID); err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	return list, nil
}
