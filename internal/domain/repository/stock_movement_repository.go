package repository

import (
	"context"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// StockMovementRepository historial append-only de stock (stock_history).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByProduct ordena del más reciente al más antiguo.
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error)
	ListByRecord(ctx context.Context, recordID string) ([]*entity.StockMovement, error)
}
