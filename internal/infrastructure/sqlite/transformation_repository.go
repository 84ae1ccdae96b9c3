package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

var _ repository.TransformationRepository = (*TransformationRepo)(nil)

// TransformationRepo transformaciones sobre SQLite.
type TransformationRepo struct {
	q Querier
}

func NewTransformationRepository(q Querier) *TransformationRepo {
	return &TransformationRepo{q: q}
}

func (r *TransformationRepo) Create(ctx context.Context, t *entity.Transformation) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO transformations (id, transformation_date, notes) VALUES (?, ?, ?)`, t.ID, t.Date, t.Notes)
	if err != nil {
		return mapWriteError("insert transformation", err)
	}
	return nil
}

func (r *TransformationRepo) CreateItem(ctx context.Context, it *entity.TransformationItem) error {
	const q = `
		INSERT INTO transformation_items (id, transformation_id, product_id, quantity, type)
		VALUES (?, ?, ?, ?, ?)`
	if _, err := r.q.ExecContext(ctx, q, it.ID, it.TransformationID, it.ProductID, it.Quantity, it.Type); err != nil {
		return mapWriteError("insert transformation item", err)
	}
	return nil
}

func (r *TransformationRepo) GetByID(ctx context.Context, id string) (*entity.Transformation, error) {
	var t entity.Transformation
	err := sqlx.GetContext(ctx, r.q, &t,
		`SELECT id, transformation_date, notes FROM transformations WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transformation: %w", err)
	}
	return &t, nil
}

// GetItems devuelve las entradas antes que las salidas, cada grupo en orden de carga.
func (r *TransformationRepo) GetItems(ctx context.Context, transformationID string) ([]*entity.TransformationItem, error) {
	const q = `
		SELECT id, transformation_id, product_id, quantity, type
		FROM transformation_items WHERE transformation_id = ?
		ORDER BY CASE type WHEN 'input' THEN 0 ELSE 1 END, rowid`
	var items []*entity.TransformationItem
	if err := sqlx.SelectContext(ctx, r.q, &items, q, transformationID); err != nil {
		return nil, fmt.Errorf("get transformation items: %w", err)
	}
	return items, nil
}
