package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.TransformationRepository = (*TransformationRepo)(nil)

// TransformationRepo implementación de TransformationRepository sobre PostgreSQL.
type TransformationRepo struct {
	q Querier
}

// NewTransformationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransformationRepository(q Querier) *TransformationRepo {
	return &TransformationRepo{q: q}
}

func (r *TransformationRepo) Create(ctx context.Context, t *entity.Transformation) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO transformations (id, transformation_date, notes) VALUES ($1, $2, $3)`,
		t.ID, t.Date, t.Notes,
	)
	if err != nil {
		return mapWriteError("insert transformation", err)
	}
	return nil
}

func (r *TransformationRepo) CreateItem(ctx context.Context, it *entity.TransformationItem) error {
	query := `
		INSERT INTO transformation_items (id, transformation_id, product_id, quantity, type)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, it.ID, it.TransformationID, it.ProductID, it.Quantity, it.Type); err != nil {
		return mapWriteError("insert transformation item", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si no existe.
func (r *TransformationRepo) GetByID(ctx context.Context, id string) (*entity.Transformation, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, transformation_date, notes FROM transformations WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get transformation: %w", err)
	}
	t, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[entity.Transformation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transformation: %w", err)
	}
	return t, nil
}

// GetItems devuelve primero las entradas y luego las salidas.
func (r *TransformationRepo) GetItems(ctx context.Context, transformationID string) ([]*entity.TransformationItem, error) {
	query := `
		SELECT id, transformation_id, product_id, quantity, type
		FROM transformation_items WHERE transformation_id = $1
		ORDER BY CASE type WHEN 'input' THEN 0 ELSE 1 END, id`
	rows, err := r.q.Query(ctx, query, transformationID)
	if err != nil {
		return nil, fmt.Errorf("get transformation items: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.TransformationItem])
	if err != nil {
		return nil, fmt.Errorf("get transformation items: %w", err)
	}
	return items, nil
}
