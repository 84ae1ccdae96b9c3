package repository

import (
	"context"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// TransformationRepository persistencia de transformaciones (transformations y transformation_items).
type TransformationRepository interface {
	Create(ctx context.Context, t *entity.Transformation) error
	CreateItem(ctx context.Context, item *entity.TransformationItem) error
	GetByID(ctx context.Context, id string) (*entity.Transformation, error)
	GetItems(ctx context.Context, transformationID string) ([]*entity.TransformationItem, error)
}
