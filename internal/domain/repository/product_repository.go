package repository

import (
	"context"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia del catálogo (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
	ListWithStock(ctx context.Context) ([]*entity.ProductStock, error)
	Search(ctx context.Context, term string, limit int) ([]*entity.ProductStock, error)
	ListLowStock(ctx context.Context, threshold decimal.Decimal) ([]*entity.LowStock, error)
	// ListExpiring productos con vencimiento en [from, to], el más próximo primero.
	ListExpiring(ctx context.Context, from, to time.Time) ([]*entity.Product, error)
}
