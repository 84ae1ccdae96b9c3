package repository

import (
	"context"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// OrderRepository persistencia de pedidos del carrito (orders y order_items).
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
