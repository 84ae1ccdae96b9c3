package repository

import (
	"context"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// RouteRepository persistencia de hojas de ruta.
type RouteRepository interface {
	Create(ctx context.Context, route *entity.DeliveryRoute) error
	AddSale(ctx context.Context, routeID, saleID string, deliveryOrder int) error
	List(ctx context.Context) ([]*entity.DeliveryRoute, error)
}
