package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

var _ repository.RouteRepository = (*RouteRepo)(nil)

// RouteRepo hojas de ruta sobre SQLite.
type RouteRepo struct {
	q Querier
}

func NewRouteRepository(q Querier) *RouteRepo {
	return &RouteRepo{q: q}
}

func (r *RouteRepo) Create(ctx context.Context, rt *entity.DeliveryRoute) error {
	const q = `
		INSERT INTO delivery_routes (id, route_date, vehicle_id, driver_name, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := r.q.ExecContext(ctx, q, rt.ID, rt.RouteDate, rt.VehicleID, rt.DriverName, rt.Status, rt.CreatedAt); err != nil {
		return mapWriteError("insert route", err)
	}
	return nil
}

func (r *RouteRepo) AddSale(ctx context.Context, routeID, saleID string, deliveryOrder int) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO delivery_route_orders (route_id, sale_id, delivery_order) VALUES (?, ?, ?)`,
		routeID, saleID, deliveryOrder)
	if err != nil {
		return mapWriteError("add sale to route", err)
	}
	return nil
}

func (r *RouteRepo) List(ctx context.Context) ([]*entity.DeliveryRoute, error) {
	const q = `
		SELECT r.id, r.route_date, r.vehicle_id, r.driver_name, r.status, r.created_at,
		       COUNT(o.sale_id) AS order_count
		FROM delivery_routes r
		LEFT JOIN delivery_route_orders o ON o.route_id = r.id
		GROUP BY r.id
		ORDER BY r.route_date DESC, r.created_at DESC`
	var list []*entity.DeliveryRoute
	if err := sqlx.SelectContext(ctx, r.q, &list, q); err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	return list, nil
}
