package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.RouteRepository = (*RouteRepo)(nil)

// RouteRepo implementación de RouteRepository sobre PostgreSQL.
type RouteRepo struct {
	q Querier
}

// NewRouteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRouteRepository(q Querier) *RouteRepo {
	return &RouteRepo{q: q}
}

func (r *RouteRepo) Create(ctx context.Context, rt *entity.DeliveryRoute) error {
	query := `
		INSERT INTO delivery_routes (id, route_date, vehicle_id, driver_name, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, rt.ID, rt.RouteDate, rt.VehicleID, rt.DriverName, rt.Status, rt.CreatedAt)
	if err != nil {
		return mapWriteError("insert route", err)
	}
	return nil
}

// AddSale vincula una venta a la hoja de ruta. Una venta solo puede estar en una ruta.
func (r *RouteRepo) AddSale(ctx context.Context, routeID, saleID string, deliveryOrder int) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO delivery_route_orders (route_id, sale_id, delivery_order) VALUES ($1, $2, $3)`,
		routeID, saleID, deliveryOrder,
	)
	if err != nil {
		return mapWriteError("add sale to route", err)
	}
	return nil
}

// List hojas de ruta con la cantidad de ventas asignadas, más recientes primero.
func (r *RouteRepo) List(ctx context.Context) ([]*entity.DeliveryRoute, error) {
	query := `
		SELECT r.id, r.route_date, r.vehicle_id, r.driver_name, r.status, r.created_at,
		       COUNT(o.sale_id)::int AS order_count
		FROM delivery_routes r
		LEFT JOIN delivery_route_orders o ON o.route_id = r.id
		GROUP BY r.id
		ORDER BY r.route_date DESC, r.created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.DeliveryRoute])
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	return list, nil
}
