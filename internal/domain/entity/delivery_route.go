package entity

import "time"

// RouteStatusPlanned estado inicial de una hoja de ruta.
const RouteStatusPlanned = "Planificada"

// DeliveryRoute hoja de ruta que agrupa ventas a entregar.
type DeliveryRoute struct {
	ID         string    `db:"id"`
	RouteDate  time.Time `db:"route_date"`
	VehicleID  string    `db:"vehicle_id"`
	DriverName string    `db:"driver_name"`
	Status     string    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	OrderCount int       `db:"order_count"` // solo lectura (listados)
}
