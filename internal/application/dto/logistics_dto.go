package dto

import "time"

// CreateRouteRequest body para POST /api/logistics/routes. OrderIDs son ids de ventas, en orden de entrega.
type CreateRouteRequest struct {
	RouteDate  string   `json:"routeDate"` // YYYY-MM-DD
	VehicleID  string   `json:"vehicleId"`
	DriverName string   `json:"driverName"`
	OrderIDs   []string `json:"orderIds"`
}

type RouteResponse struct {
	ID         string    `json:"id"`
	RouteDate  time.Time `json:"routeDate"`
	VehicleID  string    `json:"vehicleId"`
	DriverName string    `json:"driverName"`
	Status     string    `json:"status"`
	OrderCount int       `json:"orderCount"`
	CreatedAt  time.Time `json:"createdAt"`
}
