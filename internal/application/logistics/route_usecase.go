package logistics

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/distribuidora-api/internal/application/sales"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

// RouteUseCase hojas de ruta de reparto. No mueve stock: el stock se descontó al vender.
type RouteUseCase struct {
	tx     inventory.TxRunner
	sales  repository.SaleRepository
	routes repository.RouteRepository
}

func NewRouteUseCase(tx inventory.TxRunner, sales repository.SaleRepository, routes repository.RouteRepository) *RouteUseCase {
	return &RouteUseCase{tx: tx, sales: sales, routes: routes}
}

// PendingOrders ventas pendientes de entrega que todavía no tienen ruta.
func (uc *RouteUseCase) PendingOrders(ctx context.Context) ([]dto.SaleResponse, error) {
	list, err := uc.sales.ListPendingDelivery(ctx)
	if err != nil {
		return nil, err
	}
	return sales.ToSaleList(list), nil
}

// Create arma la hoja de ruta: vincula cada venta en el orden recibido y la pasa a "En preparación".
// Todo o nada: una venta inexistente o ya asignada deshace la ruta completa.
func (uc *RouteUseCase) Create(ctx context.Context, in dto.CreateRouteRequest) (string, error) {
	if strings.TrimSpace(in.VehicleID) == "" || len(in.OrderIDs) == 0 {
		return "", domain.Invalid("la fecha, el vehículo y al menos un pedido son requeridos")
	}
	routeDate, err := dto.ParseDate(in.RouteDate)
	if err != nil {
		return "", domain.Invalid("%s", err.Error())
	}
	if routeDate == nil {
		return "", domain.Invalid("la fecha, el vehículo y al menos un pedido son requeridos")
	}
	now := time.Now().UTC()
	route := &entity.DeliveryRoute{
		ID:         entity.NewID(),
		RouteDate:  *routeDate,
		VehicleID:  in.VehicleID,
		DriverName: in.DriverName,
		Status:     entity.RouteStatusPlanned,
		CreatedAt:  now,
	}
	err = uc.tx.Run(ctx, func(s repository.Stores) error {
		if err := s.Routes.Create(ctx, route); err != nil {
			return err
		}
		for i, saleID := range in.OrderIDs {
			sale, err := s.Sales.GetByID(ctx, saleID)
			if err != nil {
				return err
			}
			if sale == nil {
				return &domain.NotFoundError{Entity: "venta", ID: saleID}
			}
			if err := s.Routes.AddSale(ctx, route.ID, saleID, i+1); err != nil {
				return err
			}
			if err := s.Sales.UpdateDeliveryStatus(ctx, saleID, entity.StatusInPreparation, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return route.ID, nil
}

func (uc *RouteUseCase) List(ctx context.Context) ([]dto.RouteResponse, error) {
	list, err := uc.routes.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RouteResponse, 0, len(list))
	for _, r := range list {
		out = append(out, dto.RouteResponse{
			ID:         r.ID,
			RouteDate:  r.RouteDate,
			VehicleID:  r.VehicleID,
			DriverName: r.DriverName,
			Status:     r.Status,
			OrderCount: r.OrderCount,
			CreatedAt:  r.CreatedAt,
		})
	}
	return out, nil
}
