package logistics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/distribuidora-api/internal/application/logistics"
	"github.com/jhoicas/distribuidora-api/internal/application/sales"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/distribuidora-api/pkg/numeric"
)

type routeEnv struct {
	ctx    context.Context
	sales  *sales.SaleUseCase
	routes *logistics.RouteUseCase
	saleOf func(t *testing.T) string
}

func newRouteEnv(t *testing.T) *routeEnv {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:", true)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stores := sqlite.NewStores(db)
	tx := sqlite.NewTxRunner(db)
	ledger := inventory.NewLedger(tx, stores.Products, stores.Movements, inventory.Options{Logger: zerolog.Nop()})

	now := time.Now().UTC()
	p := &entity.Product{ID: entity.NewID(), Name: "Yerba", Unit: "kg", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, stores.Products.Create(ctx, p))
	_, err = ledger.Adjust(ctx, inventory.AdjustInput{ProductID: p.ID, Change: decimal.NewFromInt(100), MovementType: entity.MovementInitialStock})
	require.NoError(t, err)

	env := &routeEnv{
		ctx:    ctx,
		sales:  sales.NewSaleUseCase(ledger, stores.Sales, decimal.Zero),
		routes: logistics.NewRouteUseCase(tx, stores.Sales, stores.Routes),
	}
	env.saleOf = func(t *testing.T) string {
		id, err := env.sales.Create(ctx, dto.CreateSaleRequest{
			SalespersonID: "sp-1", CustomerID: "c-1",
			Items: []dto.SaleItemRequest{{
				ProductID: p.ID,
				Quantity:  numeric.New(decimal.NewFromInt(1)),
				Price:     numeric.New(decimal.NewFromInt(10)),
			}},
		})
		require.NoError(t, err)
		return id
	}
	return env
}

func TestRoute_Create_AsignaVentasYLasSacaDePendientes(t *testing.T) {
	e := newRouteEnv(t)
	s1, s2, s3 := e.saleOf(t), e.saleOf(t), e.saleOf(t)

	pending, err := e.routes.PendingOrders(e.ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 3)

	id, err := e.routes.Create(e.ctx, dto.CreateRouteRequest{
		RouteDate: "2026-05-10", VehicleID: "AB123CD", DriverName: "Marta", OrderIDs: []string{s2, s1},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	for _, saleID := range []string{s1, s2} {
		sale, err := e.sales.Get(e.ctx, saleID)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusInPreparation, sale.DeliveryStatus)
	}

	pending, err = e.routes.PendingOrders(e.ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, s3, pending[0].ID)

	routes, err := e.routes.List(e.ctx)
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Equal(t, entity.RouteStatusPlanned, routes[0].Status)
	assert.Equal(t, 2, routes[0].OrderCount)
	assert.Equal(t, "2026-05-10", routes[0].RouteDate.Format("2006-01-02"))
}

func TestRoute_Create_VentaInexistenteDeshaceTodo(t *testing.T) {
	e := newRouteEnv(t)
	s1 := e.saleOf(t)

	_, err := e.routes.Create(e.ctx, dto.CreateRouteRequest{
		RouteDate: "2026-05-10", VehicleID: "AB123CD", OrderIDs: []string{s1, "no-existe"},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	routes, err := e.routes.List(e.ctx)
	require.NoError(t, err)
	assert.Empty(t, routes)

	sale, err := e.sales.Get(e.ctx, s1)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusPending, sale.DeliveryStatus)
}

func TestRoute_Create_VentaYaAsignada(t *testing.T) {
	e := newRouteEnv(t)
	s1 := e.saleOf(t)

	_, err := e.routes.Create(e.ctx, dto.CreateRouteRequest{RouteDate: "2026-05-10", VehicleID: "V1", OrderIDs: []string{s1}})
	require.NoError(t, err)

	_, err = e.routes.Create(e.ctx, dto.CreateRouteRequest{RouteDate: "2026-05-11", VehicleID: "V2", OrderIDs: []string{s1}})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	routes, err := e.routes.List(e.ctx)
	require.NoError(t, err)
	assert.Len(t, routes, 1)
}

func TestRoute_Create_Validaciones(t *testing.T) {
	e := newRouteEnv(t)
	s1 := e.saleOf(t)

	cases := map[string]dto.CreateRouteRequest{
		"sin fecha":      {VehicleID: "V1", OrderIDs: []string{s1}},
		"fecha inválida": {RouteDate: "10/05/2026", VehicleID: "V1", OrderIDs: []string{s1}},
		"sin vehículo":   {RouteDate: "2026-05-10", OrderIDs: []string{s1}},
		"sin pedidos":    {RouteDate: "2026-05-10", VehicleID: "V1"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := e.routes.Create(e.ctx, in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "error: %v", err)
		})
	}
}
