package sales_test

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
	"github.com/jhoicas/distribuidora-api/internal/application/sales"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/jhoicas/distribuidora-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/distribuidora-api/pkg/numeric"
)

type env struct {
	ctx    context.Context
	stores repository.Stores
	ledger *inventory.Ledger
	sales  *sales.SaleUseCase
	orders *sales.OrderUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:", true)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stores := sqlite.NewStores(db)
	ledger := inventory.NewLedger(sqlite.NewTxRunner(db), stores.Products, stores.Movements, inventory.Options{
		AuditRecordLines: true,
		Logger:           zerolog.Nop(),
	})
	return &env{
		ctx:    ctx,
		stores: stores,
		ledger: ledger,
		sales:  sales.NewSaleUseCase(ledger, stores.Sales, decimal.RequireFromString("0.05")),
		orders: sales.NewOrderUseCase(ledger, stores.Orders),
	}
}

func (e *env) product(t *testing.T, name string, qty int64) string {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{ID: entity.NewID(), Name: name, Unit: "unidad", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, e.stores.Products.Create(e.ctx, p))
	if qty > 0 {
		_, err := e.ledger.Adjust(e.ctx, inventory.AdjustInput{
			ProductID: p.ID, Change: decimal.NewFromInt(qty), MovementType: entity.MovementInitialStock,
		})
		require.NoError(t, err)
	}
	return p.ID
}

func (e *env) stock(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	level, err := e.stores.Stock.Get(e.ctx, id)
	require.NoError(t, err)
	return level.Quantity
}

func dec(s string) numeric.Decimal {
	return numeric.New(decimal.RequireFromString(s))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

func TestSale_Create_CalculaTotalYComision(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", 10)
	b := e.product(t, "B", 10)

	id, err := e.sales.Create(e.ctx, dto.CreateSaleRequest{
		SalespersonID: "sp-1",
		CustomerID:    "c-1",
		Items: []dto.SaleItemRequest{
			{ProductID: a, Quantity: dec("2"), Price: dec("12.50")},
			{ProductID: b, Quantity: dec("1.5"), Price: dec("10")},
		},
	})
	require.NoError(t, err)

	sale, err := e.sales.Get(e.ctx, id)
	require.NoError(t, err)
	assert.True(t, sale.SaleAmount.Equal(decimal.NewFromInt(40)))
	assert.True(t, sale.CommissionRate.Equal(decimal.RequireFromString("0.05")))
	assert.True(t, sale.CommissionAmount.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, entity.StatusPending, sale.DeliveryStatus)
	assert.Equal(t, entity.StatusPending, sale.CollectionStatus)
	assert.Equal(t, entity.CommissionPending, sale.CommissionPaidStatus)
	require.Len(t, sale.Items, 2)
	assert.True(t, sale.Items[0].Subtotal.Equal(decimal.NewFromInt(25)))

	assert.True(t, e.stock(t, a).Equal(decimal.NewFromInt(8)))
	assert.True(t, e.stock(t, b).Equal(decimal.RequireFromString("8.5")))
}

func TestSale_Create_Validaciones(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", 10)
	item := []dto.SaleItemRequest{{ProductID: a, Quantity: dec("1"), Price: dec("1")}}

	cases := map[string]dto.CreateSaleRequest{
		"sin vendedor":     {CustomerID: "c-1", Items: item},
		"sin cliente":      {SalespersonID: "sp-1", Items: item},
		"sin ítems":        {SalespersonID: "sp-1", CustomerID: "c-1"},
		"tasa mayor a uno": {SalespersonID: "sp-1", CustomerID: "c-1", Items: item, CommissionRate: dec("1.5")},
		"sin precio":       {SalespersonID: "sp-1", CustomerID: "c-1", Items: []dto.SaleItemRequest{{ProductID: a, Quantity: dec("1")}}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := e.sales.Create(e.ctx, in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "error: %v", err)
		})
	}
	assert.True(t, e.stock(t, a).Equal(decimal.NewFromInt(10)))
}

func TestSale_UpdateCommission(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", 10)
	id, err := e.sales.Create(e.ctx, dto.CreateSaleRequest{
		SalespersonID: "sp-1", CustomerID: "c-1",
		Items: []dto.SaleItemRequest{{ProductID: a, Quantity: dec("1"), Price: dec("100")}},
	})
	require.NoError(t, err)

	require.NoError(t, e.sales.UpdateCommission(e.ctx, id, dto.UpdateCommissionRequest{Status: "pagada", PaymentDate: "2026-03-01"}))
	sale, err := e.sales.Get(e.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.CommissionPaid, sale.CommissionPaidStatus)
	require.NotNil(t, sale.CommissionPaymentDate)
	assert.Equal(t, "2026-03-01", sale.CommissionPaymentDate.Format("2006-01-02"))

	// Al volver a pendiente la fecha de pago se borra.
	require.NoError(t, e.sales.UpdateCommission(e.ctx, id, dto.UpdateCommissionRequest{Status: "pendiente", PaymentDate: "2026-03-02"}))
	sale, err = e.sales.Get(e.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.CommissionPending, sale.CommissionPaidStatus)
	assert.Nil(t, sale.CommissionPaymentDate)

	err = e.sales.UpdateCommission(e.ctx, id, dto.UpdateCommissionRequest{Status: "cobrada"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	err = e.sales.UpdateCommission(e.ctx, "no-existe", dto.UpdateCommissionRequest{Status: "pagada"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSale_UpdateDeliveryStatus_NoMueveStock(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", 10)
	id, err := e.sales.Create(e.ctx, dto.CreateSaleRequest{
		SalespersonID: "sp-1", CustomerID: "c-1",
		Items: []dto.SaleItemRequest{{ProductID: a, Quantity: dec("4"), Price: dec("1")}},
	})
	require.NoError(t, err)

	require.NoError(t, e.sales.UpdateDeliveryStatus(e.ctx, id, entity.StatusDelivered))
	sale, err := e.sales.Get(e.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDelivered, sale.DeliveryStatus)
	assert.NotNil(t, sale.DeliveryStatusDate)
	assert.True(t, e.stock(t, a).Equal(decimal.NewFromInt(6)))

	err = e.sales.UpdateDeliveryStatus(e.ctx, "no-existe", entity.StatusDelivered)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSale_List_MasRecientesPrimero(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", 10)
	var ids []string
	for i := 0; i < 3; i++ {
		id, err := e.sales.Create(e.ctx, dto.CreateSaleRequest{
			SalespersonID: "sp-1", CustomerID: "c-1",
			Items: []dto.SaleItemRequest{{ProductID: a, Quantity: dec("1"), Price: dec("1")}},
		})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	list, err := e.sales.List(e.ctx, dto.PageRequest{Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestOrder_Create_ClienteAnonimoYNombreDeProducto(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "Aceite", 5)

	id, err := e.orders.Create(e.ctx, dto.CreateOrderRequest{
		Items:       []dto.OrderItemRequest{{ProductID: a, Quantity: dec("2"), PricePerUnit: dec("3.5")}},
		TotalAmount: dec("7"),
	})
	require.NoError(t, err)

	order, err := e.orders.Get(e.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Cliente Anónimo", order.CustomerName)
	assert.Equal(t, entity.StatusPending, order.Status)
	assert.True(t, order.TotalAmount.Equal(decimal.NewFromInt(7)))
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Aceite", order.Items[0].ProductName)
	assert.True(t, e.stock(t, a).Equal(decimal.NewFromInt(3)))
}

func TestOrder_Create_TotalQueNoCoincide(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", 5)

	_, err := e.orders.Create(e.ctx, dto.CreateOrderRequest{
		CustomerName: "Juan",
		Items:        []dto.OrderItemRequest{{ProductID: a, Quantity: dec("2"), PricePerUnit: dec("3")}},
		TotalAmount:  dec("10"),
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.True(t, e.stock(t, a).Equal(decimal.NewFromInt(5)))

	list, err := e.orders.List(e.ctx, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

// Los pedidos usan la misma guarda que las ventas: no pueden dejar stock negativo.
func TestOrder_Create_SinStock(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", 1)

	_, err := e.orders.Create(e.ctx, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: a, Quantity: dec("2"), PricePerUnit: dec("3")}},
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, e.stock(t, a).Equal(decimal.NewFromInt(1)))
}

func TestOrder_UpdateStatus(t *testing.T) {
	e := newEnv(t)
	a := e.product(t, "A", 5)
	id, err := e.orders.Create(e.ctx, dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: a, Quantity: dec("1"), PricePerUnit: dec("3")}},
	})
	require.NoError(t, err)

	require.NoError(t, e.orders.UpdateStatus(e.ctx, id, "Entregado"))
	order, err := e.orders.Get(e.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Entregado", order.Status)

	assert.True(t, errors.Is(e.orders.UpdateStatus(e.ctx, id, ""), domain.ErrInvalidInput))
	assert.True(t, errors.Is(e.orders.UpdateStatus(e.ctx, "no-existe", "Entregado"), domain.ErrNotFound))
}
