package purchasing_test

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
	"github.com/jhoicas/distribuidora-api/internal/application/purchasing"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/jhoicas/distribuidora-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/distribuidora-api/pkg/numeric"
)

func setup(t *testing.T) (*purchasing.PurchaseUseCase, *inventory.Ledger, repository.Stores, context.Context) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:", true)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stores := sqlite.NewStores(db)
	ledger := inventory.NewLedger(sqlite.NewTxRunner(db), stores.Products, stores.Movements, inventory.Options{Logger: zerolog.Nop()})
	return purchasing.NewPurchaseUseCase(ledger, stores.Purchases), ledger, stores, ctx
}

func newProduct(t *testing.T, ctx context.Context, s repository.Stores, name string) string {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{ID: entity.NewID(), Name: name, Unit: "caja", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, s.Products.Create(ctx, p))
	return p.ID
}

func n(s string) numeric.Decimal { return numeric.New(decimal.RequireFromString(s)) }

func TestPurchase_Create_SumaStock(t *testing.T) {
	uc, ledger, s, ctx := setup(t)
	a := newProduct(t, ctx, s, "Fideos")
	b := newProduct(t, ctx, s, "Tomate")

	id, err := uc.Create(ctx, dto.CreatePurchaseRequest{
		SupplierID:     "prov-1",
		PurchaseDate:   "2026-02-01",
		InvoiceNumber:  "B-12",
		PaymentDueDate: "2026-03-01",
		Items: []dto.PurchaseItemRequest{
			{ProductID: a, Quantity: n("10"), CostPrice: n("1.5")},
			{ProductID: b, Quantity: n("4"), CostPrice: n("2.25")},
		},
	})
	require.NoError(t, err)

	p, err := uc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "prov-1", p.SupplierID)
	assert.Equal(t, entity.StatusPending, p.PaymentStatus)
	assert.True(t, p.TotalAmount.Equal(decimal.NewFromInt(24)))
	assert.Equal(t, "2026-02-01", p.PurchaseDate.Format("2006-01-02"))
	require.NotNil(t, p.PaymentDueDate)
	require.Len(t, p.Items, 2)

	level, err := s.Stock.Get(ctx, a)
	require.NoError(t, err)
	assert.True(t, level.Quantity.Equal(decimal.NewFromInt(10)))

	// Sin auditoría de operaciones las compras no dejan movimientos.
	history, err := ledger.History(ctx, a, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPurchase_Create_ProductoInexistente(t *testing.T) {
	uc, _, s, ctx := setup(t)
	a := newProduct(t, ctx, s, "Fideos")

	_, err := uc.Create(ctx, dto.CreatePurchaseRequest{
		SupplierID: "prov-1",
		Items: []dto.PurchaseItemRequest{
			{ProductID: a, Quantity: n("10"), CostPrice: n("1")},
			{ProductID: "no-existe", Quantity: n("1"), CostPrice: n("1")},
		},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	level, err := s.Stock.Get(ctx, a)
	require.NoError(t, err)
	assert.True(t, level.Quantity.IsZero())

	list, err := uc.ListBySupplier(ctx, "prov-1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPurchase_Create_Validaciones(t *testing.T) {
	uc, _, s, ctx := setup(t)
	a := newProduct(t, ctx, s, "Fideos")
	items := []dto.PurchaseItemRequest{{ProductID: a, Quantity: n("1"), CostPrice: n("1")}}

	cases := map[string]dto.CreatePurchaseRequest{
		"sin proveedor":  {Items: items},
		"sin ítems":      {SupplierID: "prov-1"},
		"fecha inválida": {SupplierID: "prov-1", PurchaseDate: "ayer", Items: items},
		"costo negativo": {SupplierID: "prov-1", Items: []dto.PurchaseItemRequest{{ProductID: a, Quantity: n("1"), CostPrice: n("-1")}}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(ctx, in)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput), "error: %v", err)
		})
	}
}

func TestPurchase_UpdatePaymentStatus(t *testing.T) {
	uc, _, s, ctx := setup(t)
	a := newProduct(t, ctx, s, "Fideos")
	id, err := uc.Create(ctx, dto.CreatePurchaseRequest{
		SupplierID: "prov-1",
		Items:      []dto.PurchaseItemRequest{{ProductID: a, Quantity: n("3"), CostPrice: n("2")}},
	})
	require.NoError(t, err)

	require.NoError(t, uc.UpdatePaymentStatus(ctx, id, "Pagado"))
	list, err := uc.ListBySupplier(ctx, "prov-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pagado", list[0].PaymentStatus)

	assert.True(t, errors.Is(uc.UpdatePaymentStatus(ctx, "no-existe", "Pagado"), domain.ErrNotFound))
	assert.True(t, errors.Is(uc.UpdatePaymentStatus(ctx, id, " "), domain.ErrInvalidInput))
}
