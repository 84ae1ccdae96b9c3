package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/jhoicas/distribuidora-api/internal/infrastructure/sqlite"
)

type ledgerFeatureContext struct {
	ctx      context.Context
	db       *sqlx.DB
	stores   repository.Stores
	ledger   *inventory.Ledger
	products map[string]string // nombre → id
	err      error
}

func (c *ledgerFeatureContext) reset() error {
	if c.db != nil {
		c.db.Close()
	}
	c.ctx = context.Background()
	db, err := sqlite.Open(c.ctx, ":memory:", true)
	if err != nil {
		return err
	}
	c.db = db
	c.stores = sqlite.NewStores(db)
	c.ledger = inventory.NewLedger(sqlite.NewTxRunner(db), c.stores.Products, c.stores.Movements, inventory.Options{
		AuditRecordLines: true,
		Logger:           zerolog.Nop(),
	})
	c.products = map[string]string{}
	c.err = nil
	return nil
}

func (c *ledgerFeatureContext) anEmptyStore() error {
	return c.reset()
}

func (c *ledgerFeatureContext) aProductWithoutStock(name string) error {
	now := time.Now().UTC()
	p := &entity.Product{ID: entity.NewID(), Name: name, Unit: "unidad", CreatedAt: now, UpdatedAt: now}
	if err := c.stores.Products.Create(c.ctx, p); err != nil {
		return err
	}
	c.products[name] = p.ID
	return nil
}

func (c *ledgerFeatureContext) aProductWithStock(name, qty string) error {
	if err := c.aProductWithoutStock(name); err != nil {
		return err
	}
	q, err := decimal.NewFromString(qty)
	if err != nil {
		return err
	}
	if !q.IsPositive() {
		return nil
	}
	_, err = c.ledger.Adjust(c.ctx, inventory.AdjustInput{
		ProductID:    c.products[name],
		Change:       q,
		MovementType: entity.MovementInitialStock,
	})
	return err
}

// productID devuelve el id del producto o el nombre tal cual (producto inexistente).
func (c *ledgerFeatureContext) productID(name string) string {
	if id, ok := c.products[name]; ok {
		return id
	}
	return name
}

func (c *ledgerFeatureContext) iApplyARecordWithLines(table *godog.Table) error {
	var items []item
	for i, row := range table.Rows {
		if i == 0 {
			continue // encabezado
		}
		dir := inventory.Out
		if row.Cells[2].Value == "in" {
			dir = inventory.In
		}
		items = append(items, item{
			productID: c.productID(row.Cells[0].Value),
			qty:       row.Cells[1].Value,
			dir:       dir,
		})
	}
	_, c.err = c.ledger.Apply(c.ctx, newSale(items...))
	return nil
}

func (c *ledgerFeatureContext) iAdjustTheStockOfBy(name, delta string) error {
	d, err := decimal.NewFromString(delta)
	if err != nil {
		return err
	}
	_, c.err = c.ledger.Adjust(c.ctx, inventory.AdjustInput{ProductID: c.productID(name), Change: d})
	return nil
}

func (c *ledgerFeatureContext) theOperationSucceeds() error {
	if c.err != nil {
		return fmt.Errorf("se esperaba éxito pero hubo error: %v", c.err)
	}
	return nil
}

func (c *ledgerFeatureContext) theOperationFailsWithInsufficientStockFor(name string) error {
	var stockErr *domain.InsufficientStockError
	if !errors.As(c.err, &stockErr) {
		return fmt.Errorf("se esperaba stock insuficiente, error: %v", c.err)
	}
	if stockErr.ProductID != c.productID(name) {
		return fmt.Errorf("stock insuficiente para %s, se esperaba %s", stockErr.ProductID, name)
	}
	return nil
}

func (c *ledgerFeatureContext) theOperationFailsAsNotFound() error {
	if !errors.Is(c.err, domain.ErrNotFound) {
		return fmt.Errorf("se esperaba no encontrado, error: %v", c.err)
	}
	return nil
}

func (c *ledgerFeatureContext) theStockOfIs(name, qty string) error {
	want, err := decimal.NewFromString(qty)
	if err != nil {
		return err
	}
	level, err := c.stores.Stock.Get(c.ctx, c.productID(name))
	if err != nil {
		return err
	}
	if !level.Quantity.Equal(want) {
		return fmt.Errorf("stock de %s: %s, se esperaba %s", name, level.Quantity, want)
	}
	return nil
}

func (c *ledgerFeatureContext) recordsAreStored(n int) error {
	list, err := c.stores.Sales.List(c.ctx, 100, 0)
	if err != nil {
		return err
	}
	if len(list) != n {
		return fmt.Errorf("registros guardados: %d, se esperaban %d", len(list), n)
	}
	return nil
}

func (c *ledgerFeatureContext) theHistoryOfHasMovements(name string, n int) error {
	list, err := c.ledger.History(c.ctx, c.productID(name), 0, 0)
	if err != nil {
		return err
	}
	if len(list) != n {
		return fmt.Errorf("movimientos de %s: %d, se esperaban %d", name, len(list), n)
	}
	return nil
}

func InitializeLedgerScenario(ctx *godog.ScenarioContext) {
	tc := &ledgerFeatureContext{}

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc.db != nil {
			tc.db.Close()
			tc.db = nil
		}
		return ctx, nil
	})

	// Given
	ctx.Step(`^an empty store$`, tc.anEmptyStore)
	ctx.Step(`^a product "([^"]*)" with stock (\S+)$`, tc.aProductWithStock)
	ctx.Step(`^a product "([^"]*)" without stock$`, tc.aProductWithoutStock)

	// When
	ctx.Step(`^I apply a record with lines:$`, tc.iApplyARecordWithLines)
	ctx.Step(`^I adjust the stock of "([^"]*)" by (\S+)$`, tc.iAdjustTheStockOfBy)

	// Then
	ctx.Step(`^the operation succeeds$`, tc.theOperationSucceeds)
	ctx.Step(`^the operation fails with insufficient stock for "([^"]*)"$`, tc.theOperationFailsWithInsufficientStockFor)
	ctx.Step(`^the operation fails as not found$`, tc.theOperationFailsAsNotFound)
	ctx.Step(`^the stock of "([^"]*)" is (\S+)$`, tc.theStockOfIs)
	ctx.Step(`^(\d+) records? (?:is|are) stored$`, tc.recordsAreStored)
	ctx.Step(`^the history of "([^"]*)" has (\d+) movements?$`, tc.theHistoryOfHasMovements)
}

func TestLedgerFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeLedgerScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../../../features/stock_ledger.feature"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
