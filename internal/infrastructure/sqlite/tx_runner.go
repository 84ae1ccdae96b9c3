package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sqlx.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sqlx.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Con una sola conexión, fn no debe usar repos construidos sobre el *sqlx.DB.
func (r *TxRunner) Run(ctx context.Context, fn func(s repository.Stores) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewStores(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewStores construye todos los repos sobre el mismo Querier (db o tx).
func NewStores(q Querier) repository.Stores {
	return repository.Stores{
		Products:        NewProductRepository(q),
		Stock:           NewStockRepository(q),
		Movements:       NewStockMovementRepository(q),
		Sales:           NewSaleRepository(q),
		Purchases:       NewPurchaseRepository(q),
		Payments:        NewSupplierPaymentRepository(q),
		Orders:          NewOrderRepository(q),
		Transformations: NewTransformationRepository(q),
		Routes:          NewRouteRepository(q),
	}
}
