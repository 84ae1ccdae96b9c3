package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El Rollback diferido es no-op después de un Commit exitoso.
func (r *TxRunner) Run(ctx context.Context, fn func(s repository.Stores) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewStores(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewStores construye todos los repos sobre el mismo Querier (pool o tx).
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
