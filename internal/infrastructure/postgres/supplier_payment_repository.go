package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.SupplierPaymentRepository = (*SupplierPaymentRepo)(nil)

const paymentColumns = `id, supplier_id, payment_amount, payment_date, payment_method, notes, created_at`

// SupplierPaymentRepo implementación de SupplierPaymentRepository sobre PostgreSQL.
type SupplierPaymentRepo struct {
	q Querier
}

// NewSupplierPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierPaymentRepository(q Querier) *SupplierPaymentRepo {
	return &SupplierPaymentRepo{q: q}
}

func (r *SupplierPaymentRepo) Create(ctx context.Context, p *entity.SupplierPayment) error {
	query := `INSERT INTO supplier_payments (` + paymentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SupplierID, p.Amount, p.PaymentDate, p.PaymentMethod, p.Notes, p.CreatedAt,
	)
	if err != nil {
		return mapWriteError("insert supplier payment", err)
	}
	return nil
}

// ListBySupplier pagos de un proveedor, más recientes primero.
func (r *SupplierPaymentRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.SupplierPayment, error) {
	query := `SELECT ` + paymentColumns + ` FROM supplier_payments
		WHERE supplier_id = $1 ORDER BY payment_date DESC, created_at DESC, id`
	rows, err := r.q.Query(ctx, query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list supplier payments: %w", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.SupplierPayment])
	if err != nil {
		return nil, fmt.Errorf("list supplier payments: %w", err)
	}
	return list, nil
}

func (r *SupplierPaymentRepo) TotalsBySupplier(ctx context.Context) ([]*entity.SupplierTotal, error) {
	const query = `
		SELECT supplier_id, SUM(payment_amount) AS total
		FROM supplier_payments GROUP BY supplier_id ORDER BY supplier_id`
	return collectTotals(ctx, r.q, query)
}

// collectTotals ejecuta una consulta (supplier_id, total). NUMERIC suma exacto en el servidor.
func collectTotals(ctx context.Context, q Querier, query string) ([]*entity.SupplierTotal, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("supplier totals: %w", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.SupplierTotal])
	if err != nil {
		return nil, fmt.Errorf("supplier totals: %w", err)
	}
	return list, nil
}
