package sqlite

import (
	"context"
	"fmt"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

var _ repository.SupplierPaymentRepository = (*SupplierPaymentRepo)(nil)

const paymentColumns = `id, supplier_id, payment_amount, payment_date, payment_method, notes, created_at`

// SupplierPaymentRepo pagos a proveedores sobre SQLite.
type SupplierPaymentRepo struct {
	q Querier
}

func NewSupplierPaymentRepository(q Querier) *SupplierPaymentRepo {
	return &SupplierPaymentRepo{q: q}
}

func (r *SupplierPaymentRepo) Create(ctx context.Context, p *entity.SupplierPayment) error {
	q := `INSERT INTO supplier_payments (` + paymentColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, q,
		p.ID, p.SupplierID, p.Amount, p.PaymentDate, p.PaymentMethod, p.Notes, p.CreatedAt)
	if err != nil {
		return mapWriteError("insert supplier payment", err)
	}
	return nil
}

func (r *SupplierPaymentRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.SupplierPayment, error) {
	q := `SELECT ` + paymentColumns + ` FROM supplier_payments
		WHERE supplier_id = ? ORDER BY payment_date DESC, created_at DESC, id`
	var list []*entity.SupplierPayment
	if err := sqlx.SelectContext(ctx, r.q, &list, q, supplierID); err != nil {
		return nil, fmt.Errorf("list supplier payments: %w", err)
	}
	return list, nil
}

func (r *SupplierPaymentRepo) TotalsBySupplier(ctx context.Context) ([]*entity.SupplierTotal, error) {
	const q = `SELECT supplier_id, payment_amount AS total FROM supplier_payments ORDER BY supplier_id`
	list, err := sumBySupplier(ctx, r.q, q)
	if err != nil {
		return nil, fmt.Errorf("total supplier payments: %w", err)
	}
	return list, nil
}

// sumBySupplier acumula en Go filas (supplier_id, total) ordenadas por proveedor.
// SUM sobre TEXT pasaría por coma flotante.
func sumBySupplier(ctx context.Context, q Querier, query string) ([]*entity.SupplierTotal, error) {
	var rows []*entity.SupplierTotal
	if err := sqlx.SelectContext(ctx, q, &rows, query); err != nil {
		return nil, err
	}
	out := make([]*entity.SupplierTotal, 0, len(rows))
	for _, row := range rows {
		if n := len(out); n > 0 && out[n-1].SupplierID == row.SupplierID {
			out[n-1].Total = out[n-1].Total.Add(row.Total)
			continue
		}
		out = append(out, row)
	}
	return out, nil
}
