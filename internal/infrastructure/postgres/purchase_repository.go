package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, supplier_id, purchase_date, total_amount, invoice_number, notes, payment_due_date, payment_status`

// PurchaseRepo implementación de PurchaseRepository sobre PostgreSQL.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `INSERT INTO supplier_purchases (` + purchaseColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SupplierID, p.PurchaseDate, p.TotalAmount, p.InvoiceNumber, p.Notes, p.PaymentDueDate, p.PaymentStatus,
	)
	if err != nil {
		return mapWriteError("insert purchase", err)
	}
	return nil
}

func (r *PurchaseRepo) CreateItem(ctx context.Context, it *entity.PurchaseItem) error {
	query := `
		INSERT INTO supplier_purchase_items (id, purchase_id, product_id, quantity, cost_price)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, it.ID, it.PurchaseID, it.ProductID, it.Quantity, it.CostPrice); err != nil {
		return mapWriteError("insert purchase item", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si la compra no existe.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	rows, err := r.q.Query(ctx, `SELECT `+purchaseColumns+` FROM supplier_purchases WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	p, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[entity.Purchase])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return p, nil
}

func (r *PurchaseRepo) GetItems(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error) {
	query := `
		SELECT id, purchase_id, product_id, quantity, cost_price
		FROM supplier_purchase_items WHERE purchase_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("get purchase items: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.PurchaseItem])
	if err != nil {
		return nil, fmt.Errorf("get purchase items: %w", err)
	}
	return items, nil
}

// ListBySupplier compras de un proveedor, más recientes primero.
func (r *PurchaseRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM supplier_purchases
		WHERE supplier_id = $1 ORDER BY purchase_date DESC, id`
	rows, err := r.q.Query(ctx, query, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.Purchase])
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return list, nil
}

// ListDuePayments compras pendientes de pago que vencen entre from y to.
func (r *PurchaseRepo) ListDuePayments(ctx context.Context, from, to time.Time) ([]*entity.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM supplier_purchases
		WHERE payment_status = $1 AND payment_due_date BETWEEN $2 AND $3
		ORDER BY payment_due_date, id`
	rows, err := r.q.Query(ctx, query, entity.StatusPending, from, to)
	if err != nil {
		return nil, fmt.Errorf("list due payments: %w", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.Purchase])
	if err != nil {
		return nil, fmt.Errorf("list due payments: %w", err)
	}
	return list, nil
}

func (r *PurchaseRepo) UpdatePaymentStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE supplier_purchases SET payment_status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "compra", ID: id}
	}
	return nil
}

func (r *PurchaseRepo) TotalsBySupplier(ctx context.Context) ([]*entity.SupplierTotal, error) {
	const query = `
		SELECT supplier_id, SUM(total_amount) AS total
		FROM supplier_purchases GROUP BY supplier_id ORDER BY supplier_id`
	return collectTotals(ctx, r.q, query)
}
