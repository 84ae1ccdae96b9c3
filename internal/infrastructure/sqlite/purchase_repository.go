package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, supplier_id, purchase_date, total_amount, invoice_number, notes, payment_due_date, payment_status`

// PurchaseRepo compras sobre SQLite.
type PurchaseRepo struct {
	q Querier
}

func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	q := `INSERT INTO supplier_purchases (` + purchaseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, q,
		p.ID, p.SupplierID, p.PurchaseDate, p.TotalAmount, p.InvoiceNumber, p.Notes, p.PaymentDueDate, p.PaymentStatus)
	if err != nil {
		return mapWriteError("insert purchase", err)
	}
	return nil
}

func (r *PurchaseRepo) CreateItem(ctx context.Context, it *entity.PurchaseItem) error {
	const q = `
		INSERT INTO supplier_purchase_items (id, purchase_id, product_id, quantity, cost_price)
		VALUES (?, ?, ?, ?, ?)`
	if _, err := r.q.ExecContext(ctx, q, it.ID, it.PurchaseID, it.ProductID, it.Quantity, it.CostPrice); err != nil {
		return mapWriteError("insert purchase item", err)
	}
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	var p entity.Purchase
	err := sqlx.GetContext(ctx, r.q, &p, `SELECT `+purchaseColumns+` FROM supplier_purchases WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

func (r *PurchaseRepo) GetItems(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error) {
	const q = `
		SELECT id, purchase_id, product_id, quantity, cost_price
		FROM supplier_purchase_items WHERE purchase_id = ? ORDER BY rowid`
	var items []*entity.PurchaseItem
	if err := sqlx.SelectContext(ctx, r.q, &items, q, purchaseID); err != nil {
		return nil, fmt.Errorf("get purchase items: %w", err)
	}
	return items, nil
}

func (r *PurchaseRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Purchase, error) {
	q := `SELECT ` + purchaseColumns + ` FROM supplier_purchases
		WHERE supplier_id = ? ORDER BY purchase_date DESC, id`
	var list []*entity.Purchase
	if err := sqlx.SelectContext(ctx, r.q, &list, q, supplierID); err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return list, nil
}

func (r *PurchaseRepo) ListDuePayments(ctx context.Context, from, to time.Time) ([]*entity.Purchase, error) {
	q := `SELECT ` + purchaseColumns + ` FROM supplier_purchases
		WHERE payment_status = ? AND payment_due_date BETWEEN ? AND ?
		ORDER BY payment_due_date, id`
	var list []*entity.Purchase
	if err := sqlx.SelectContext(ctx, r.q, &list, q, entity.StatusPending, from, to); err != nil {
		return nil, fmt.Errorf("list due payments: %w", err)
	}
	return list, nil
}

func (r *PurchaseRepo) UpdatePaymentStatus(ctx context.Context, id, status string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE supplier_purchases SET payment_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("update payment status: %w", err)
	}
	return expectAffected(res, "update payment status", "compra", id)
}

func (r *PurchaseRepo) TotalsBySupplier(ctx context.Context) ([]*entity.SupplierTotal, error) {
	const q = `SELECT supplier_id, total_amount AS total FROM supplier_purchases ORDER BY supplier_id`
	list, err := sumBySupplier(ctx, r.q, q)
	if err != nil {
		return nil, fmt.Errorf("total purchases: %w", err)
	}
	return list, nil
}
