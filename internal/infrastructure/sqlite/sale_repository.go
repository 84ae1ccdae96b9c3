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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, salesperson_id, customer_id, sale_amount, commission_rate, commission_amount,
	sale_date, notes, payment_method, is_paid_to_cashbox, delivery_status, delivery_status_date,
	collection_status, collection_date, commission_paid_status, commission_payment_date`

// SaleRepo ventas sobre SQLite.
type SaleRepo struct {
	q Querier
}

func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	q := `INSERT INTO sales_records (` + saleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, q,
		s.ID, s.SalespersonID, s.CustomerID, s.SaleAmount, s.CommissionRate, s.CommissionAmount,
		s.SaleDate, s.Notes, s.PaymentMethod, s.IsPaidToCashbox, s.DeliveryStatus, s.DeliveryStatusDate,
		s.CollectionStatus, s.CollectionDate, s.CommissionPaidStatus, s.CommissionPaymentDate)
	if err != nil {
		return mapWriteError("insert sale", err)
	}
	return nil
}

func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	const q = `
		INSERT INTO sale_items (id, sale_record_id, product_id, quantity, price, price_override_reason)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, q, it.ID, it.SaleID, it.ProductID, it.Quantity, it.Price, it.PriceOverrideReason)
	if err != nil {
		return mapWriteError("insert sale item", err)
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	var s entity.Sale
	err := sqlx.GetContext(ctx, r.q, &s, `SELECT `+saleColumns+` FROM sales_records WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

func (r *SaleRepo) GetItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	const q = `
		SELECT id, sale_record_id, product_id, quantity, price, price_override_reason
		FROM sale_items WHERE sale_record_id = ? ORDER BY rowid`
	var items []*entity.SaleItem
	if err := sqlx.SelectContext(ctx, r.q, &items, q, saleID); err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	return items, nil
}

func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	q := `SELECT ` + saleColumns + ` FROM sales_records ORDER BY sale_date DESC, id LIMIT ? OFFSET ?`
	var list []*entity.Sale
	if err := sqlx.SelectContext(ctx, r.q, &list, q, limit, offset); err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return list, nil
}

func (r *SaleRepo) ListPendingDelivery(ctx context.Context) ([]*entity.Sale, error) {
	q := `SELECT ` + saleColumns + ` FROM sales_records
		WHERE delivery_status = ?
		  AND id NOT IN (SELECT sale_id FROM delivery_route_orders)
		ORDER BY sale_date, id`
	var list []*entity.Sale
	if err := sqlx.SelectContext(ctx, r.q, &list, q, entity.StatusPending); err != nil {
		return nil, fmt.Errorf("list pending sales: %w", err)
	}
	return list, nil
}

func (r *SaleRepo) ListInactiveCustomers(ctx context.Context, since time.Time) ([]string, error) {
	const q = `
		SELECT customer_id FROM sales_records
		WHERE customer_id <> ''
		GROUP BY customer_id
		HAVING MAX(sale_date) < ?
		ORDER BY customer_id`
	var ids []string
	if err := sqlx.SelectContext(ctx, r.q, &ids, q, since); err != nil {
		return nil, fmt.Errorf("list inactive customers: %w", err)
	}
	return ids, nil
}

func (r *SaleRepo) UpdateCommissionStatus(ctx context.Context, id, status string, paymentDate *time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE sales_records SET commission_paid_status = ?, commission_payment_date = ? WHERE id = ?`,
		status, paymentDate, id)
	if err != nil {
		return fmt.Errorf("update commission status: %w", err)
	}
	return expectAffected(res, "update commission status", "venta", id)
}

func (r *SaleRepo) UpdateDeliveryStatus(ctx context.Context, id, status string, date time.Time) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE sales_records SET delivery_status = ?, delivery_status_date = ? WHERE id = ?`,
		status, date, id)
	if err != nil {
		return fmt.Errorf("update delivery status: %w", err)
	}
	return expectAffected(res, "update delivery status", "venta", id)
}
