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

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, salesperson_id, customer_id, sale_amount, commission_rate, commission_amount,
	sale_date, notes, payment_method, is_paid_to_cashbox, delivery_status, delivery_status_date,
	collection_status, collection_date, commission_paid_status, commission_payment_date`

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `INSERT INTO sales_records (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.SalespersonID, s.CustomerID, s.SaleAmount, s.CommissionRate, s.CommissionAmount,
		s.SaleDate, s.Notes, s.PaymentMethod, s.IsPaidToCashbox, s.DeliveryStatus, s.DeliveryStatusDate,
		s.CollectionStatus, s.CollectionDate, s.CommissionPaidStatus, s.CommissionPaymentDate,
	)
	if err != nil {
		return mapWriteError("insert sale", err)
	}
	return nil
}

// CreateItem inserta una línea de venta.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_record_id, product_id, quantity, price, price_override_reason)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, it.ID, it.SaleID, it.ProductID, it.Quantity, it.Price, it.PriceOverrideReason)
	if err != nil {
		return mapWriteError("insert sale item", err)
	}
	return nil
}

// GetByID devuelve (nil, nil) si la venta no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	rows, err := r.q.Query(ctx, `SELECT `+saleColumns+` FROM sales_records WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}
	s, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[entity.Sale])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

func (r *SaleRepo) GetItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_record_id, product_id, quantity, price, price_override_reason
		FROM sale_items WHERE sale_record_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.SaleItem])
	if err != nil {
		return nil, fmt.Errorf("get sale items: %w", err)
	}
	return items, nil
}

// List ventas de la más reciente a la más antigua.
func (r *SaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales_records ORDER BY sale_date DESC, id LIMIT $1 OFFSET $2`
	return r.collect(ctx, query, limit, offset)
}

// ListPendingDelivery ventas pendientes de entrega que aún no están en ninguna hoja de ruta.
func (r *SaleRepo) ListPendingDelivery(ctx context.Context) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales_records
		WHERE delivery_status = $1
		  AND id NOT IN (SELECT sale_id FROM delivery_route_orders)
		ORDER BY sale_date, id`
	return r.collect(ctx, query, entity.StatusPending)
}

// ListInactiveCustomers clientes cuya última venta es anterior a since.
func (r *SaleRepo) ListInactiveCustomers(ctx context.Context, since time.Time) ([]string, error) {
	query := `
		SELECT customer_id FROM sales_records
		WHERE customer_id <> ''
		GROUP BY customer_id
		HAVING MAX(sale_date) < $1
		ORDER BY customer_id`
	rows, err := r.q.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("list inactive customers: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("list inactive customers: %w", err)
	}
	return ids, nil
}

func (r *SaleRepo) UpdateCommissionStatus(ctx context.Context, id, status string, paymentDate *time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE sales_records SET commission_paid_status = $2, commission_payment_date = $3 WHERE id = $1`,
		id, status, paymentDate,
	)
	if err != nil {
		return fmt.Errorf("update commission status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "venta", ID: id}
	}
	return nil
}

func (r *SaleRepo) UpdateDeliveryStatus(ctx context.Context, id, status string, date time.Time) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE sales_records SET delivery_status = $2, delivery_status_date = $3 WHERE id = $1`,
		id, status, date,
	)
	if err != nil {
		return fmt.Errorf("update delivery status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "venta", ID: id}
	}
	return nil
}

func (r *SaleRepo) collect(ctx context.Context, query string, args ...any) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.Sale])
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return list, nil
}
