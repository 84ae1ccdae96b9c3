package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, customer_name, order_date, status, total_amount`

// OrderRepo pedidos sobre SQLite.
type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	q := `INSERT INTO orders (` + orderColumns + `) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.q.ExecContext(ctx, q, o.ID, o.CustomerName, o.OrderDate, o.Status, o.TotalAmount); err != nil {
		return mapWriteError("insert order", err)
	}
	return nil
}

func (r *OrderRepo) CreateItem(ctx context.Context, it *entity.OrderItem) error {
	const q = `
		INSERT INTO order_items (id, order_id, product_id, product_name, quantity, price_per_unit)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, q, it.ID, it.OrderID, it.ProductID, it.ProductName, it.Quantity, it.PricePerUnit)
	if err != nil {
		return mapWriteError("insert order item", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	err := sqlx.GetContext(ctx, r.q, &o, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

func (r *OrderRepo) GetItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	const q = `
		SELECT id, order_id, product_id, product_name, quantity, price_per_unit
		FROM order_items WHERE order_id = ? ORDER BY rowid`
	var items []*entity.OrderItem
	if err := sqlx.SelectContext(ctx, r.q, &items, q, orderID); err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}
	return items, nil
}

func (r *OrderRepo) List(ctx context.Context, limit, offset int) ([]*entity.Order, error) {
	q := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_date DESC, id LIMIT ? OFFSET ?`
	var list []*entity.Order
	if err := sqlx.SelectContext(ctx, r.q, &list, q, limit, offset); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return list, nil
}

func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.q.ExecContext(ctx, `UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return expectAffected(res, "update order status", "pedido", id)
}
