package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id, p.name, p.price, p.unit, p.cost_price, p.lot_number, p.expiration_date, p.created_at, p.updated_at`

// ProductRepo catálogo sobre SQLite.
type ProductRepo struct {
	q Querier
}

func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	const q = `
		INSERT INTO products (id, name, price, unit, cost_price, lot_number, expiration_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, q,
		p.ID, p.Name, p.Price, p.Unit, p.CostPrice, p.LotNumber, p.ExpirationDate, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return mapWriteError("insert product", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := sqlx.GetContext(ctx, r.q, &p, `SELECT `+productColumns+` FROM products p WHERE p.id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	const q = `
		UPDATE products
		SET name = ?, price = ?, unit = ?, cost_price = ?, lot_number = ?, expiration_date = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.q.ExecContext(ctx, q,
		p.Name, p.Price, p.Unit, p.CostPrice, p.LotNumber, p.ExpirationDate, p.UpdatedAt, p.ID)
	if err != nil {
		return mapWriteError("update product", err)
	}
	return expectAffected(res, "update product", "producto", p.ID)
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("el producto tiene operaciones registradas y no puede eliminarse")
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return expectAffected(res, "delete product", "producto", id)
}

func (r *ProductRepo) ListWithStock(ctx context.Context) ([]*entity.ProductStock, error) {
	q := `
		SELECT ` + productColumns + `, COALESCE(s.quantity, 0) AS stock
		FROM products p
		LEFT JOIN stock s ON s.product_id = p.id
		ORDER BY p.name, p.id`
	var list []*entity.ProductStock
	if err := sqlx.SelectContext(ctx, r.q, &list, q); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

// Search usa LIKE, que en SQLite no distingue mayúsculas para ASCII.
func (r *ProductRepo) Search(ctx context.Context, term string, limit int) ([]*entity.ProductStock, error) {
	q := `
		SELECT ` + productColumns + `, COALESCE(s.quantity, 0) AS stock
		FROM products p
		LEFT JOIN stock s ON s.product_id = p.id
		WHERE p.name LIKE '%' || ? || '%'
		ORDER BY p.name, p.id
		LIMIT ?`
	var list []*entity.ProductStock
	if err := sqlx.SelectContext(ctx, r.q, &list, q, term, limit); err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return list, nil
}

func (r *ProductRepo) ListExpiring(ctx context.Context, from, to time.Time) ([]*entity.Product, error) {
	q := `SELECT ` + productColumns + ` FROM products p
		WHERE p.expiration_date BETWEEN ? AND ?
		ORDER BY p.expiration_date, p.name`
	var list []*entity.Product
	if err := sqlx.SelectContext(ctx, r.q, &list, q, from, to); err != nil {
		return nil, fmt.Errorf("list expiring products: %w", err)
	}
	return list, nil
}

// ListLowStock filtra y ordena en Go: quantity es TEXT y compararla en SQL sería lexicográfico.
func (r *ProductRepo) ListLowStock(ctx context.Context, threshold decimal.Decimal) ([]*entity.LowStock, error) {
	const q = `
		SELECT s.product_id, p.name, s.quantity
		FROM stock s
		JOIN products p ON p.id = s.product_id`
	var all []*entity.LowStock
	if err := sqlx.SelectContext(ctx, r.q, &all, q); err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	list := make([]*entity.LowStock, 0, len(all))
	for _, l := range all {
		if l.Quantity.IsPositive() && l.Quantity.LessThanOrEqual(threshold) {
			list = append(list, l)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		if c := list[i].Quantity.Cmp(list[j].Quantity); c != 0 {
			return c < 0
		}
		return list[i].ProductName < list[j].ProductName
	})
	return list, nil
}
