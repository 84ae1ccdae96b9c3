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
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `p.id, p.name, p.price, p.unit, p.cost_price, p.lot_number, p.expiration_date, p.created_at, p.updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, price, unit, cost_price, lot_number, expiration_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Price, p.Unit, p.CostPrice, p.LotNumber, p.ExpirationDate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products p WHERE p.id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	p, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[entity.Product])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los datos descriptivos del producto (nunca el stock).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, price = $3, unit = $4, cost_price = $5, lot_number = $6, expiration_date = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Name, p.Price, p.Unit, p.CostPrice, p.LotNumber, p.ExpirationDate, p.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("update product", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "producto", ID: p.ID}
	}
	return nil
}

// Delete elimina el producto; stock e historial caen en cascada.
// Si el producto figura en alguna operación se rechaza.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.Invalid("el producto tiene operaciones registradas y no puede eliminarse")
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "producto", ID: id}
	}
	return nil
}

// ListWithStock lista el catálogo con su stock (0 si no hay fila en stock).
func (r *ProductRepo) ListWithStock(ctx context.Context) ([]*entity.ProductStock, error) {
	query := `
		SELECT ` + productColumns + `, COALESCE(s.quantity, 0) AS stock
		FROM products p
		LEFT JOIN stock s ON s.product_id = p.id
		ORDER BY p.name, p.id`
	return r.collectWithStock(ctx, "list products", query)
}

// Search busca por nombre (sin distinguir mayúsculas).
func (r *ProductRepo) Search(ctx context.Context, term string, limit int) ([]*entity.ProductStock, error) {
	query := `
		SELECT ` + productColumns + `, COALESCE(s.quantity, 0) AS stock
		FROM products p
		LEFT JOIN stock s ON s.product_id = p.id
		WHERE p.name ILIKE '%' || $1 || '%'
		ORDER BY p.name, p.id
		LIMIT $2`
	return r.collectWithStock(ctx, "search products", query, term, limit)
}

// ListLowStock productos con 0 < cantidad <= threshold, los más críticos primero.
func (r *ProductRepo) ListLowStock(ctx context.Context, threshold decimal.Decimal) ([]*entity.LowStock, error) {
	query := `
		SELECT s.product_id, p.name, s.quantity
		FROM stock s
		JOIN products p ON p.id = s.product_id
		WHERE s.quantity > 0 AND s.quantity <= $1
		ORDER BY s.quantity, p.name`
	rows, err := r.q.Query(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.LowStock])
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return list, nil
}

// ListExpiring productos que vencen entre from y to.
func (r *ProductRepo) ListExpiring(ctx context.Context, from, to time.Time) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p
		WHERE p.expiration_date BETWEEN $1 AND $2
		ORDER BY p.expiration_date, p.name`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list expiring products: %w", err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.Product])
	if err != nil {
		return nil, fmt.Errorf("list expiring products: %w", err)
	}
	return list, nil
}

func (r *ProductRepo) collectWithStock(ctx context.Context, op, query string, args ...any) ([]*entity.ProductStock, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	list, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entity.ProductStock])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}
