package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Direction indica si una línea resta (venta, pedido, insumo) o suma (compra, producto resultante) stock.
type Direction int

const (
	Out Direction = iota + 1
	In
)

func (d Direction) String() string {
	switch d {
	case Out:
		return "out"
	case In:
		return "in"
	}
	return "unknown"
}

// Line es el efecto sobre el stock de una línea de un registro de negocio.
type Line struct {
	ProductID    string
	Quantity     decimal.Decimal // siempre > 0; el signo lo da Direction
	Direction    Direction
	MovementType string
	Reason       string
	// Audit fuerza la fila en stock_history aunque Options.AuditRecordLines esté apagado.
	Audit bool
}

// Record es la cabecera de negocio (venta, compra, pedido, transformación) que posee las líneas.
// El ledger llama InsertHeader una vez y luego InsertLine(i) antes de mover el stock de Lines()[i].
type Record interface {
	Lines() []Line
	InsertHeader(ctx context.Context, s repository.Stores) (string, error)
	InsertLine(ctx context.Context, s repository.Stores, headerID string, i int) error
}

// Options configura el ledger.
type Options struct {
	// AuditRecordLines registra en stock_history cada línea de ventas, compras y pedidos.
	AuditRecordLines bool
	// AllowNegativeOverride habilita el flag AllowNegative en ajustes manuales.
	AllowNegativeOverride bool
	Logger                zerolog.Logger
}

// Ledger es el dueño de la cantidad en stock de cada producto. Toda escritura sobre la tabla
// stock pasa por aquí, siempre dentro de una transacción junto con su registro de negocio.
type Ledger struct {
	tx        TxRunner
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	opts      Options
}

// NewLedger construye el ledger. products y movements son repos fuera de tx (solo lectura).
func NewLedger(
	tx TxRunner,
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	opts Options,
) *Ledger {
	return &Ledger{tx: tx, products: products, movements: movements, opts: opts}
}

// Apply inserta la cabecera, cada línea y su movimiento de stock en una sola transacción.
// Si alguna resta no tiene stock suficiente, nada de lo anterior persiste.
func (l *Ledger) Apply(ctx context.Context, rec Record) (string, error) {
	if err := validateLines(rec.Lines()); err != nil {
		return "", err
	}
	var id string
	err := l.tx.Run(ctx, func(s repository.Stores) error {
		var err error
		id, err = l.ApplyInTx(ctx, s, rec)
		return err
	})
	if err != nil {
		return "", err
	}
	l.opts.Logger.Debug().
		Str("record_id", id).
		Int("lines", len(rec.Lines())).
		Msg("mutación de stock confirmada")
	return id, nil
}

// ApplyInTx ejecuta la mutación con repos de una transacción abierta por el caller.
// Las líneas se aplican en orden: dos líneas del mismo producto se validan una tras otra
// contra la misma fila, de modo que la segunda ve el efecto de la primera.
func (l *Ledger) ApplyInTx(ctx context.Context, s repository.Stores, rec Record) (string, error) {
	lines := rec.Lines()
	if err := validateLines(lines); err != nil {
		return "", err
	}
	names, err := resolveProducts(ctx, s.Products, lines)
	if err != nil {
		return "", err
	}
	headerID, err := rec.InsertHeader(ctx, s)
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	for i, line := range lines {
		if err := rec.InsertLine(ctx, s, headerID, i); err != nil {
			return "", err
		}
		if err := l.move(ctx, s, line, names[line.ProductID], headerID, now); err != nil {
			return "", err
		}
	}
	return headerID, nil
}

// move aplica una línea sobre la fila de stock y, si corresponde, la registra en el historial.
func (l *Ledger) move(ctx context.Context, s repository.Stores, line Line, name, recordID string, now time.Time) error {
	var newQty, change decimal.Decimal
	switch line.Direction {
	case Out:
		q, ok, err := s.Stock.Decrease(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return insufficient(ctx, s.Stock, line.ProductID, name, line.Quantity)
		}
		newQty, change = q, line.Quantity.Neg()
	case In:
		q, err := s.Stock.Increase(ctx, line.ProductID, line.Quantity)
		if err != nil {
			return err
		}
		newQty, change = q, line.Quantity
	default:
		return domain.Invalid("dirección de movimiento inválida")
	}

	if !line.Audit && !l.opts.AuditRecordLines {
		return nil
	}
	ref := recordID
	return s.Movements.Create(ctx, &entity.StockMovement{
		ProductID:      line.ProductID,
		ChangeQuantity: change,
		NewQuantity:    newQty,
		MovementType:   line.MovementType,
		Reason:         line.Reason,
		RecordID:       &ref,
		CreatedAt:      now,
	})
}

// History devuelve el historial de movimientos de un producto, del más reciente al más antiguo.
func (l *Ledger) History(ctx context.Context, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	product, err := l.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Entity: "producto", ID: productID}
	}
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return l.movements.ListByProduct(ctx, productID, limit, offset)
}

func validateLines(lines []Line) error {
	if len(lines) == 0 {
		return domain.Invalid("se requiere al menos un ítem")
	}
	for i, line := range lines {
		if line.ProductID == "" {
			return domain.Invalid("ítem %d: productId es requerido", i+1)
		}
		if !line.Quantity.IsPositive() {
			return domain.Invalid("ítem %d: la cantidad debe ser mayor a cero", i+1)
		}
	}
	return nil
}

// resolveProducts verifica que cada producto exista y devuelve sus nombres para los mensajes de error.
func resolveProducts(ctx context.Context, products repository.ProductRepository, lines []Line) (map[string]string, error) {
	names := make(map[string]string, len(lines))
	for _, line := range lines {
		if _, seen := names[line.ProductID]; seen {
			continue
		}
		p, err := products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, &domain.NotFoundError{Entity: "producto", ID: line.ProductID}
		}
		names[line.ProductID] = p.Name
	}
	return names, nil
}

func insufficient(ctx context.Context, stock repository.StockRepository, productID, name string, requested decimal.Decimal) error {
	level, err := stock.Get(ctx, productID)
	if err != nil {
		return err
	}
	return &domain.InsufficientStockError{
		ProductID:   productID,
		ProductName: name,
		Requested:   requested,
		Available:   level.Quantity,
	}
}
