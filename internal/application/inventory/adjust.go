package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/distribuidora-api/internal/domain"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
	"github.com/jhoicas/distribuidora-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// AdjustInput entrada para un ajuste manual de stock (correcciones, mermas, stock inicial).
type AdjustInput struct {
	ProductID    string
	Change       decimal.Decimal // delta con signo
	MovementType string          // por defecto manual_adjustment
	Reason       string
	// AllowNegative permite dejar la cantidad bajo cero. Solo se acepta si
	// Options.AllowNegativeOverride está activo.
	AllowNegative bool
}

// Adjust aplica un delta sobre la fila de stock (creándola si no existe) y agrega exactamente
// una fila en stock_history con la cantidad resultante. Sin cabecera de negocio.
func (l *Ledger) Adjust(ctx context.Context, in AdjustInput) (*entity.StockMovement, error) {
	in, err := l.normalizeAdjust(in)
	if err != nil {
		return nil, err
	}
	var mov *entity.StockMovement
	err = l.tx.Run(ctx, func(s repository.Stores) error {
		var err error
		mov, err = l.AdjustInTx(ctx, s, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	l.opts.Logger.Debug().
		Str("product_id", mov.ProductID).
		Str("change", mov.ChangeQuantity.String()).
		Str("new_quantity", mov.NewQuantity.String()).
		Str("type", mov.MovementType).
		Msg("ajuste de stock confirmado")
	return mov, nil
}

// AdjustInTx ejecuta el ajuste con repos de una transacción abierta por el caller
// (ej. alta de producto con stock inicial).
func (l *Ledger) AdjustInTx(ctx context.Context, s repository.Stores, in AdjustInput) (*entity.StockMovement, error) {
	in, err := l.normalizeAdjust(in)
	if err != nil {
		return nil, err
	}
	product, err := s.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Entity: "producto", ID: in.ProductID}
	}

	var newQty decimal.Decimal
	if in.Change.IsNegative() && !in.AllowNegative {
		q, ok, err := s.Stock.Decrease(ctx, in.ProductID, in.Change.Neg())
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, insufficient(ctx, s.Stock, in.ProductID, product.Name, in.Change.Neg())
		}
		newQty = q
	} else {
		q, err := s.Stock.Increase(ctx, in.ProductID, in.Change)
		if err != nil {
			return nil, err
		}
		newQty = q
	}

	mov := &entity.StockMovement{
		ProductID:      in.ProductID,
		ChangeQuantity: in.Change,
		NewQuantity:    newQty,
		MovementType:   in.MovementType,
		Reason:         in.Reason,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

func (l *Ledger) normalizeAdjust(in AdjustInput) (AdjustInput, error) {
	if in.ProductID == "" {
		return in, domain.Invalid("productId es requerido")
	}
	if in.Change.IsZero() {
		return in, domain.Invalid("la cantidad a ajustar no puede ser cero")
	}
	if in.MovementType == "" {
		in.MovementType = entity.MovementManualAdjustment
	}
	switch in.MovementType {
	case entity.MovementManualAdjustment:
	case entity.MovementShrinkage:
		if !in.Change.IsNegative() {
			return in, domain.Invalid("una merma debe ser negativa")
		}
	case entity.MovementInitialStock:
		if !in.Change.IsPositive() {
			return in, domain.Invalid("el stock inicial debe ser positivo")
		}
	default:
		return in, domain.Invalid("tipo de movimiento %q no permitido en ajustes", in.MovementType)
	}
	if in.AllowNegative && !l.opts.AllowNegativeOverride {
		return in, domain.Invalid("los ajustes que dejan stock negativo están deshabilitados")
	}
	return in, nil
}
