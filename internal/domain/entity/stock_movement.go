package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock registrados en stock_history.
const (
	MovementManualAdjustment     = "manual_adjustment"
	MovementInitialStock         = "initial_stock"
	MovementShrinkage            = "shrinkage" // merma
	MovementSale                 = "sale"
	MovementOrder                = "order"
	MovementPurchase             = "purchase"
	MovementTransformationInput  = "transformation_input"
	MovementTransformationOutput = "transformation_output"
)

// IsValidMovementType indica si t es un tipo de movimiento conocido.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementManualAdjustment, MovementInitialStock, MovementShrinkage,
		MovementSale, MovementOrder, MovementPurchase,
		MovementTransformationInput, MovementTransformationOutput:
		return true
	}
	return false
}

// StockMovement es una fila inmutable del historial: un cambio de cantidad y su causa.
type StockMovement struct {
	ID             int64           `db:"id"`
	ProductID      string          `db:"product_id"`
	ChangeQuantity decimal.Decimal `db:"change_quantity"` // delta con signo
	NewQuantity    decimal.Decimal `db:"new_quantity"`    // cantidad resultante
	MovementType   string          `db:"movement_type"`
	Reason         string          `db:"reason"`
	RecordID       *string         `db:"record_id"` // cabecera de negocio que lo originó, si existe
	CreatedAt      time.Time       `db:"created_at"`
}
