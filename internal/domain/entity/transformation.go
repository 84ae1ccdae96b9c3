package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Grupos de líneas de una transformación.
const (
	TransformationInput  = "input"
	TransformationOutput = "output"
)

// Transformation convierte productos de entrada en productos de salida (ej. fraccionado).
type Transformation struct {
	ID    string    `db:"id"`
	Date  time.Time `db:"transformation_date"`
	Notes string    `db:"notes"`
}

// TransformationItem línea de entrada o salida.
type TransformationItem struct {
	ID               string          `db:"id"`
	TransformationID string          `db:"transformation_id"`
	ProductID        string          `db:"product_id"`
	Quantity         decimal.Decimal `db:"quantity"`
	Type             string          `db:"type"` // input | output
}
