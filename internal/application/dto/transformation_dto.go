package dto

import (
	"time"

	"github.com/jhoicas/distribuidora-api/pkg/numeric"
	"github.com/shopspring/decimal"
)

// TransformationLineRequest producto y cantidad de una entrada o salida.
type TransformationLineRequest struct {
	ProductID string          `json:"productId"`
	Quantity  numeric.Decimal `json:"quantity"`
}

// CreateTransformationRequest body para POST /api/transformations.
type CreateTransformationRequest struct {
	Notes   string                      `json:"notes"`
	Inputs  []TransformationLineRequest `json:"inputs"`
	Outputs []TransformationLineRequest `json:"outputs"`
}

type TransformationItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type TransformationResponse struct {
	ID      string                       `json:"id"`
	Date    time.Time                    `json:"date"`
	Notes   string                       `json:"notes"`
	Inputs  []TransformationItemResponse `json:"inputs"`
	Outputs []TransformationItemResponse `json:"outputs"`
}
