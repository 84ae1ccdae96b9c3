package dto

import (
	"time"

	"github.com/jhoicas/distribuidora-api/pkg/numeric"
	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. InitialStock opcional genera un movimiento initial_stock.
type CreateProductRequest struct {
	Name           string          `json:"name"`
	Price          numeric.Decimal `json:"price"`
	Unit           string          `json:"unit"`
	CostPrice      numeric.Decimal `json:"costPrice"`
	LotNumber      string          `json:"lotNumber"`
	ExpirationDate string          `json:"expirationDate"` // YYYY-MM-DD
	InitialStock   numeric.Decimal `json:"initialStock"`
}

// UpdateProductRequest entrada para actualizar un producto (el stock no se toca aquí).
type UpdateProductRequest struct {
	Name           *string         `json:"name"`
	Price          numeric.Decimal `json:"price"`
	Unit           *string         `json:"unit"`
	CostPrice      numeric.Decimal `json:"costPrice"`
	LotNumber      *string         `json:"lotNumber"`
	ExpirationDate *string         `json:"expirationDate"` // "" borra la fecha
}

// ProductResponse salida de un producto con su stock actual.
type ProductResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	Unit           string          `json:"unit"`
	CostPrice      decimal.Decimal `json:"costPrice"`
	LotNumber      string          `json:"lotNumber"`
	ExpirationDate *time.Time      `json:"expirationDate,omitempty"`
	Stock          decimal.Decimal `json:"stock"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}
