package dto

import (
	"time"

	"github.com/jhoicas/distribuidora-api/pkg/numeric"
	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para PUT /api/stock/:productId.
type AdjustStockRequest struct {
	ChangeQuantity numeric.Decimal `json:"changeQuantity"`
	MovementType   string          `json:"movementType"`
	Reason         string          `json:"reason"`
	AllowNegative  bool            `json:"allowNegative"`
}

// StockMovementResponse fila del historial de stock.
type StockMovementResponse struct {
	ID             int64           `json:"id"`
	ProductID      string          `json:"productId"`
	ChangeQuantity decimal.Decimal `json:"changeQuantity"`
	NewQuantity    decimal.Decimal `json:"newQuantity"`
	MovementType   string          `json:"movementType"`
	Reason         string          `json:"reason"`
	RecordID       *string         `json:"recordId,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// AdjustStockResponse confirmación de un ajuste con el movimiento registrado.
type AdjustStockResponse struct {
	Message  string                `json:"message"`
	Movement StockMovementResponse `json:"movement"`
}

// NotificationResponse aviso del panel (bajo stock, vencimientos, pagos).
type NotificationResponse struct {
	Type    string `json:"type"` // warning | danger | info
	Message string `json:"message"`
}
