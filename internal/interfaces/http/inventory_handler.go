package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/inventory"
	"github.com/jhoicas/distribuidora-api/internal/application/notifications"
	"github.com/jhoicas/distribuidora-api/internal/domain/entity"
)

// InventoryHandler maneja ajustes manuales de stock y avisos del panel (protegido).
type InventoryHandler struct {
	ledger        *inventory.Ledger
	notifications *notifications.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.Ledger, notif *notifications.UseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, notifications: notif}
}

// AdjustStock godoc
// @Summary      Ajuste manual de stock
// @Description  Aplica un delta con signo. Si el resultado queda negativo responde INSUFFICIENT_STOCK,
//
//	salvo allowNegative=true con la opción habilitada en el servidor.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                  true  "ID del producto"
// @Param        body       body  dto.AdjustStockRequest  true  "changeQuantity, movementType, reason"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/{productId} [put]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if !in.ChangeQuantity.Set {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "changeQuantity es requerido"})
	}
	mov, err := h.ledger.Adjust(c.Context(), inventory.AdjustInput{
		ProductID:     c.Params("productId"),
		Change:        in.ChangeQuantity.Decimal,
		MovementType:  in.MovementType,
		Reason:        in.Reason,
		AllowNegative: in.AllowNegative,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.AdjustStockResponse{
		Message:  "Stock actualizado.",
		Movement: toMovementResponse(mov),
	})
}

// Notifications godoc
// @Summary      Avisos del panel
// @Description  Bajo stock, lotes próximos a vencer y pagos a proveedores próximos.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *InventoryHandler) Notifications(c *fiber.Ctx) error {
	out, err := h.notifications.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func toMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		ChangeQuantity: m.ChangeQuantity,
		NewQuantity:    m.NewQuantity,
		MovementType:   m.MovementType,
		Reason:         m.Reason,
		RecordID:       m.RecordID,
		CreatedAt:      m.CreatedAt,
	}
}
