package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/logistics"
)

// LogisticsHandler maneja las hojas de ruta de reparto (protegido).
type LogisticsHandler struct {
	uc *logistics.RouteUseCase
}

// NewLogisticsHandler construye el handler.
func NewLogisticsHandler(uc *logistics.RouteUseCase) *LogisticsHandler {
	return &LogisticsHandler{uc: uc}
}

// PendingOrders godoc
// @Summary      Ventas pendientes de entrega sin ruta asignada
// @Tags         logistics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SaleResponse
// @Router       /api/logistics/pending-orders [get]
func (h *LogisticsHandler) PendingOrders(c *fiber.Ctx) error {
	out, err := h.uc.PendingOrders(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateRoute godoc
// @Summary      Crear hoja de ruta
// @Description  Vincula las ventas en el orden recibido y las pasa a "En preparación". Todo o nada.
// @Tags         logistics
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRouteRequest  true  "routeDate, vehicleId, driverName, orderIds"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/logistics/routes [post]
func (h *LogisticsHandler) CreateRoute(c *fiber.Ctx) error {
	var in dto.CreateRouteRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: id, Message: "Hoja de ruta creada."})
}

// ListRoutes godoc
// @Summary      Listar hojas de ruta
// @Tags         logistics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.RouteResponse
// @Router       /api/logistics/routes [get]
func (h *LogisticsHandler) ListRoutes(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
