package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/production"
)

// TransformationHandler maneja las transformaciones de productos (protegido, admin).
type TransformationHandler struct {
	uc *production.TransformationUseCase
}

// NewTransformationHandler construye el handler.
func NewTransformationHandler(uc *production.TransformationUseCase) *TransformationHandler {
	return &TransformationHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar transformación
// @Description  Consume las entradas y produce las salidas en una única transacción.
// @Tags         transformations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransformationRequest  true  "notes, inputs, outputs"
// @Success      201   {object}  dto.CreatedResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transformations [post]
func (h *TransformationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransformationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreatedResponse{ID: id, Message: "Transformación registrada."})
}

// GetByID godoc
// @Summary      Obtener transformación
// @Tags         transformations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la transformación"
// @Success      200  {object}  dto.TransformationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transformations/{id} [get]
func (h *TransformationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
