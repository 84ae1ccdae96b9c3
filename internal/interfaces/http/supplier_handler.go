package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/purchasing"
)

// SupplierHandler pagos y deudas con proveedores (protegido, admin).
type SupplierHandler struct {
	uc *purchasing.PaymentUseCase
}

func NewSupplierHandler(uc *purchasing.PaymentUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// RegisterPayment godoc
// @Summary      Registrar pago a proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        supplierId  path  string                            true  "ID del proveedor"
// @Param        body        body  dto.CreateSupplierPaymentRequest  true  "paymentAmount, paymentDate"
// @Success      201  {object}  dto.SupplierPaymentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{supplierId}/payments [post]
func (h *SupplierHandler) RegisterPayment(c *fiber.Ctx) error {
	var in dto.CreateSupplierPaymentRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Register(c.Context(), c.Params("supplierId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListPayments godoc
// @Summary      Pagos a un proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        supplierId  path  string  true  "ID del proveedor"
// @Success      200  {array}  dto.SupplierPaymentResponse
// @Router       /api/suppliers/{supplierId}/payments [get]
func (h *SupplierHandler) ListPayments(c *fiber.Ctx) error {
	out, err := h.uc.ListBySupplier(c.Context(), c.Params("supplierId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Debts godoc
// @Summary      Saldo adeudado por proveedor
// @Description  Compras menos pagos, mayor deuda primero.
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierDebtResponse
// @Router       /api/suppliers/debts [get]
func (h *SupplierHandler) Debts(c *fiber.Ctx) error {
	out, err := h.uc.Debts(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
