package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-pos/internal/application/checkout"
	"github.com/jhoicas/inventario-pos/internal/application/dto"
	domcheckout "github.com/jhoicas/inventario-pos/internal/domain/checkout"
)

// HeaderIdempotencyKey header opcional para reintentos seguros del checkout.
const HeaderIdempotencyKey = "Idempotency-Key"

const maxIdempotencyKeyLen = 128

// CheckoutHandler expone el motor de checkout del POS.
type CheckoutHandler struct {
	uc *checkout.UseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *checkout.UseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// Checkout godoc
// @Summary      Confirmar venta (checkout atómico)
// @Description  Descuenta stock y registra la venta completa, o no hace nada. El vendedor se toma del token.
// @Tags         pos
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string               false  "Clave para reintentos seguros"
// @Param        body             body    dto.CheckoutRequest  true   "Líneas de la canasta"
// @Success      201  {object}  dto.SaleResponse
// @Success      200  {object}  dto.SaleResponse  "Reintento con la misma Idempotency-Key"
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/pos/checkout [post]
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	key := strings.TrimSpace(c.Get(HeaderIdempotencyKey))
	if len(key) > maxIdempotencyKeyLen {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Idempotency-Key demasiado larga"})
	}

	lines := make([]domcheckout.Line, 0, len(in.Items))
	for _, it := range in.Items {
		lines = append(lines, domcheckout.Line{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	sale, replayed, err := h.uc.CheckoutIdempotent(c.UserContext(), GetUserID(c), key, lines)
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusCreated
	if replayed {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(dto.NewSaleResponse(sale, nil))
}
