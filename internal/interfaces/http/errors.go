package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/domain"
)

// respondError traduce errores de dominio a dto.ErrorResponse con su código HTTP.
func respondError(c *fiber.Ctx, err error) error {
	status, body := mapError(err)
	return c.Status(status).JSON(body)
}

func mapError(err error) (int, dto.ErrorResponse) {
	var (
		qtyErr   *domain.InvalidQuantityError
		unavErr  *domain.ProductUnavailableError
		stockErr *domain.InsufficientStockError
	)
	switch {
	case errors.Is(err, domain.ErrEmptyBasket):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "EMPTY_BASKET", Message: domain.ErrEmptyBasket.Error()}
	case errors.As(err, &qtyErr):
		return fiber.StatusBadRequest, dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: domain.ErrInvalidQuantity.Error(),
			Details: map[string]any{"product_id": qtyErr.ProductID, "quantity": qtyErr.Quantity},
		}
	case errors.As(err, &unavErr):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{
			Code:    "PRODUCT_UNAVAILABLE",
			Message: domain.ErrProductUnavailable.Error(),
			Details: map[string]any{"product_id": unavErr.ProductID},
		}
	case errors.As(err, &stockErr):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:    "INSUFFICIENT_STOCK",
			Message: domain.ErrInsufficientStock.Error(),
			Details: map[string]any{
				"product_id": stockErr.ProductID,
				"requested":  stockErr.Requested,
				"available":  stockErr.Available,
			},
		}
	case errors.Is(err, domain.ErrCheckoutInProgress):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CHECKOUT_IN_PROGRESS", Message: err.Error()}
	case errors.Is(err, domain.ErrCommitFailure):
		// La causa se registra en el log del caso de uso, no se expone al cliente.
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "COMMIT_FAILURE", Message: domain.ErrCommitFailure.Error()}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "UNAUTHORIZED", Message: domain.ErrUnauthorized.Error()}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: domain.ErrForbidden.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrNotFound.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: domain.ErrDuplicate.Error()}
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "CONFLICT", Message: err.Error()}
	default:
		return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
	}
}
