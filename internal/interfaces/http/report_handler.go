package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-pos/internal/application/dto"
	"github.com/jhoicas/inventario-pos/internal/application/reporting"
)

// ReportHandler reportes de ventas por día y por vendedor (solo admin).
type ReportHandler struct {
	uc *reporting.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Daily godoc
// @Summary      Ventas por día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (por defecto hace 30 días)"
// @Param        end_date    query  string  false  "YYYY-MM-DD inclusive (por defecto hoy)"
// @Success      200  {object}  dto.DailyReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/daily [get]
func (h *ReportHandler) Daily(c *fiber.Ctx) error {
	var in dto.ReportRangeRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.Daily(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BySeller godoc
// @Summary      Ventas por vendedor
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (por defecto hace 30 días)"
// @Param        end_date    query  string  false  "YYYY-MM-DD inclusive (por defecto hoy)"
// @Success      200  {object}  dto.SellerReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sellers [get]
func (h *ReportHandler) BySeller(c *fiber.Ctx) error {
	var in dto.ReportRangeRequest
	if err := c.QueryParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.BySeller(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
