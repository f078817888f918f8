package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventario-pos/internal/application/reporting"
)

// DashboardHandler maneja el resumen de la pantalla de inicio.
type DashboardHandler struct {
	uc *reporting.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reporting.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary devuelve conteos, total del día (UTC), últimas 5 ventas y producto más vendido.
// GET /api/dashboard
//
// Para vendedores incluye además seller_sales (sus propias ventas).
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.Dashboard(c.UserContext(), actorFrom(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
