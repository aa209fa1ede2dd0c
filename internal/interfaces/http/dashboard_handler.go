package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/Tienda-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc   *appanalytics.DashboardUseCase
	errs errorWriter
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, errs errorWriter) *DashboardHandler {
	return &DashboardHandler{uc: uc, errs: errs}
}

// GetStats godoc
// @Summary      Resumen del dashboard
// @Description  Ventas completadas de hoy, ayer, el mes en curso y el anterior con su variación; conteos del catálogo y contactos.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardStatsDTO
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext())
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(stats)
}
