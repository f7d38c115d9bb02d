package dashboard

import (
	"go-fieldops/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

type DashboardController struct {
	service DashboardService
}

func NewDashboardController(service DashboardService) *DashboardController {
	return &DashboardController{
		service: service,
	}
}

// Stats godoc
// @Summary      Dashboard statistics
// @Description  Project, task, employee and stock counters
// @Tags         dashboard
// @Produce      json
// @Success      200 {object} dashboard.DashboardStats
// @Router       /api/dashboard/stats [get]
func (c *DashboardController) Stats(ctx *fiber.Ctx) error {
	stats, err := c.service.Stats(ctx.Context())
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(stats)
}
