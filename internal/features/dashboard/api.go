package dashboard

import (
	"go-fieldops/internal/common/api"
	"go-fieldops/internal/config"
	"go-fieldops/internal/features/permission"
	"go-fieldops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type DashboardApi struct {
	controller *DashboardController
	config     *config.Config
	perms      middleware.PermissionSource
}

func NewDashboardApi(controller *DashboardController, config *config.Config, perms middleware.PermissionSource) api.Route {
	return &DashboardApi{
		controller: controller,
		config:     config,
		perms:      perms,
	}
}

func (h *DashboardApi) Setup(app *fiber.App) {
	group := app.Group("/api/dashboard",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.RequirePermission(h.perms, h.config.SkipAuth, permission.ViewDashboard))

	group.Get("/stats", h.controller.Stats)
}
