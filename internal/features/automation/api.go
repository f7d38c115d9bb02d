package automation

import (
	"go-fieldops/internal/common/api"
	"go-fieldops/internal/config"
	"go-fieldops/internal/features/permission"
	"go-fieldops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AutomationApi struct {
	controller *AutomationController
	config     *config.Config
	perms      middleware.PermissionSource
}

func NewAutomationApi(controller *AutomationController, config *config.Config, perms middleware.PermissionSource) api.Route {
	return &AutomationApi{
		controller: controller,
		config:     config,
		perms:      perms,
	}
}

func (h *AutomationApi) Setup(app *fiber.App) {
	group := app.Group("/api/automation/rules",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.RequirePermission(h.perms, h.config.SkipAuth, permission.ViewAdminPanel))

	group.Get("/", h.controller.List)
	group.Get("/:id", h.controller.Get)
	group.Post("/", h.controller.Create)
	group.Put("/:id", h.controller.Update)
	group.Delete("/:id", h.controller.Delete)
}
