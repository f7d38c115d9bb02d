package export

import (
	"go-fieldops/internal/common/api"
	"go-fieldops/internal/config"
	"go-fieldops/internal/features/permission"
	"go-fieldops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ExportApi struct {
	controller *ExportController
	config     *config.Config
	perms      middleware.PermissionSource
}

func NewExportApi(controller *ExportController, config *config.Config, perms middleware.PermissionSource) api.Route {
	return &ExportApi{
		controller: controller,
		config:     config,
		perms:      perms,
	}
}

func (h *ExportApi) Setup(app *fiber.App) {
	group := app.Group("/api/export", middleware.AuthMiddleware(h.config.SkipAuth))

	require := func(flag permission.Flag) fiber.Handler {
		return middleware.RequirePermission(h.perms, h.config.SkipAuth, flag)
	}

	group.Get("/stock", require(permission.ViewStock), h.controller.Stock)
	group.Get("/projects/:id/tasks", require(permission.ViewReports), h.controller.ProjectTasks)
}
