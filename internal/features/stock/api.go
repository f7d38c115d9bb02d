package stock

import (
	"go-fieldops/internal/common/api"
	"go-fieldops/internal/config"
	"go-fieldops/internal/features/permission"
	"go-fieldops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type StockApi struct {
	controller *StockController
	config     *config.Config
	perms      middleware.PermissionSource
}

func NewStockApi(controller *StockController, config *config.Config, perms middleware.PermissionSource) api.Route {
	return &StockApi{
		controller: controller,
		config:     config,
		perms:      perms,
	}
}

func (h *StockApi) Setup(app *fiber.App) {
	group := app.Group("/api/stock", middleware.AuthMiddleware(h.config.SkipAuth))

	require := func(flag permission.Flag) fiber.Handler {
		return middleware.RequirePermission(h.perms, h.config.SkipAuth, flag)
	}

	group.Get("/", require(permission.ViewStock), h.controller.List)
	group.Get("/low", require(permission.ViewStock), h.controller.Low)
	group.Get("/:id", require(permission.ViewStock), h.controller.Get)
	group.Post("/", require(permission.AddStock), h.controller.Add)
	group.Put("/:id", require(permission.EditStock), h.controller.Update)
	group.Post("/:id/adjust", require(permission.EditStock), h.controller.Adjust)
	group.Delete("/:id", require(permission.DeleteStock), h.controller.Delete)
}
