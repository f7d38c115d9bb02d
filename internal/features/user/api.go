package user

import (
	"go-fieldops/internal/common/api"
	"go-fieldops/internal/config"
	"go-fieldops/internal/features/permission"
	"go-fieldops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserApi struct {
	controller *UserController
	config     *config.Config
	perms      middleware.PermissionSource
}

func NewUserApi(controller *UserController, config *config.Config, perms middleware.PermissionSource) api.Route {
	return &UserApi{
		controller: controller,
		config:     config,
		perms:      perms,
	}
}

func (h *UserApi) Setup(app *fiber.App) {
	group := app.Group("/api/users", middleware.AuthMiddleware(h.config.SkipAuth))

	require := func(flag permission.Flag) fiber.Handler {
		return middleware.RequirePermission(h.perms, h.config.SkipAuth, flag)
	}

	group.Get("/", require(permission.ViewAdminPanel), h.controller.List)
	group.Get("/employees", require(permission.ViewEmployees), h.controller.Employees)
	group.Get("/non-developers", require(permission.ViewAdminPanel), h.controller.NonDevelopers)
	group.Get("/:id", require(permission.ViewEmployees), h.controller.Get)
	group.Post("/", require(permission.ManageEmployees), h.controller.Create)
	group.Put("/:id", require(permission.ManageEmployees), h.controller.Update)
	group.Post("/:id/toggle-active", require(permission.ManageEmployees), h.controller.ToggleActive)
	group.Delete("/:id", require(permission.ManageEmployees), h.controller.Delete)
	group.Put("/:id/permissions", require(permission.ManagePermissions), h.controller.UpdatePermissions)
}
