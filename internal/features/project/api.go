package project

import (
	"go-fieldops/internal/common/api"
	"go-fieldops/internal/config"
	"go-fieldops/internal/features/permission"
	"go-fieldops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProjectApi struct {
	controller *ProjectController
	config     *config.Config
	perms      middleware.PermissionSource
}

func NewProjectApi(controller *ProjectController, config *config.Config, perms middleware.PermissionSource) api.Route {
	return &ProjectApi{
		controller: controller,
		config:     config,
		perms:      perms,
	}
}

func (h *ProjectApi) Setup(app *fiber.App) {
	require := func(flag permission.Flag) fiber.Handler {
		return middleware.RequirePermission(h.perms, h.config.SkipAuth, flag)
	}

	group := app.Group("/api/projects", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Get("/", require(permission.ViewProjects), h.controller.List)
	group.Get("/:id", require(permission.ViewProjects), h.controller.Get)
	group.Post("/", require(permission.CreateProjects), h.controller.Create)
	group.Put("/:id", require(permission.EditProjects), h.controller.Update)
	group.Delete("/:id", require(permission.DeleteProjects), h.controller.Delete)
	group.Post("/:id/launch", require(permission.EditProjects), h.controller.Launch)

	group.Post("/:id/stages", require(permission.EditWorkflow), h.controller.AddStage)
	group.Put("/:id/stages/:stageId", require(permission.EditWorkflow), h.controller.RenameStage)
	group.Delete("/:id/stages/:stageId", require(permission.EditWorkflow), h.controller.DeleteStage)

	group.Post("/:id/stages/:stageId/tasks", require(permission.CreateTasks), h.controller.AddTask)
	group.Put("/:id/stages/:stageId/tasks/:taskId", require(permission.EditTasks), h.controller.UpdateTask)
	group.Delete("/:id/stages/:stageId/tasks/:taskId", require(permission.DeleteTasks), h.controller.DeleteTask)
	group.Post("/:id/stages/:stageId/tasks/:taskId/reports", require(permission.CreateReports), h.controller.AddReport)
	group.Post("/:id/stages/:stageId/tasks/:taskId/comments", require(permission.EditTasks), h.controller.AddComment)

	tasks := app.Group("/api/tasks", middleware.AuthMiddleware(h.config.SkipAuth))
	tasks.Get("/:taskId", require(permission.ViewTasks), h.controller.FindTask)
}
