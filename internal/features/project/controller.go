package project

import (
	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProjectController struct {
	service ProjectService
}

func NewProjectController(service ProjectService) *ProjectController {
	return &ProjectController{
		service: service,
	}
}

func (c *ProjectController) actorID(ctx *fiber.Ctx) string {
	if claims, ok := middleware.Claims(ctx); ok {
		return claims.UserID
	}
	return ""
}

// List godoc
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Router       /api/projects [get]
func (c *ProjectController) List(ctx *fiber.Ctx) error {
	projects, err := c.service.ListProjects(ctx.Context())
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": projects})
}

// Get godoc
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} project.Project
// @Failure      404 {string} string "Not Found"
// @Router       /api/projects/{id} [get]
func (c *ProjectController) Get(ctx *fiber.Ctx) error {
	p, err := c.service.GetProject(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(p)
}

// Create godoc
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        input body project.CreateProjectInput true "Project Data"
// @Success      201 {object} project.Project
// @Failure      400 {string} string "Invalid request"
// @Router       /api/projects [post]
func (c *ProjectController) Create(ctx *fiber.Ctx) error {
	var input CreateProjectInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	p, err := c.service.CreateProject(ctx.Context(), input)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(p)
}

// Update godoc
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        input body project.UpdateProjectInput true "Fields to update"
// @Success      200 {object} project.Project
// @Router       /api/projects/{id} [put]
func (c *ProjectController) Update(ctx *fiber.Ctx) error {
	var input UpdateProjectInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	p, err := c.service.UpdateProject(ctx.Context(), ctx.Params("id"), input)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(p)
}

// Delete godoc
// @Summary      Delete a project
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/projects/{id} [delete]
func (c *ProjectController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.DeleteProject(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

// Launch godoc
// @Summary      Launch a project
// @Description  Set the project in progress and announce it
// @Tags         projects
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} project.Project
// @Router       /api/projects/{id}/launch [post]
func (c *ProjectController) Launch(ctx *fiber.Ctx) error {
	p, err := c.service.LaunchProject(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(p)
}

// AddStage godoc
// @Summary      Add a workflow stage
// @Tags         workflow
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      201 {object} project.Project
// @Router       /api/projects/{id}/stages [post]
func (c *ProjectController) AddStage(ctx *fiber.Ctx) error {
	var input struct {
		Name string `json:"name"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	p, err := c.service.AddStage(ctx.Context(), ctx.Params("id"), input.Name)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(p)
}

// RenameStage godoc
// @Summary      Rename a workflow stage
// @Tags         workflow
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        stageId path string true "Stage ID"
// @Success      200 {object} project.Project
// @Router       /api/projects/{id}/stages/{stageId} [put]
func (c *ProjectController) RenameStage(ctx *fiber.Ctx) error {
	var input struct {
		Name string `json:"name"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	p, err := c.service.RenameStage(ctx.Context(), ctx.Params("id"), ctx.Params("stageId"), input.Name)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(p)
}

// DeleteStage godoc
// @Summary      Delete a workflow stage
// @Description  Remove a stage and all its tasks
// @Tags         workflow
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        stageId path string true "Stage ID"
// @Success      200 {object} project.Project
// @Router       /api/projects/{id}/stages/{stageId} [delete]
func (c *ProjectController) DeleteStage(ctx *fiber.Ctx) error {
	p, err := c.service.DeleteStage(ctx.Context(), ctx.Params("id"), ctx.Params("stageId"))
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(p)
}

// AddTask godoc
// @Summary      Add a task to a stage
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        stageId path string true "Stage ID"
// @Param        input body project.AddTaskInput true "Task Data"
// @Success      201 {object} project.Task
// @Router       /api/projects/{id}/stages/{stageId}/tasks [post]
func (c *ProjectController) AddTask(ctx *fiber.Ctx) error {
	var input AddTaskInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	task, err := c.service.AddTask(ctx.Context(), ctx.Params("id"), ctx.Params("stageId"), input)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(task)
}

// UpdateTask godoc
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        stageId path string true "Stage ID"
// @Param        taskId path string true "Task ID"
// @Param        input body project.UpdateTaskInput true "Fields to update"
// @Success      200 {object} project.Task
// @Router       /api/projects/{id}/stages/{stageId}/tasks/{taskId} [put]
func (c *ProjectController) UpdateTask(ctx *fiber.Ctx) error {
	var input UpdateTaskInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	task, err := c.service.UpdateTask(ctx.Context(), ctx.Params("id"), ctx.Params("stageId"), ctx.Params("taskId"), input)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(task)
}

// DeleteTask godoc
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        stageId path string true "Stage ID"
// @Param        taskId path string true "Task ID"
// @Success      200 {object} map[string]interface{}
// @Router       /api/projects/{id}/stages/{stageId}/tasks/{taskId} [delete]
func (c *ProjectController) DeleteTask(ctx *fiber.Ctx) error {
	if err := c.service.DeleteTask(ctx.Context(), ctx.Params("id"), ctx.Params("stageId"), ctx.Params("taskId")); err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

// FindTask godoc
// @Summary      Find a task by id
// @Description  Resolve a task with its owning project and stage
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID"
// @Success      200 {object} project.TaskLocation
// @Failure      404 {string} string "Not Found"
// @Router       /api/tasks/{taskId} [get]
func (c *ProjectController) FindTask(ctx *fiber.Ctx) error {
	loc, err := c.service.FindTask(ctx.Context(), ctx.Params("taskId"))
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(loc)
}

// AddReport godoc
// @Summary      Submit a task report
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        stageId path string true "Stage ID"
// @Param        taskId path string true "Task ID"
// @Param        input body project.ReportInput true "Report Data"
// @Success      201 {object} project.TaskReport
// @Router       /api/projects/{id}/stages/{stageId}/tasks/{taskId}/reports [post]
func (c *ProjectController) AddReport(ctx *fiber.Ctx) error {
	var input ReportInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	report, err := c.service.AddTaskReport(ctx.Context(), c.actorID(ctx), ctx.Params("id"), ctx.Params("stageId"), ctx.Params("taskId"), input)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(report)
}

// AddComment godoc
// @Summary      Comment on a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        stageId path string true "Stage ID"
// @Param        taskId path string true "Task ID"
// @Param        input body project.CommentInput true "Comment Data"
// @Success      201 {object} project.TaskComment
// @Router       /api/projects/{id}/stages/{stageId}/tasks/{taskId}/comments [post]
func (c *ProjectController) AddComment(ctx *fiber.Ctx) error {
	var input CommentInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	comment, err := c.service.AddTaskComment(ctx.Context(), c.actorID(ctx), ctx.Params("id"), ctx.Params("stageId"), ctx.Params("taskId"), input)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(comment)
}
