package user

import (
	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/features/permission"
	"go-fieldops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type UserController struct {
	service UserService
}

func NewUserController(service UserService) *UserController {
	return &UserController{
		service: service,
	}
}

func actorID(ctx *fiber.Ctx) (string, error) {
	claims, ok := middleware.Claims(ctx)
	if !ok {
		return "", apperr.ErrUnauthorized
	}
	return claims.UserID, nil
}

// List godoc
// @Summary      List all users
// @Tags         users
// @Produce      json
// @Success      200  {object} map[string]interface{}
// @Router       /api/users [get]
func (c *UserController) List(ctx *fiber.Ctx) error {
	users, err := c.service.ListUsers(ctx.Context())
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": users})
}

// Employees godoc
// @Summary      List employees
// @Tags         users
// @Produce      json
// @Success      200  {object} map[string]interface{}
// @Router       /api/users/employees [get]
func (c *UserController) Employees(ctx *fiber.Ctx) error {
	users, err := c.service.Employees(ctx.Context())
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": users})
}

// NonDevelopers godoc
// @Summary      List users excluding developers
// @Tags         users
// @Produce      json
// @Success      200  {object} map[string]interface{}
// @Router       /api/users/non-developers [get]
func (c *UserController) NonDevelopers(ctx *fiber.Ctx) error {
	users, err := c.service.NonDevelopers(ctx.Context())
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": users})
}

// Get godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object} User
// @Failure      404  {string} string "Not found"
// @Router       /api/users/{id} [get]
func (c *UserController) Get(ctx *fiber.Ctx) error {
	u, err := c.service.GetUserByID(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(u)
}

// Create godoc
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input body CreateUserInput true "User Input"
// @Success      201  {object} User
// @Failure      403  {string} string "Forbidden"
// @Failure      409  {string} string "Email already in use"
// @Router       /api/users [post]
func (c *UserController) Create(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	var input CreateUserInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	created, err := c.service.CreateUser(ctx.Context(), actor, input)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(created)
}

// Update godoc
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        input body UpdateUserInput true "User Input"
// @Success      200  {object} User
// @Failure      403  {string} string "Forbidden"
// @Router       /api/users/{id} [put]
func (c *UserController) Update(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	var input UpdateUserInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := c.service.UpdateUser(ctx.Context(), actor, ctx.Params("id"), input)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(updated)
}

// ToggleActive godoc
// @Summary      Toggle a user's active flag
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object} User
// @Failure      403  {string} string "Forbidden"
// @Router       /api/users/{id}/toggle-active [post]
func (c *UserController) ToggleActive(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	updated, err := c.service.ToggleUserActive(ctx.Context(), actor, ctx.Params("id"))
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(updated)
}

// Delete godoc
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object} map[string]string
// @Failure      403  {string} string "Forbidden"
// @Router       /api/users/{id} [delete]
func (c *UserController) Delete(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.service.DeleteUser(ctx.Context(), actor, ctx.Params("id")); err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

// UpdatePermissions godoc
// @Summary      Update a user's permissions
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        input body permission.Permissions true "Permission flags"
// @Success      200  {object} User
// @Failure      403  {string} string "Forbidden"
// @Router       /api/users/{id}/permissions [put]
func (c *UserController) UpdatePermissions(ctx *fiber.Ctx) error {
	actor, err := actorID(ctx)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	var updates permission.Permissions
	if err := ctx.BodyParser(&updates); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	updated, err := c.service.UpdateUserPermissions(ctx.Context(), actor, ctx.Params("id"), updates)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(updated)
}
