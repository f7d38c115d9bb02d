package auth

import (
	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	service AuthService
}

func NewAuthController(service AuthService) *AuthController {
	return &AuthController{
		service: service,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login godoc
// @Summary      Login
// @Description  Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input body loginRequest true "Login Input"
// @Success      200  {object} map[string]interface{}
// @Failure      400  {string} string "Invalid request body"
// @Failure      401  {string} string "Invalid credentials"
// @Router       /api/auth/login [post]
func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var req loginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	token, usr, err := c.service.Login(ctx.Context(), req.Email, req.Password)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"token": token, "user": usr})
}

// Me godoc
// @Summary      Current user
// @Description  Return the account behind the bearer token
// @Tags         auth
// @Produce      json
// @Success      200  {object} user.User
// @Failure      401  {string} string "Unauthorized"
// @Router       /api/auth/me [get]
func (c *AuthController) Me(ctx *fiber.Ctx) error {
	claims, ok := middleware.Claims(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	usr, err := c.service.Me(ctx.Context(), claims.UserID)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(usr)
}

// Impersonate godoc
// @Summary      Impersonate a user
// @Description  Issue a token for another account, developers only
// @Tags         auth
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200  {object} map[string]interface{}
// @Failure      403  {string} string "Forbidden"
// @Router       /api/auth/impersonate/{id} [post]
func (c *AuthController) Impersonate(ctx *fiber.Ctx) error {
	claims, ok := middleware.Claims(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	token, usr, err := c.service.Impersonate(ctx.Context(), claims.UserID, ctx.Params("id"))
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"token": token, "user": usr})
}
