package auth

import (
	"go-fieldops/internal/common/api"
	"go-fieldops/internal/config"
	"go-fieldops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	controller *AuthController
	config     *config.Config
}

func NewAuthApi(controller *AuthController, config *config.Config) api.Route {
	return &AuthApi{
		controller: controller,
		config:     config,
	}
}

func (h *AuthApi) Setup(app *fiber.App) {
	group := app.Group("/api/auth")

	group.Post("/login", h.controller.Login)
	group.Get("/me", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.Me)
	group.Post("/impersonate/:id", middleware.AuthMiddleware(h.config.SkipAuth), h.controller.Impersonate)
}
