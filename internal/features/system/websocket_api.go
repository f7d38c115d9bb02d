package system

import (
	"go-fieldops/internal/common/api"
	"go-fieldops/internal/config"
	"go-fieldops/pkg/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

type WebSocketApi struct {
	controller *WebSocketController
	config     *config.Config
}

func NewWebSocketApi(controller *WebSocketController, cfg *config.Config) api.Route {
	return &WebSocketApi{
		controller: controller,
		config:     cfg,
	}
}

// Setup registers the push socket. Browsers cannot set an Authorization
// header on the upgrade request, so the token rides in a query parameter.
func (h *WebSocketApi) Setup(app *fiber.App) {
	app.Use("/api/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}

		if h.config.SkipAuth {
			c.Locals("userId", "dev-admin-id")
			return c.Next()
		}

		claims, err := utils.ValidateToken(c.Query("token"))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}
		c.Locals("userId", claims.UserID)
		return c.Next()
	})

	app.Get("/api/ws", websocket.New(h.controller.Handle))
}
