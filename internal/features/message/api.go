package message

import (
	"go-fieldops/internal/common/api"
	"go-fieldops/internal/config"
	"go-fieldops/internal/features/permission"
	"go-fieldops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MessageApi struct {
	controller *MessageController
	config     *config.Config
	perms      middleware.PermissionSource
}

func NewMessageApi(controller *MessageController, config *config.Config, perms middleware.PermissionSource) api.Route {
	return &MessageApi{
		controller: controller,
		config:     config,
		perms:      perms,
	}
}

func (h *MessageApi) Setup(app *fiber.App) {
	group := app.Group("/api/messages", middleware.AuthMiddleware(h.config.SkipAuth))

	group.Post("/", middleware.RequirePermission(h.perms, h.config.SkipAuth, permission.SendMessages), h.controller.Send)
	group.Get("/conversations", middleware.RequirePermission(h.perms, h.config.SkipAuth, permission.ReceiveMessages), h.controller.Conversations)
	group.Get("/unread-count", middleware.RequirePermission(h.perms, h.config.SkipAuth, permission.ReceiveMessages), h.controller.UnreadCount)
	group.Get("/with/:userId", middleware.RequirePermission(h.perms, h.config.SkipAuth, permission.ReceiveMessages), h.controller.ListWith)
	group.Put("/:id/read", middleware.RequirePermission(h.perms, h.config.SkipAuth, permission.ReceiveMessages), h.controller.MarkRead)
}
