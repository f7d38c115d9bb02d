package notification

import (
	"go-fieldops/internal/common/api"
	"go-fieldops/internal/config"
	"go-fieldops/internal/features/permission"
	"go-fieldops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type NotificationApi struct {
	controller *NotificationController
	config     *config.Config
	perms      middleware.PermissionSource
}

func NewNotificationApi(controller *NotificationController, config *config.Config, perms middleware.PermissionSource) api.Route {
	return &NotificationApi{
		controller: controller,
		config:     config,
		perms:      perms,
	}
}

func (h *NotificationApi) Setup(app *fiber.App) {
	group := app.Group("/api/notifications",
		middleware.AuthMiddleware(h.config.SkipAuth),
		middleware.RequirePermission(h.perms, h.config.SkipAuth, permission.ViewNotifications))

	group.Get("/", h.controller.List)
	group.Post("/", h.controller.Add)
	group.Get("/unread-count", h.controller.GetUnreadCount)
	group.Put("/:id/read", h.controller.MarkAsRead)
	group.Post("/clear", h.controller.ClearAll)
}
