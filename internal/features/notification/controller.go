package notification

import (
	"go-fieldops/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

type NotificationController struct {
	service NotificationService
}

func NewNotificationController(service NotificationService) *NotificationController {
	return &NotificationController{
		service: service,
	}
}

// List godoc
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object} map[string]interface{}
// @Router       /api/notifications [get]
func (c *NotificationController) List(ctx *fiber.Ctx) error {
	notifications, err := c.service.List(ctx.Context())
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": notifications})
}

// Add godoc
// @Summary      Add a notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        input body AddNotificationInput true "Notification Input"
// @Success      201  {object} Notification
// @Failure      400  {string} string "Invalid request body"
// @Router       /api/notifications [post]
func (c *NotificationController) Add(ctx *fiber.Ctx) error {
	var input AddNotificationInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	n, err := c.service.Add(ctx.Context(), input)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(n)
}

// GetUnreadCount godoc
// @Summary      Count unread notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object} map[string]int
// @Router       /api/notifications/unread-count [get]
func (c *NotificationController) GetUnreadCount(ctx *fiber.Ctx) error {
	count, err := c.service.UnreadCount(ctx.Context())
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"count": count})
}

// MarkAsRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Param        id path string true "Notification ID"
// @Success      200  {object} map[string]string
// @Failure      404  {string} string "Not found"
// @Router       /api/notifications/{id}/read [put]
func (c *NotificationController) MarkAsRead(ctx *fiber.Ctx) error {
	if err := c.service.MarkRead(ctx.Context(), ctx.Params("id")); err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

// ClearAll godoc
// @Summary      Mark every notification as read
// @Tags         notifications
// @Produce      json
// @Success      200  {object} map[string]string
// @Router       /api/notifications/clear [post]
func (c *NotificationController) ClearAll(ctx *fiber.Ctx) error {
	if err := c.service.ClearAll(ctx.Context()); err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}
