package message

import (
	"go-fieldops/internal/common/apperr"
	"go-fieldops/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type MessageController struct {
	service MessageService
}

func NewMessageController(service MessageService) *MessageController {
	return &MessageController{
		service: service,
	}
}

func callerID(ctx *fiber.Ctx) (string, bool) {
	claims, ok := middleware.Claims(ctx)
	if !ok {
		return "", false
	}
	return claims.UserID, true
}

// Send godoc
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        input body SendMessageInput true "Message Input"
// @Success      201  {object} Message
// @Failure      403  {string} string "Forbidden"
// @Failure      404  {string} string "Receiver not found"
// @Router       /api/messages [post]
func (c *MessageController) Send(ctx *fiber.Ctx) error {
	caller, ok := callerID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var input SendMessageInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	msg, err := c.service.Send(ctx.Context(), caller, input)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.Status(fiber.StatusCreated).JSON(msg)
}

// ListWith godoc
// @Summary      List messages exchanged with a user
// @Tags         messages
// @Produce      json
// @Param        userId path string true "Counterpart user ID"
// @Success      200  {object} map[string]interface{}
// @Router       /api/messages/with/{userId} [get]
func (c *MessageController) ListWith(ctx *fiber.Ctx) error {
	caller, ok := callerID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	msgs, err := c.service.ListWith(ctx.Context(), caller, ctx.Params("userId"))
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": msgs})
}

// MarkRead godoc
// @Summary      Mark a message as read
// @Tags         messages
// @Produce      json
// @Param        id path string true "Message ID"
// @Success      200  {object} map[string]string
// @Failure      403  {string} string "Forbidden"
// @Failure      404  {string} string "Not found"
// @Router       /api/messages/{id}/read [put]
func (c *MessageController) MarkRead(ctx *fiber.Ctx) error {
	caller, ok := callerID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	if err := c.service.MarkRead(ctx.Context(), caller, ctx.Params("id")); err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"status": "success"})
}

// UnreadCount godoc
// @Summary      Count unread messages
// @Tags         messages
// @Produce      json
// @Param        from query string false "Restrict to a sender"
// @Success      200  {object} map[string]int
// @Router       /api/messages/unread-count [get]
func (c *MessageController) UnreadCount(ctx *fiber.Ctx) error {
	caller, ok := callerID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	count, err := c.service.UnreadCount(ctx.Context(), caller, ctx.Query("from"))
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"count": count})
}

// Conversations godoc
// @Summary      List conversations
// @Description  One entry per counterpart, newest message first
// @Tags         messages
// @Produce      json
// @Success      200  {object} map[string]interface{}
// @Router       /api/messages/conversations [get]
func (c *MessageController) Conversations(ctx *fiber.Ctx) error {
	caller, ok := callerID(ctx)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}

	convs, err := c.service.Conversations(ctx.Context(), caller)
	if err != nil {
		return ctx.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(fiber.Map{"data": convs})
}
