package system

import (
	"go-fieldops/internal/realtime"

	"github.com/gofiber/contrib/websocket"
	"go.uber.org/zap"
)

type WebSocketController struct {
	hub *realtime.Hub
	log *zap.Logger
}

func NewWebSocketController(hub *realtime.Hub, log *zap.Logger) *WebSocketController {
	return &WebSocketController{
		hub: hub,
		log: log,
	}
}

// Handle parks the socket in the hub for the authenticated user. The user id
// is resolved by the upgrade middleware and passed through conn locals.
func (h *WebSocketController) Handle(c *websocket.Conn) {
	userID, _ := c.Locals("userId").(string)
	if userID == "" {
		c.Close()
		return
	}

	h.log.Debug("websocket connected", zap.String("userId", userID))
	h.hub.Register(userID, c)
	h.log.Debug("websocket disconnected", zap.String("userId", userID))
}
