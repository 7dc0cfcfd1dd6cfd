package handler

import (
	"saedam-be/internal/pkg/logger"
	internalWS "saedam-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ProgressionHandler upgrades websocket connections that receive affection
// progression events (level-ups, community unlock) as they happen.
type ProgressionHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewProgressionHandler(hub *internalWS.Hub, log logger.ILogger) *ProgressionHandler {
	return &ProgressionHandler{
		hub:    hub,
		logger: log,
	}
}

// ServeWs handles websocket requests from the peer. There is no account
// system: the device-scoped anonymous id in the query string names the
// connection, the same id the chat endpoint accepts.
func (h *ProgressionHandler) ServeWs(c *fiber.Ctx) error {
	anonymousID := c.Query("user")
	if anonymousID == "" || len(anonymousID) > 64 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing or invalid 'user' query parameter"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("ProgressionHandler", "Starting WebSocket session", map[string]interface{}{"anonymous_id": anonymousID})
			internalWS.ServeWs(h.hub, conn, anonymousID)
			h.logger.Info("ProgressionHandler", "WebSocket session ended", map[string]interface{}{"anonymous_id": anonymousID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// RegisterRoutes registers the websocket route.
func (h *ProgressionHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws", h.ServeWs)
}
