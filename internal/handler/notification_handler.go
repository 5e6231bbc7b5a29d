package handler

import (
	"strings"

	"ai-mediagen-be/internal/pkg/logger"
	"ai-mediagen-be/internal/pkg/serverutils"
	internalWS "ai-mediagen-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type NotificationHandler struct {
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewNotificationHandler(hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

// ServeWs authenticates the handshake and streams the caller's generation
// notifications. Browsers pass the token as ?token=, other clients may use
// the Authorization header.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		tokenStr = strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
	}

	id, err := serverutils.ParseToken(tokenStr, h.jwtSecret)
	if err != nil {
		h.logger.Warn("NotificationHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("NotificationHandler", "WebSocket session started", map[string]interface{}{"user_id": id.UserId})
		internalWS.ServeWs(h.hub, conn, id.UserId)
		h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"user_id": id.UserId})
	})(c)
}

// Status reports how many live connections the caller has on this instance.
func (h *NotificationHandler) Status(c *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(c)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success get notification status", fiber.Map{
		"connections": h.hub.ConnectedClients(userId),
	}))
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notif := router.Group("/notification/v1")
	notif.Get("/ws", h.ServeWs)
	notif.Get("/status", serverutils.JwtMiddleware(h.jwtSecret), h.Status)
}
