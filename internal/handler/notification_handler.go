package handler

import (
	"os"

	"chat-messaging-be/internal/pkg/logger"
	"chat-messaging-be/internal/pkg/serverutils"
	"chat-messaging-be/internal/service"
	internalWS "chat-messaging-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type NotificationHandler struct {
	service service.INotificationService
	hub     *internalWS.Hub
	logger  logger.ILogger
}

func NewNotificationHandler(svc service.INotificationService, hub *internalWS.Hub, log logger.ILogger) *NotificationHandler {
	return &NotificationHandler{
		service: svc,
		hub:     hub,
		logger:  log,
	}
}

// ServeWs authenticates the handshake and upgrades to a push-only socket.
// Browsers cannot set headers on WebSocket upgrades, so the token may come
// from the "token" query param as well as the Authorization header.
func (h *NotificationHandler) ServeWs(c *fiber.Ctx) error {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (query 'token' or Authorization header)"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("NotificationHandler", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("NotificationHandler", "Starting WebSocket session", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(h.hub, conn, userID)
			h.logger.Info("NotificationHandler", "WebSocket session ended", map[string]interface{}{"user_id": userID})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := userFromLocals(c)
	if err != nil {
		return err
	}

	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	res, err := h.service.List(c.UserContext(), userID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success get notifications", res))
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID, err := userFromLocals(c)
	if err != nil {
		return err
	}

	count, err := h.service.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success get unread count", fiber.Map{"count": count}))
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID, err := userFromLocals(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.service.MarkAsRead(c.UserContext(), userID, id); err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success mark notification read", nil))
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := userFromLocals(c)
	if err != nil {
		return err
	}

	updated, err := h.service.MarkAllAsRead(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(serverutils.SuccessResponse("Success mark all notifications read", fiber.Map{"updated": updated}))
}

func userFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return userID, nil
}

func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notif := router.Group("/notification/v1")
	notif.Use(serverutils.JwtMiddleware)
	notif.Get("", h.List)
	notif.Get("unread-count", h.UnreadCount)
	notif.Patch("read-all", h.MarkAllAsRead)
	notif.Patch(":id/read", h.MarkAsRead)

	// WebSocket push channel; authenticates itself, no JWT middleware.
	router.Get("/ws", h.ServeWs)
}
