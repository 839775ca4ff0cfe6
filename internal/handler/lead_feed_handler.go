package handler

import (
	"agency-configurator-be/internal/pkg/logger"
	"agency-configurator-be/internal/pkg/serverutils"
	internalWS "agency-configurator-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const adminRole = "admin"

type LeadFeedHandler struct {
	hub       *internalWS.Hub
	jwtSecret string
	logger    logger.ILogger
}

func NewLeadFeedHandler(hub *internalWS.Hub, jwtSecret string, log logger.ILogger) *LeadFeedHandler {
	return &LeadFeedHandler{
		hub:       hub,
		jwtSecret: jwtSecret,
		logger:    log,
	}
}

func (h *LeadFeedHandler) RegisterRoutes(r fiber.Router) {
	r.Get("/ws/leads", h.ServeWs)
}

// ServeWs streams lead events to an admin dashboard.
func (h *LeadFeedHandler) ServeWs(c *fiber.Ctx) error {
	// Browsers cannot set headers on the handshake, so the query wins.
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}

	claims, ok := serverutils.ParseToken(tokenStr, h.jwtSecret)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(fiber.StatusUnauthorized, "Missing or invalid token"))
	}
	if role, _ := claims["role"].(string); role != adminRole {
		return c.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(fiber.StatusForbidden, "Access denied: Admins only"))
	}
	adminID, _ := claims["user_id"].(string)
	if adminID == "" {
		adminID, _ = claims["sub"].(string)
	}

	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		h.logger.Info("LEAD_FEED", "Starting WebSocket session", map[string]interface{}{"admin_id": adminID})
		internalWS.ServeWs(h.hub, conn, adminID)
		h.logger.Info("LEAD_FEED", "WebSocket session ended", map[string]interface{}{"admin_id": adminID})
	})(c)
}
