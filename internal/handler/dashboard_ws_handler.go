package handler

import (
	"promo-insights-be/internal/pkg/logger"
	internalWS "promo-insights-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// DashboardWsHandler upgrades dashboard clients onto the hub so every open
// tab sees filter and navigation changes as they happen.
type DashboardWsHandler struct {
	hub    *internalWS.Hub
	logger logger.ILogger
}

func NewDashboardWsHandler(hub *internalWS.Hub, log logger.ILogger) *DashboardWsHandler {
	return &DashboardWsHandler{
		hub:    hub,
		logger: log,
	}
}

func (h *DashboardWsHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/ws/dashboard", h.ServeWs)
}

// ServeWs handles websocket requests from the peer.
func (h *DashboardWsHandler) ServeWs(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("DashboardWsHandler", "Starting WebSocket session", map[string]interface{}{"remote": conn.RemoteAddr().String()})
			internalWS.ServeWs(h.hub, conn)
			h.logger.Info("DashboardWsHandler", "WebSocket session ended", nil)
		})(c)
	}
	return fiber.ErrUpgradeRequired
}
