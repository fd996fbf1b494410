package handler

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/cinesuggest/web/internal/middleware"
	"github.com/cinesuggest/web/internal/service"
	ws "github.com/cinesuggest/web/internal/websocket"
)

type WSHandler struct {
	controller *service.Controller
	hub        *ws.Hub
}

func NewWSHandler(ctrl *service.Controller, hub *ws.Hub) *WSHandler {
	return &WSHandler{controller: ctrl, hub: hub}
}

// Upgrade rejects plain HTTP requests to /ws. A page reconnecting after a
// dropped socket passes reconnect=1 and is not greeted again.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("wsSession", middleware.GetSessionID(c))
		c.Locals("wsGreet", c.Query("reconnect") == "")
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve handles GET /ws
func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		sessionID, _ := c.Locals("wsSession").(string)
		if sessionID == "" {
			return
		}
		var onOpen func()
		if greet, _ := c.Locals("wsGreet").(bool); greet {
			onOpen = func() { h.controller.Welcome(sessionID) }
		}
		h.hub.HandleConnection(c, sessionID, onOpen)
	})
}
