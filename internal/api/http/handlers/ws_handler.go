package handlers

import (
	"encoding/json"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/event-service/internal/notify"
)

type connectionGreeting struct {
	Type     string `json:"type"`
	Message  string `json:"message"`
	SocketID string `json:"socketId"`
}

type echoMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// WSHandler attaches websocket clients to the notification hub.
type WSHandler struct {
	hub    *notify.Hub
	logger *zap.Logger
}

// NewWSHandler constructs handler.
func NewWSHandler(hub *notify.Hub, logger *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, logger: logger}
}

// Upgrade rejects plain HTTP requests to the websocket endpoint.
func (h *WSHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler serves GET /ws.
func (h *WSHandler) Handler() fiber.Handler {
	return websocket.New(h.serve)
}

// serve registers the connection, greets it, echoes inbound text frames and
// unregisters it once the read loop ends.
func (h *WSHandler) serve(conn *websocket.Conn) {
	client, err := h.hub.Register(conn)
	if err != nil {
		_ = conn.Close()
		return
	}
	defer h.hub.Unregister(client.ID)

	if err := client.SendJSON(connectionGreeting{
		Type:     "connection",
		Message:  "Connected to Event Management WebSocket",
		SocketID: client.ID,
	}); err != nil {
		h.logger.Warn("websocket greeting failed", zap.String("socket_id", client.ID), zap.Error(err))
		return
	}

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}
		var payload any
		if err := json.Unmarshal(data, &payload); err != nil {
			payload = string(data)
		}
		if err := client.SendJSON(echoMessage{Type: "echo", Data: payload}); err != nil {
			return
		}
	}
}
