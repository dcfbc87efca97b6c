// Package handler provides the HTTP request handlers.
package handler

import (
	"github.com/gin-gonic/gin"

	"global_chat_server/internal/service/chat"
)

// WsHandler serves the websocket entry point.
type WsHandler struct {
	broker chat.Broker
}

// NewWsHandler constructs the handler over the given broker.
func NewWsHandler(broker chat.Broker) *WsHandler {
	return &WsHandler{broker: broker}
}

// Connect upgrades the HTTP request to a websocket connection and hands it
// to the broker.
// GET /ws
// The connection id is assigned server-side; no query parameters required.
func (h *WsHandler) Connect(c *gin.Context) {
	chat.NewClientInit(c, h.broker)
}
