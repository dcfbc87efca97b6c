package chat

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"global_chat_server/internal/config"
	"global_chat_server/pkg/constants"
)

// UserConn represents one websocket client connection.
type UserConn struct {
	Conn *websocket.Conn
	// Id identifies the connection for the room's presence registry.
	// Assigned server-side at upgrade time, never taken from the client.
	Id string
	// SendBack buffers frames on their way to this client. Writes into a
	// full buffer are dropped for this connection only.
	SendBack chan []byte
}

var ctx = context.Background()

// newUpgrader builds the websocket upgrader from config. With "*" in the
// allowed origins every origin is accepted, otherwise the Origin header
// must match one of the configured values.
func newUpgrader(cfg *config.WebsocketConfig) websocket.Upgrader {
	allowed := cfg.AllowedOrigins
	return websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, a := range allowed {
				if a == "*" || a == origin {
					return true
				}
			}
			return false
		},
	}
}

var upgrader = newUpgrader(&config.GetConfig().WebsocketConfig)

// Read pumps frames from the websocket into the broker. It exits on the
// first read error (the client went away) and hands the connection to the
// broker for teardown.
func (c *UserConn) Read(b Broker) {
	defer b.UnregisterClient(c)
	for {
		_, jsonMessage, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				zap.L().Error("ws read error", zap.String("connId", c.Id), zap.Error(err))
			}
			return
		}
		if err := b.Publish(ctx, InboundFrame{ConnId: c.Id, Data: jsonMessage}); err != nil {
			zap.L().Error("publish inbound frame failed", zap.String("connId", c.Id), zap.Error(err))
		}
	}
}

// Write pumps frames from SendBack out to the websocket. It exits when the
// channel is closed during teardown or on the first write error.
func (c *UserConn) Write() {
	for message := range c.SendBack {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			zap.L().Error("ws write error", zap.String("connId", c.Id), zap.Error(err))
			return
		}
	}
}

// NewClientInit upgrades the HTTP request to a websocket connection,
// registers it with the broker and starts the read/write pumps. Called
// from the gin websocket handler.
func NewClientInit(c *gin.Context, b Broker) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		zap.L().Error("ws upgrade failed", zap.Error(err))
		return
	}
	client := &UserConn{
		Conn:     conn,
		Id:       uuid.NewString(),
		SendBack: make(chan []byte, constants.CHANNEL_SIZE),
	}
	b.RegisterClient(client)
	go client.Read(b)
	go client.Write()
	zap.L().Info("ws connection established", zap.String("connId", client.Id))
}
