package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"global_chat_server/internal/service/room"
)

// RoomHandler serves read-only REST views of the room state. The room's
// own lock serializes these reads against the websocket event loop.
type RoomHandler struct {
	room *room.Room
}

// NewRoomHandler constructs the handler over the given room.
func NewRoomHandler(rm *room.Room) *RoomHandler {
	return &RoomHandler{room: rm}
}

// Roster returns the sorted list of joined display names.
// GET /room/roster
func (h *RoomHandler) Roster(c *gin.Context) {
	HandleSuccess(c, h.room.Roster())
}

// Stats returns a point-in-time room snapshot for operators.
// GET /room/stats
func (h *RoomHandler) Stats(c *gin.Context) {
	HandleSuccess(c, h.room.Stats())
}

// Health is the liveness probe.
// GET /healthz
func (h *RoomHandler) Health(c *gin.Context) {
	c.String(http.StatusOK, "chat server is running")
}
