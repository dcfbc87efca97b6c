package handler

import (
	"global_chat_server/internal/service/chat"
	"global_chat_server/internal/service/room"
)

// Handlers aggregates all handler instances. The router layer reaches the
// individual handlers through this struct.
type Handlers struct {
	Ws   *WsHandler
	Room *RoomHandler
}

// NewHandlers creates all handler instances with their dependencies
// injected.
func NewHandlers(broker chat.Broker, rm *room.Room) *Handlers {
	return &Handlers{
		Ws:   NewWsHandler(broker),
		Room: NewRoomHandler(rm),
	}
}
