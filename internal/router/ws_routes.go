package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterWebSocketRoutes registers the websocket entry point.
// Clients connect with: ws://host:port/ws
func (rt *Router) RegisterWebSocketRoutes(rg *gin.RouterGroup) {
	rg.GET("/ws", rt.handlers.Ws.Connect)
}
