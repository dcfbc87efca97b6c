package router

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoomRoutes registers the read-only room views and the health
// probe.
func (rt *Router) RegisterRoomRoutes(rg *gin.RouterGroup) {
	rg.GET("/healthz", rt.handlers.Room.Health)

	roomGroup := rg.Group("/room")
	{
		roomGroup.GET("/roster", rt.handlers.Room.Roster)
		roomGroup.GET("/stats", rt.handlers.Room.Stats)
	}
}
