// Package router registers the HTTP routes.
package router

import (
	"github.com/gin-gonic/gin"

	"global_chat_server/internal/handler"
)

// Router aggregates route registration over the injected handlers.
type Router struct {
	handlers *handler.Handlers
}

// NewRouter creates the route manager.
func NewRouter(handlers *handler.Handlers) *Router {
	return &Router{handlers: handlers}
}

// RegisterRoutes registers all route groups on the engine. Called from
// https_server.Init.
func (rt *Router) RegisterRoutes(r *gin.Engine) {
	root := r.Group("/")
	rt.RegisterWebSocketRoutes(root)
	rt.RegisterRoomRoutes(root)
}
