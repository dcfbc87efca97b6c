// Package https_server builds the gin engine with middleware, CORS and the
// registered routes.
package https_server

import (
	"global_chat_server/internal/config"
	"global_chat_server/internal/handler"
	"global_chat_server/internal/infrastructure/logger"
	"global_chat_server/internal/infrastructure/middleware"
	"global_chat_server/internal/router"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Init builds the engine:
//  1. blank gin engine, no default middleware
//  2. zap request log + panic recovery
//  3. CORS rules (the browser client runs on a different origin)
//  4. optional TLS redirect
//  5. business routes
func Init(handlers *handler.Handlers) *gin.Engine {
	engine := gin.New()

	engine.Use(logger.GinLogger())
	engine.Use(logger.GinRecovery(true))

	conf := config.GetConfig()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = conf.WebsocketConfig.AllowedOrigins
	if len(corsConfig.AllowOrigins) == 1 && corsConfig.AllowOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowOrigins = nil
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type"}
	engine.Use(cors.New(corsConfig))

	if conf.TLSConfig.Enabled {
		engine.Use(middleware.TlsHandler(conf.TLSConfig.SSLHost))
	}

	rt := router.NewRouter(handlers)
	rt.RegisterRoutes(engine)

	return engine
}
