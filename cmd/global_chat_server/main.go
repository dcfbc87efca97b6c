package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"global_chat_server/internal/config"
	"global_chat_server/internal/handler"
	"global_chat_server/internal/https_server"
	"global_chat_server/internal/infrastructure/logger"
	"global_chat_server/internal/service/chat"
	"global_chat_server/internal/service/room"
	"global_chat_server/pkg/util/snowflake"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. load configuration
	conf := config.GetConfig()

	// 2. init logging
	if err := logger.Init(&conf.LogConfig, conf.Mode); err != nil {
		log.Fatalf("init logger failed: %v", err)
	}
	zap.L().Info("logger initialized")

	// 3. init the message id generator
	snowflake.Init(conf.SnowflakeConfig.MachineID)

	// 4. init validator error translation for the REST surface
	if err := handler.InitTrans("en"); err != nil {
		zap.L().Fatal("init validator translation failed", zap.Error(err))
	}

	// 5. build the room and its broker
	rm := room.NewRoom(conf.RoomConfig.Name, conf.HistoryPageSize)
	broker := chat.NewStandaloneServer(rm, conf.WelcomeMessage)
	go broker.Start()
	zap.L().Info("chat room ready", zap.String("room", rm.Name()))

	// 6. build the HTTP server
	if conf.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers := handler.NewHandlers(broker, rm)
	engine := https_server.Init(handlers)

	go func() {
		addr := fmt.Sprintf("%s:%d", conf.Host, conf.Port)
		zap.L().Info("server listening", zap.String("addr", addr))
		if err := engine.Run(addr); err != nil {
			zap.L().Fatal("server running fault", zap.Error(err))
		}
	}()

	// 7. wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	broker.Close()
	zap.L().Info("server stopped")
}
