package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"workforce_chat_service/internal/chat/app"
	"workforce_chat_service/internal/chat/repository"
	"workforce_chat_service/internal/chat/router"
	"workforce_chat_service/pkg/config"
	"workforce_chat_service/pkg/database"
	"workforce_chat_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.ChatService, config.EnvConfig.ChatServiceLogPath)
	cfg := config.LoadConfig[config.Chat](config.EnvConfig.ChatService, config.EnvConfig.ChatServiceYAMLPath)

	ctx := context.Background()
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.Mongo.User, cfg.Mongo.Password, cfg.Mongo.Host, cfg.Mongo.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.Mongo.RetryCount,
			RetryInterval: time.Duration(cfg.Mongo.RetryInterval),
		},
		cfg.Mongo.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", uri)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	if err := repository.EnsureMessageIndexes(ctx, mongo.Database); err != nil {
		logger.Log.Fatal(fmt.Sprintf("ensure message indexes err : %v", err))
	}

	redisClient, err := database.NewRedisClient(
		fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port), cfg.Redis.DB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}

	msgRepo := repository.NewMongoMessageRepository(mongo.Database)
	groupRepo := repository.NewMongoGroupRepository(mongo.Database)
	userRepo := repository.NewMongoUserRepository(mongo.Database)
	notifRepo := repository.NewMongoNotificationRepository(mongo.Database)
	bus := repository.NewRedisPubSub(redisClient)

	registry := app.NewRegistry()
	messageUC := app.NewMessageUseCase(msgRepo, groupRepo, userRepo, bus, registry)
	conversationUC := app.NewConversationUseCase(msgRepo, userRepo)
	groupUC := app.NewGroupUseCase(groupRepo, userRepo)
	notificationUC := app.NewNotificationUseCase(notifRepo, userRepo, bus)

	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.ChatServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r,
		app.NewChatWebsocketHandler(messageUC, groupUC, registry, bus),
		app.NewMessageHandler(messageUC, conversationUC),
		app.NewGroupHandler(groupUC),
		app.NewNotificationHandler(notificationUC),
	)

	port := ":" + cfg.Port
	log.Printf("Chat Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
