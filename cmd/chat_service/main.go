package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	chatapp "social_chat_service/internal/chat/app"
	chatrepo "social_chat_service/internal/chat/repository"
	chatrouter "social_chat_service/internal/chat/router"
	memberapp "social_chat_service/internal/member/app"
	memberdomain "social_chat_service/internal/member/domain"
	memberrepo "social_chat_service/internal/member/repository"
	memberrouter "social_chat_service/internal/member/router"
	"social_chat_service/pkg/config"
	"social_chat_service/pkg/database"
	"social_chat_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.ChatService, config.EnvConfig.ChatServiceLogPath)
	cfg := config.LoadConfig[config.Chat](config.EnvConfig.ChatService, config.EnvConfig.ChatServiceYAMLPath)

	ctx := context.Background()

	// 1. 訊息 history backend (memory 或 mongo)
	var msgRepo chatrepo.MessageRepository
	switch cfg.History.Backend {
	case "mongo":
		uri := fmt.Sprintf("mongodb://%s:%s@%s:%d",
			cfg.History.Mongo.User, cfg.History.Mongo.Password,
			cfg.History.Mongo.Host, cfg.History.Mongo.Port)
		mongo, err := database.NewMongoDB(ctx,
			database.Connection{
				ConnectStr:    uri,
				RetryCount:    cfg.History.Mongo.RetryCount,
				RetryInterval: time.Duration(cfg.History.Mongo.RetryInterval),
			},
			cfg.History.Mongo.Database)
		if err != nil {
			logger.Log.Fatal(
				"Unable to connect to mongoDB database after retries",
				zap.String("address", fmt.Sprintf("[%s]", uri)),
				zap.Error(err),
			)
		}
		defer mongo.Close(ctx)
		msgRepo = chatrepo.NewMongoMessageRepository(mongo.Database)
	default:
		msgRepo = chatrepo.NewMemoryMessageRepository()
	}

	// 2. 帳號 backend (memory 或 postgres)
	var memberRepo memberrepo.MemberRepository
	switch cfg.Accounts.Backend {
	case "postgres":
		pg := cfg.Accounts.PostgreSQL
		connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
			pg.User, pg.Password, pg.Host, pg.Port, pg.Database)
		pool, err := database.NewDatabaseConnection(database.Connection{
			ConnectStr:    connStr,
			RetryCount:    pg.RetryCount,
			RetryInterval: time.Duration(pg.RetryInterval),
		})
		if err != nil {
			logger.Log.Fatal("Unable to connect to postgres after retries", zap.Error(err))
		}
		defer pool.Close()
		memberRepo = memberrepo.NewPostgresMemberRepository(pool)
	default:
		memberRepo = memberrepo.NewMemoryMemberRepository()
	}

	// 3. redis login-session store, optional
	var sessionRepo database.RedisRepository[memberdomain.MemberSession]
	if cfg.Redis.Enabled {
		redisClient, err := database.NewRedisClient(cfg.Redis.Addr, cfg.Redis.RedisDB)
		if err != nil {
			logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
		}
		defer redisClient.Close()
		sessionRepo = database.NewRedisRepository[memberdomain.MemberSession](redisClient)
	}

	// 4. 初始化 Repository
	sessions := chatrepo.NewMemorySessionRegistry()
	friends := chatrepo.NewMemoryFriendRepository()
	backlog := chatrepo.NewMemoryBacklogRepository()

	// 5. 初始化 UseCases
	hub := chatapp.NewRoomHub()
	memberUC := memberapp.NewMemberUseCase(memberRepo, cfg.SessionTTL, sessionRepo)
	presenceUC := chatapp.NewPresenceUseCase(sessions, backlog, friends)
	friendUC := chatapp.NewFriendUseCase(friends, sessions)
	sendMessageUC := chatapp.NewSendMessageUseCase(sessions, msgRepo, backlog, hub)

	// 6. 啟動 Fiber
	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.ChatServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowCredentials: true,
	}))

	// REST 先註冊, websocket 的 JWT middleware 只掛在 /ws
	memberrouter.RegisterRoutes(r, memberapp.NewMemberHandler(memberUC))
	chatrouter.RegisterRoutes(r, chatapp.NewChatWebsocketHandler(presenceUC, friendUC, sendMessageUC, hub, memberUC))

	port := ":" + cfg.Port
	log.Printf("Chat Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
