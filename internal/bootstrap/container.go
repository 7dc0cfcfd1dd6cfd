package bootstrap

import (
	"saedam-be/internal/config"
	"saedam-be/internal/controller"
	"saedam-be/internal/handler"
	"saedam-be/internal/pkg/logger"
	"saedam-be/internal/repository/unitofwork"
	"saedam-be/internal/service"
	"saedam-be/internal/websocket"
	"saedam-be/pkg/fairy"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController
	UserController controller.IUserController

	// Background Services (Exposed for main.go to run)
	NotifierService service.INotifierService

	// WebSockets
	ProgressionHandler *handler.ProgressionHandler
	WebSocketHub       *websocket.Hub

	// Facades
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Fairy Provider
	fairyProvider := fairy.NewOpenAICompatProvider(cfg.Ai.BaseURL, cfg.Ai.Model, cfg.Ai.APIKey)

	// 4. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("websocket.log")
	hub := websocket.NewHub(wsLogger)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub)
	chatService := service.NewChatService(uowFactory, fairyProvider, publisherService, sysLogger)
	userService := service.NewUserService(uowFactory)
	notifierService := service.NewNotifierService(pubSub, cfg.App.EventTopic, hub, wsLogger)

	// 6. Controllers & Handlers
	chatController := controller.NewChatController(chatService)
	userController := controller.NewUserController(userService)
	progressionHandler := handler.NewProgressionHandler(hub, wsLogger)

	return &Container{
		ChatController:     chatController,
		UserController:     userController,
		NotifierService:    notifierService,
		ProgressionHandler: progressionHandler,
		WebSocketHub:       hub,
		Logger:             sysLogger,
	}
}
