package bootstrap

import (
	"context"
	"log"

	"chat-messaging-be/internal/config"
	"chat-messaging-be/internal/controller"
	"chat-messaging-be/internal/handler"
	"chat-messaging-be/internal/pkg/logger"
	"chat-messaging-be/internal/repository/unitofwork"
	"chat-messaging-be/internal/service"
	"chat-messaging-be/internal/websocket"
	pktNats "chat-messaging-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	MessageController controller.IMessageController
	UserController    controller.IUserController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	// Held so main can close it on shutdown. Nil when NATS is disabled.
	NatsPublisher *pktNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus (in-process delivery pipeline)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS mirror of domain events. Optional; the core never depends on it.
	var natsPub *pktNats.Publisher
	if cfg.Events.NatsEnabled {
		pub, err := pktNats.NewPublisher(cfg.Events.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
		} else {
			natsPub = pub
		}
	}

	// Redis fans WebSocket delivery out across instances. Without it the
	// hub still delivers to locally connected clients.
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. WebSocket delivery is local-only", err)
		rdb = nil
	}

	// WebSocket hub
	deliveryLogger := logger.NewIsolatedLogger(cfg.App.DeliveryLogPath)
	wsHub := websocket.NewHub(rdb, deliveryLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Events.DeliveryTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Events.DeliveryTopic, uowFactory, wsHub)

	recorder := service.NewEditHistoryRecorder()
	unreadService := service.NewUnreadQueryService(uowFactory)
	threadService := service.NewThreadService(uowFactory)
	messageService := service.NewMessageService(
		uowFactory,
		recorder,
		publisherService,
		natsPub,
		unreadService,
		sysLogger,
	)
	notificationService := service.NewNotificationService(uowFactory, wsHub, deliveryLogger)
	userService := service.NewUserService(uowFactory, natsPub, unreadService, sysLogger)

	// 4. Handlers & controllers
	notifHandler := handler.NewNotificationHandler(notificationService, wsHub, deliveryLogger)

	return &Container{
		MessageController: controller.NewMessageController(messageService, threadService, unreadService),
		UserController:    controller.NewUserController(userService),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		NatsPublisher:       natsPub,
	}
}
