package bootstrap

import (
	"context"
	"log"
	"time"

	"promo-insights-be/internal/config"
	"promo-insights-be/internal/controller"
	"promo-insights-be/internal/handler"
	"promo-insights-be/internal/pkg/logger"
	"promo-insights-be/internal/repository/memory"
	"promo-insights-be/internal/service"
	"promo-insights-be/internal/store"
	"promo-insights-be/internal/websocket"

	pktNats "promo-insights-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	DashboardController controller.IDashboardController
	FilterController    controller.IFilterController
	QueryController     controller.IQueryController
	ChatbotController   controller.IChatbotController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	DashboardWsHandler *handler.DashboardWsHandler
	WebSocketHub       *websocket.Hub

	DatasetRepository memory.IDatasetRepository
	FilterStore       *store.FilterStore
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS (optional: event auditing is off when unconfigured or unreachable)
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		}
	}

	// Redis (optional: hub falls back to single-process delivery)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/dashboard_ws.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Data & State
	datasetRepo := memory.NewDatasetRepository(cfg.Dataset.Path, cfg.Dataset.URL, sysLogger)
	if _, err := datasetRepo.Load(context.Background()); err != nil {
		// The repository swaps in an empty snapshot; serve it until a reload.
		log.Printf("[WARN] Failed to load promotion dataset, starting empty: %v", err)
	}

	filterStore := store.NewFilterStore()
	sessionRepo := memory.NewSessionRepository()

	// 4. Services
	publisherService := service.NewPublisherService(pubSub)
	filterService := service.NewFilterService(filterStore, publisherService, sysLogger)
	navigationService := service.NewNavigationService(filterStore, publisherService, sysLogger)
	dashboardService := service.NewDashboardService(datasetRepo, filterStore, sysLogger)
	exportService := service.NewExportService(datasetRepo, filterStore)
	chatService := service.NewChatService(
		sessionRepo,
		navigationService,
		cfg.Chat.BackendURL,
		time.Duration(cfg.Chat.TimeoutSeconds)*time.Second,
		sysLogger,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		dashboardService,
		wsHub,
		natsPub,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		DashboardController: controller.NewDashboardController(dashboardService, exportService, datasetRepo),
		FilterController:    controller.NewFilterController(filterService),
		QueryController:     controller.NewQueryController(navigationService),
		ChatbotController:   controller.NewChatbotController(chatService, sysLogger),

		ConsumerService: consumerService,

		DashboardWsHandler: handler.NewDashboardWsHandler(wsHub, wsLogger),
		WebSocketHub:       wsHub,

		DatasetRepository: datasetRepo,
		FilterStore:       filterStore,
	}
}
