package bootstrap

import (
	"context"
	"log"
	"time"

	"seo-assistant-be/internal/config"
	"seo-assistant-be/internal/controller"
	"seo-assistant-be/internal/handler"
	"seo-assistant-be/internal/pkg/logger"
	"seo-assistant-be/internal/repository/implementation"
	"seo-assistant-be/internal/repository/memory"
	"seo-assistant-be/internal/repository/unitofwork"
	"seo-assistant-be/internal/service"
	"seo-assistant-be/internal/toolset"
	"seo-assistant-be/internal/websocket"
	"seo-assistant-be/pkg/agent"
	"seo-assistant-be/pkg/agent/dedup"
	"seo-assistant-be/pkg/events"
	"seo-assistant-be/pkg/knowledge"
	"seo-assistant-be/pkg/llm/factory"
	"seo-assistant-be/pkg/seodata"

	pktNats "seo-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	ProjectController   controller.IProjectController
	KeywordController   controller.IKeywordController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// System logger, shared with the HTTP error handler
	Logger logger.ILogger

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
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

	// Initialize LLM Provider based on Config
	llmBaseURL := cfg.Ai.OllamaBaseURL
	if cfg.Ai.LLMProvider == "openai" {
		llmBaseURL = cfg.Ai.OpenAIBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// SEO data providers
	keywordClient := seodata.NewKeywordClient(cfg.Seo.KeywordAPIBaseURL, cfg.Seo.KeywordAPIKey)
	rankClient := seodata.NewRankClient(cfg.Seo.SerpAPIBaseURL, cfg.Seo.SerpAPIKey)
	siteClient := seodata.NewSiteClient(cfg.Seo.AuditAPIBaseURL, cfg.Seo.AuditAPIKey)
	backlinkClient := seodata.NewBacklinkClient(cfg.Seo.BacklinkAPIBaseURL, cfg.Seo.BacklinkAPIKey)

	// Knowledge base
	store := knowledge.LoadStore(cfg.Knowledge.Dir, cfg.Knowledge.MaxChunkBytes)
	retriever := knowledge.NewRetriever(store)

	// In-memory turn guard
	turnState := memory.NewTurnStateRepository()

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Domain services emit notification events through this. Stays nil when
	// NATS is down so emission is skipped rather than panicking.
	var eventPublisher events.Publisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Topics.KeywordEnrichment, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.KeywordEnrichment,
		uowFactory,
		keywordClient,
		eventPublisher,
	)

	projectService := service.NewProjectService(uowFactory, eventPublisher)
	keywordService := service.NewKeywordService(uowFactory, publisherService, eventPublisher)

	// Agent assembly: tool registry, dedup filter, executor, runner
	registry := toolset.NewRegistry(toolset.Deps{
		UowFactory:     uowFactory,
		Keywords:       keywordClient,
		Ranks:          rankClient,
		Sites:          siteClient,
		Backlinks:      backlinkClient,
		ProjectService: projectService,
		EventPublisher: eventPublisher,
	})
	dedupFilter := dedup.NewFilter(toolset.NewTrackedKeywordLookup(uowFactory))
	executor := agent.NewExecutor(
		registry,
		dedupFilter,
		time.Duration(cfg.Ai.ToolTimeout)*time.Second,
		sysLogger,
	)
	llmLogger := service.InitLLMLogger()
	runner := agent.NewRunner(
		llmProvider,
		registry,
		executor,
		retriever,
		cfg.Knowledge.MaxExcerptChars,
		llmLogger,
	)

	assistantService := service.NewAssistantService(uowFactory, runner, turnState, llmLogger)

	// 3.5 Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger)

	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		AssistantController: controller.NewAssistantController(assistantService),
		ProjectController:   controller.NewProjectController(projectService),
		KeywordController:   controller.NewKeywordController(keywordService),

		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
