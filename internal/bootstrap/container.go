package bootstrap

import (
	"context"
	"log"
	"os"

	"ai-recruiting-be/internal/config"
	"ai-recruiting-be/internal/controller"
	"ai-recruiting-be/internal/handler"
	"ai-recruiting-be/internal/pkg/logger"
	"ai-recruiting-be/internal/repository/unitofwork"
	"ai-recruiting-be/internal/service"
	"ai-recruiting-be/internal/websocket"
	"ai-recruiting-be/pkg/embedding"
	"ai-recruiting-be/pkg/extract"
	"ai-recruiting-be/pkg/llm/factory"
	pktNats "ai-recruiting-be/pkg/nats"
	"ai-recruiting-be/pkg/rag/search"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	CandidateController controller.ICandidateController
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	// Logger (Exposed for flushing on shutdown)
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

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else if cfg.Keys.GoogleGemini != "" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, "")
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	} else {
		log.Printf("[WARN] No embedding provider configured; vectors will be skipped")
	}

	embeddingService := embedding.NewEmbeddingService(embeddingProvider, cfg.Ai.QueryCacheTTL)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Extraction pipeline
	pipeline := extract.NewPipeline(
		extract.NewDocconvExtractor(),
		extract.NewNativePdfExtractor(),
		extract.NewGeminiVisionProvider(cfg.Keys.GoogleGemini, cfg.Ai.VisionModel, cfg.Extract.OCRTimeout),
		cfg.Extract.MaxFileSizeBytes,
	)

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

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

	// 5. Services
	searchOrchestrator := search.NewOrchestrator(
		embeddingService,
		log.New(os.Stdout, "[search] ", log.LstdFlags),
	)

	publisherService := service.NewPublisherService(cfg.Keys.EmbedTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		uowFactory,
		embeddingService,
	)

	memoryService := service.NewMemoryService(
		uowFactory,
		embeddingService,
		sysLogger,
		cfg.Chat.SessionReuseWindow,
	)

	candidateService := service.NewCandidateService(
		uowFactory,
		pipeline,
		publisherService,
		natsPub,
		searchOrchestrator,
		sysLogger,
	)

	assistantService := service.NewAssistantService(
		uowFactory,
		memoryService,
		searchOrchestrator,
		llmProvider,
		sysLogger,
	)

	// Notification worker: NATS -> websocket hub
	if natsSub != nil {
		notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
		go func() {
			if err := notifService.Start(); err != nil {
				log.Printf("[WARN] Notification worker failed to start: %v", err)
			}
		}()
	}

	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	// 6. Controllers
	return &Container{
		CandidateController: controller.NewCandidateController(candidateService),
		AssistantController: controller.NewAssistantController(assistantService, memoryService),

		ConsumerService: consumerService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,

		Logger: sysLogger,
	}
}
