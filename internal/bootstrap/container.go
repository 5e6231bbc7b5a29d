package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"ai-mediagen-be/internal/config"
	"ai-mediagen-be/internal/controller"
	"ai-mediagen-be/internal/handler"
	"ai-mediagen-be/internal/pkg/logger"
	"ai-mediagen-be/internal/pkg/mailer"
	"ai-mediagen-be/internal/pkg/serverutils"
	"ai-mediagen-be/internal/repository/memory"
	"ai-mediagen-be/internal/repository/unitofwork"
	"ai-mediagen-be/internal/service"
	"ai-mediagen-be/internal/websocket"
	"ai-mediagen-be/pkg/chat/session"
	genOpenAI "ai-mediagen-be/pkg/generation/openai"
	"ai-mediagen-be/pkg/llm/factory"
	"ai-mediagen-be/pkg/media/lifecycle"
	pktNats "ai-mediagen-be/pkg/nats"
	"ai-mediagen-be/pkg/storage/local"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController   controller.IChatController
	ImageController  controller.IImageController
	SpeechController controller.ISpeechController

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	NotificationService service.INotificationService
	WebSocketHub        *websocket.Hub

	Logger logger.ILogger

	closers          []func()
	deliveryFailures atomic.Int64
}

// Start launches the background workers. They stop when ctx is cancelled.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)
	go c.watchDeliveryErrors(ctx)
	return c.NotificationService.Start(ctx)
}

// DeliveryFailures counts notification deliveries that failed since Start.
func (c *Container) DeliveryFailures() int64 {
	return c.deliveryFailures.Load()
}

func (c *Container) watchDeliveryErrors(ctx context.Context) {
	errs := c.NotificationService.Errors()
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errs:
			if !ok {
				return
			}
			total := c.deliveryFailures.Add(1)
			c.Logger.Debug("Container", "Notification delivery failure recorded", map[string]interface{}{
				"error": err,
				"total": total,
			})
		}
	}
}

// Close releases broker and cache connections in reverse creation order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	wsLogger := logger.NewIsolatedLogger(cfg.App.NotificationLog)
	c := &Container{Logger: sysLogger}

	// 2. Adapters
	llmProvider, err := factory.NewLLMProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	sysLogger.Info("Bootstrap", "LLM provider ready", map[string]interface{}{"provider": cfg.Ai.LLMProvider})

	synthesizer := genOpenAI.NewSynthesizer(genOpenAI.Config{
		APIKey:      cfg.OpenAI.APIKey,
		BaseURL:     cfg.OpenAI.BaseURL,
		SpeechModel: cfg.OpenAI.SpeechModel,
	})

	store, err := local.NewStore(local.Config{
		Dir:           cfg.App.UploadDir,
		PublicBaseURL: strings.TrimRight(cfg.App.BaseURL, "/") + "/uploads",
	})
	if err != nil {
		return nil, fmt.Errorf("init artifact store: %w", err)
	}

	// 3. Infrastructure
	sinks := service.NotificationSinks{}

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		sysLogger.Warn("Bootstrap", "NATS unavailable, domain events disabled", map[string]interface{}{"error": err})
	} else {
		sinks.Events = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	rdb := newRedisClient(cfg.App.RedisURL, sysLogger)
	if rdb != nil {
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	wsHub := websocket.NewHub(rdb, wsLogger)
	sinks.Delivery = wsHub

	if cfg.SMTP.Host != "" {
		sinks.Email = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
			cfg.App.BaseURL,
		)
	}

	// 4. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })
	notifService := service.NewNotificationService(pubSub, pubSub, sinks, wsLogger)

	// 5. Domain
	sessionManager := session.NewManager(memory.NewSessionRepository(), cfg.App.EnforceOwnership)
	imageManager := lifecycle.NewImageManager(cfg.App.EnforceOwnership)
	speechManager := lifecycle.NewSpeechManager(cfg.App.EnforceOwnership)

	generationService := service.NewGenerationService(
		uowFactory,
		sessionManager,
		llmProvider,
		synthesizer,
		synthesizer,
		store,
		notifService,
		sysLogger,
		service.GenerationOptions{
			Timeout: cfg.Generation.Timeout,
			TempDir: cfg.App.TempDir,
		},
	)
	chatService := service.NewChatService(uowFactory, sessionManager, sysLogger)
	mediaService := service.NewMediaService(uowFactory, imageManager, speechManager, notifService, sysLogger)

	// 6. Controllers
	auth := serverutils.JwtMiddleware(cfg.Auth.JwtSecret)

	c.ChatController = controller.NewChatController(generationService, chatService, auth)
	c.ImageController = controller.NewImageController(generationService, mediaService, auth)
	c.SpeechController = controller.NewSpeechController(generationService, mediaService, auth)
	c.NotificationHandler = handler.NewNotificationHandler(wsHub, cfg.Auth.JwtSecret, wsLogger)
	c.NotificationService = notifService
	c.WebSocketHub = wsHub

	return c, nil
}

// newRedisClient returns nil when Redis is not configured or unreachable;
// the hub then delivers to local connections only.
func newRedisClient(url string, log logger.ILogger) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using it as address", map[string]interface{}{"error": err})
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Warn("Bootstrap", "Redis unavailable, websocket fan-out is local only", map[string]interface{}{"error": err})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
