package bootstrap

import (
	"context"
	"log"
	"time"

	"agency-configurator-be/internal/config"
	"agency-configurator-be/internal/controller"
	"agency-configurator-be/internal/handler"
	"agency-configurator-be/internal/pkg/logger"
	"agency-configurator-be/internal/pkg/mailer"
	"agency-configurator-be/internal/pkg/serverutils"
	"agency-configurator-be/internal/repository/memory"
	"agency-configurator-be/internal/repository/unitofwork"
	"agency-configurator-be/internal/service"
	"agency-configurator-be/internal/websocket"
	"agency-configurator-be/pkg/clock"
	"agency-configurator-be/pkg/events"
	"agency-configurator-be/pkg/ratelimit"

	pktNats "agency-configurator-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	OptionController        controller.IOptionController
	QuestionnaireController controller.IQuestionnaireController
	ConfiguratorController  controller.IConfiguratorController
	SessionController       controller.ISessionController
	LeadController          controller.ILeadController
	AdminController         controller.IAdminController
	HealthController        controller.IHealthController
	LeadFeedHandler         *handler.LeadFeedHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	SessionService  service.IConfigurationSessionService
	LeadFeedHub     *websocket.Hub

	Logger logger.ILogger

	closers []func()
}

type options struct {
	clock        clock.Clock
	logger       logger.ILogger
	emailService mailer.IEmailService
	publisher    events.Publisher
}

type Option func(*options)

func WithClock(clk clock.Clock) Option {
	return func(o *options) { o.clock = clk }
}

func WithLogger(l logger.ILogger) Option {
	return func(o *options) { o.logger = l }
}

func WithEmailService(s mailer.IEmailService) Option {
	return func(o *options) { o.emailService = s }
}

func WithEventPublisher(p events.Publisher) Option {
	return func(o *options) { o.publisher = p }
}

func NewContainer(db *gorm.DB, cfg *config.Config, opts ...Option) *Container {
	o := options{clock: clock.Real()}
	for _, opt := range opts {
		opt(&o)
	}
	c := &Container{}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	if o.logger == nil {
		o.logger = logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	}
	c.Logger = o.logger

	if o.emailService == nil {
		o.emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.SenderName,
		)
	}

	// 2. Event Bus (in-process)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// 3. Infrastructure, every broker is optional
	if o.publisher == nil {
		o.publisher = c.connectNats(cfg.App.NatsURL)
	}
	rdb := c.connectRedis(cfg.App.RedisURL)
	var rateLimitStorage fiber.Storage
	if rdb != nil {
		rateLimitStorage = ratelimit.NewRedisStorage(rdb, "ratelimit:")
	}

	c.LeadFeedHub = websocket.NewHub(rdb, o.logger)
	eventPublisher := events.Fanout{o.publisher, c.LeadFeedHub}

	// 4. Services
	optionCache := memory.NewOptionCache(o.clock, cfg.Catalog.CacheTTL)
	catalogService := service.NewCatalogService(uowFactory, optionCache, o.clock, o.logger)
	pricingService := service.NewPricingService(catalogService, cfg.Pricing.TaxRate)
	questionnaireService := service.NewQuestionnaireService(uowFactory, catalogService, o.clock, o.logger)
	sessionService := service.NewConfigurationSessionService(uowFactory, o.clock, cfg.Session.TTL, eventPublisher, o.logger)
	recommendationService := service.NewRecommendationService(questionnaireService, sessionService, o.logger)

	publisherService := service.NewPublisherService(cfg.Notification.Topic, pubSub)
	leadService := service.NewLeadService(
		uowFactory,
		pricingService,
		sessionService,
		eventPublisher,
		publisherService,
		o.clock,
		o.logger,
	)
	adminService := service.NewAdminService(uowFactory, o.logger)

	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Notification.Topic,
		uowFactory,
		o.emailService,
		cfg.Notification.AgencyInbox,
	)
	c.SessionService = sessionService

	// 5. Controllers
	c.OptionController = controller.NewOptionController(catalogService)
	c.QuestionnaireController = controller.NewQuestionnaireController(questionnaireService)
	c.ConfiguratorController = controller.NewConfiguratorController(recommendationService, pricingService)
	c.SessionController = controller.NewSessionController(sessionService)
	c.LeadController = controller.NewLeadController(leadService, cfg.App.JwtSecret, newLeadLimiter(cfg, rateLimitStorage))
	c.AdminController = controller.NewAdminController(
		adminService,
		catalogService,
		questionnaireService,
		leadService,
		sessionService,
		cfg.App.JwtSecret,
	)
	c.HealthController = controller.NewHealthController(db)
	c.LeadFeedHandler = handler.NewLeadFeedHandler(c.LeadFeedHub, cfg.App.JwtSecret, o.logger)

	return c
}

func (c *Container) connectNats(url string) events.Publisher {
	if url == "" {
		log.Printf("[INFO] NATS_URL not set, domain events are not published")
		return events.NopPublisher{}
	}
	natsPub, err := pktNats.NewPublisher(url)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		return events.NopPublisher{}
	}
	c.closers = append(c.closers, natsPub.Close)
	return natsPub
}

// connectRedis returns nil when no Redis is reachable. The limiter then keeps
// its counters in memory and the lead feed stays local to this instance.
func (c *Container) connectRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: url,
		}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v. Running without Redis", err)
		_ = rdb.Close()
		return nil
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return rdb
}

func newLeadLimiter(cfg *config.Config, storage fiber.Storage) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.RateLimit.Max,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(ctx *fiber.Ctx) string {
			return ctx.IP()
		},
		LimitReached: func(ctx *fiber.Ctx) error {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(
				serverutils.ErrorResponse(fiber.StatusTooManyRequests, "Too many requests, please retry later"),
			)
		},
		Storage: storage,
	})
}

// Close releases broker connections in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
}
