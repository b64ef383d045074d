package bootstrap

import (
	"context"
	"log"
	"time"

	"jobreach-be/internal/config"
	"jobreach-be/internal/controller"
	"jobreach-be/internal/pkg/logger"
	"jobreach-be/internal/pkg/mailer"
	"jobreach-be/internal/repository/unitofwork"
	"jobreach-be/internal/service"
	"jobreach-be/internal/websocket"
	"jobreach-be/pkg/broadcast"
	"jobreach-be/pkg/embedding"
	"jobreach-be/pkg/genai"
	"jobreach-be/pkg/linking"
	"jobreach-be/pkg/store"

	pktNats "jobreach-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController        controller.IAuthController
	OAuthController       controller.IOAuthController
	UserController        controller.IUserController
	GuestController       controller.IGuestController
	LinkController        controller.ILinkController
	ProfileController     controller.IProfileController
	CompanyController     controller.ICompanyController
	ContactController     controller.IContactController
	InteractionController controller.IInteractionController
	MessageController     controller.IMessageController
	GenerationController  controller.IGenerationController
	PaymentController     controller.IPaymentController

	// Background services, run by main.go
	ConsumerService service.IConsumerService

	WebSocketHub *websocket.Hub
	Broadcaster  broadcast.Broadcaster
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	// Event bus for async generation work.
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)

	aiClient := genai.NewClient(cfg.Keys.GoogleGemini)
	embeddingProvider := embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS subscriber: %v", err)
	}

	// Redis backs the guest cache and the cross-instance broadcaster.
	// Without it both fall back to in-process implementations.
	var kv store.KV
	var broadcaster broadcast.Broadcaster
	rdb := connectRedis(cfg.App.RedisURL)
	if rdb != nil {
		kv = store.NewRedisKV(rdb, "jobreach", store.TTLDefault)
		broadcaster = broadcast.NewRedisBroadcaster(rdb, "jobreach")
	} else {
		kv = store.NewMemoryKV(time.Hour, 10*time.Minute)
		broadcaster = broadcast.NewChannelBroadcaster()
	}

	wsHub := websocket.NewHub(broadcaster, logger.NewIsolatedLogger("logs/realtime.log"))
	go wsHub.Run(context.Background())

	publisherService := service.NewPublisherService(cfg.Keys.GenerationTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.GenerationTopic,
		uowFactory,
		embeddingProvider,
		sysLogger,
	)

	linkPolicy := linking.RetryPolicy{
		MaxAttempts:  cfg.Linking.MaxAttempts,
		InitialDelay: cfg.Linking.InitialDelay,
		MaxDelay:     5 * time.Second,
	}
	linkService := service.NewLinkService(
		uowFactory,
		linkPolicy,
		broadcaster,
		natsPub,
		sysLogger,
		linking.WithMergeTimeout(cfg.Linking.MergeTimeout),
	)

	guestService := service.NewGuestService(uowFactory, kv)
	authService := service.NewAuthService(uowFactory, emailService, linkService, natsPub, broadcaster)
	oauthService := service.NewOAuthService(uowFactory, linkService)
	userService := service.NewUserService(uowFactory, linkService)
	profileService := service.NewProfileService(uowFactory)
	companyService := service.NewCompanyService(uowFactory)
	contactService := service.NewContactService(uowFactory)
	interactionService := service.NewInteractionService(uowFactory)
	messageService := service.NewMessageService(uowFactory)
	generationService := service.NewGenerationService(
		uowFactory,
		aiClient,
		embeddingProvider,
		guestService,
		publisherService,
		sysLogger,
	)
	paymentService := service.NewPaymentService(uowFactory, natsPub, sysLogger)

	if natsSub != nil {
		eventListener := service.NewEventListenerService(uowFactory, natsSub, emailService, sysLogger)
		eventListener.Start()
	}

	return &Container{
		AuthController:        controller.NewAuthController(authService),
		OAuthController:       controller.NewOAuthController(oauthService),
		UserController:        controller.NewUserController(userService),
		GuestController:       controller.NewGuestController(guestService),
		LinkController:        controller.NewLinkController(linkService),
		ProfileController:     controller.NewProfileController(profileService),
		CompanyController:     controller.NewCompanyController(companyService),
		ContactController:     controller.NewContactController(contactService),
		InteractionController: controller.NewInteractionController(interactionService),
		MessageController:     controller.NewMessageController(messageService),
		GenerationController:  controller.NewGenerationController(generationService),
		PaymentController:     controller.NewPaymentController(paymentService),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
		Broadcaster:     broadcaster,
	}
}

func connectRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (using in-process fallbacks)", err)
		return nil
	}
	return rdb
}
