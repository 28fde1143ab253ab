package bootstrap

import (
	"context"

	"rental-marketplace-be/internal/config"
	"rental-marketplace-be/internal/controller"
	"rental-marketplace-be/internal/handler"
	"rental-marketplace-be/internal/pkg/logger"
	"rental-marketplace-be/internal/pkg/mailer"
	"rental-marketplace-be/internal/pkg/serverutils"
	"rental-marketplace-be/internal/repository/unitofwork"
	"rental-marketplace-be/internal/service"
	"rental-marketplace-be/internal/websocket"
	"rental-marketplace-be/pkg/admin/dashboard"
	"rental-marketplace-be/pkg/admin/refund"
	"rental-marketplace-be/pkg/clients"
	"rental-marketplace-be/pkg/contractdoc"
	"rental-marketplace-be/pkg/esign"
	"rental-marketplace-be/pkg/events"
	"rental-marketplace-be/pkg/gateway/payout"
	"rental-marketplace-be/pkg/gateway/vnpay"
	"rental-marketplace-be/pkg/lock"

	pktNats "rental-marketplace-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const contractDispatchTopic = "contract-dispatch"

type Container struct {
	// Controllers
	RentalRequestController controller.IRentalRequestController
	AgreementController     controller.IAgreementController
	PaymentController       controller.IPaymentController
	ContractController      controller.IContractController
	WithdrawalController    controller.IWithdrawalController
	WalletController        controller.IWalletController
	AdminController         controller.IAdminController

	// Services reused by the ops CLI
	AgreementService service.IAgreementService
	ContractService  service.IContractService
	PaymentService   service.IPaymentService
	WalletService    service.IWalletService

	// Background services, run by cmd/rest
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub

	AuthMiddleware fiber.Handler
	Logger         logger.ILogger

	closers []func()
}

// Close releases broker connections opened by NewContainer.
func (c *Container) Close() {
	for _, fn := range c.closers {
		fn()
	}
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	// 2. Dispatch retry queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	container := &Container{
		Logger:         sysLogger,
		AuthMiddleware: serverutils.NewJwtMiddleware(cfg.App.JWTSecret),
	}

	// 3. Infrastructure
	// NATS. A nil interface disables events rather than a typed nil pointer.
	var publisher events.Publisher
	var subscriber service.EventSubscriber
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		sysLogger.Warn("Bootstrap", "Failed to connect to NATS publisher", map[string]interface{}{"error": err.Error()})
	} else {
		publisher = natsPub
		container.closers = append(container.closers, natsPub.Close)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		sysLogger.Warn("Bootstrap", "Failed to connect to NATS subscriber", map[string]interface{}{"error": err.Error()})
	} else {
		subscriber = natsSub
		container.closers = append(container.closers, natsSub.Close)
	}

	// Redis backs both the callback locks and cross-instance websocket pushes.
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		sysLogger.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	var locker lock.Locker
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		sysLogger.Warn("Bootstrap", "Failed to connect to Redis, using in-process locks", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		rdb = nil
		locker = lock.NewMemoryLocker()
	} else {
		locker = lock.NewRedisLocker(rdb)
		container.closers = append(container.closers, func() { _ = rdb.Close() })
	}

	// Gateways
	httpClient := clients.NewHTTPClientAdapter(cfg.Workflow.GatewayTimeout)
	vnpayClient := vnpay.NewClient(vnpay.Config{
		TmnCode:    cfg.VNPay.TmnCode,
		HashSecret: cfg.VNPay.HashSecret,
		PayURL:     cfg.VNPay.PayURL,
		ReturnURL:  cfg.VNPay.ReturnURL,
	})
	payoutClient := payout.NewClient(payout.Config{
		BaseURL:    cfg.Payout.BaseURL,
		MerchantID: cfg.Payout.MerchantID,
		HashSecret: cfg.Payout.HashSecret,
		ReturnURL:  cfg.Payout.ReturnURL,
	}, httpClient)
	signer := esign.NewHTTPClient(cfg.ESign.BaseURL, cfg.ESign.APIKey, httpClient)
	documents := contractdoc.NewLocalStore(cfg.App.UploadDir, cfg.App.BaseURL)

	env := midtrans.Sandbox
	if cfg.Midtrans.IsProduction {
		env = midtrans.Production
	}
	var snapClient snap.Client
	snapClient.New(cfg.Midtrans.ServerKey, env)

	// 4. Services
	walletService := service.NewWalletService(uowFactory, sysLogger)
	agreementService := service.NewAgreementService(uowFactory, emailService, locker, publisher, sysLogger, cfg)
	rentalRequestService := service.NewRentalRequestService(uowFactory, agreementService, publisher, sysLogger)

	dispatchQueue := service.NewPublisherService(contractDispatchTopic, pubSub)
	contractService := service.NewContractService(
		uowFactory,
		signer,
		documents,
		emailService,
		locker,
		dispatchQueue,
		publisher,
		sysLogger,
		cfg,
	)
	consumerService := service.NewConsumerService(
		pubSub,
		contractDispatchTopic,
		contractService,
		sysLogger,
		cfg.Workflow.DispatchAttempts,
		cfg.Workflow.DispatchBackoff,
	)

	paymentService := service.NewPaymentService(
		uowFactory,
		vnpayClient,
		&snapClient,
		walletService,
		contractService,
		emailService,
		locker,
		publisher,
		sysLogger,
		cfg,
	)
	adminService := service.NewAdminService(
		uowFactory,
		publisher,
		sysLogger,
		refund.NewProcessor(sysLogger),
		dashboard.NewAggregator(sysLogger),
	)
	withdrawalService := service.NewWithdrawalService(uowFactory, payoutClient, walletService, emailService, publisher, sysLogger, cfg)

	// 5. Notification System Infrastructure
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	notifService := service.NewNotificationService(uowFactory, subscriber, wsHub, wsLogger)
	notifHandler := handler.NewNotificationHandler(notifService, wsHub, cfg.App.JWTSecret, wsLogger)

	// 6. Controllers
	container.RentalRequestController = controller.NewRentalRequestController(rentalRequestService)
	container.AgreementController = controller.NewAgreementController(agreementService)
	container.PaymentController = controller.NewPaymentController(paymentService, sysLogger)
	container.ContractController = controller.NewContractController(contractService, sysLogger)
	container.WithdrawalController = controller.NewWithdrawalController(withdrawalService, sysLogger)
	container.WalletController = controller.NewWalletController(walletService)
	container.AdminController = controller.NewAdminController(adminService, agreementService, contractService, paymentService, walletService)

	container.AgreementService = agreementService
	container.ContractService = contractService
	container.PaymentService = paymentService
	container.WalletService = walletService

	container.ConsumerService = consumerService
	container.NotificationService = notifService
	container.NotificationHandler = notifHandler
	container.WebSocketHub = wsHub
	container.closers = append(container.closers, func() { _ = pubSub.Close() })

	return container
}
