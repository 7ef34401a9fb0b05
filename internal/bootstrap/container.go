package bootstrap

import (
	"log"

	"space-admin-be/internal/config"
	"space-admin-be/internal/controller"
	"space-admin-be/internal/pkg/logger"
	"space-admin-be/internal/pkg/mailer"
	"space-admin-be/internal/repository/unitofwork"
	"space-admin-be/internal/service"
	"space-admin-be/pkg/admin/commission"
	adminEvents "space-admin-be/pkg/admin/events"
	"space-admin-be/pkg/admin/fees"
	"space-admin-be/pkg/admin/ledger"
	"space-admin-be/pkg/admin/refund"
	"space-admin-be/pkg/processor"

	pkgNats "space-admin-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	BookingController      controller.IBookingController
	FeeController          controller.IFeeController
	ReportController       controller.IReportController
	NotificationController controller.INotificationController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
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
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 3. Payment Domain Components
	gateway := processor.NewStripeGateway(cfg.Keys.StripeSecretKey)
	adminEventPublisher := adminEvents.NewNatsPublisher(natsPub, sysLogger)
	settingsProvider := fees.NewSettingsProvider(uowFactory, sysLogger)
	ledgerUpdater := ledger.NewUpdater(sysLogger)
	refundEngine := refund.NewEngine(sysLogger, gateway, settingsProvider, ledgerUpdater, adminEventPublisher)
	reportAggregator := commission.NewAggregator(sysLogger, gateway, settingsProvider)

	// 4. Services
	authService := service.NewAuthService(uowFactory, sysLogger)
	notificationService := service.NewNotificationService(uowFactory, sysLogger)
	bookingService := service.NewBookingService(
		uowFactory,
		refundEngine,
		ledgerUpdater,
		settingsProvider,
		gateway,
		adminEventPublisher,
		pubSub,
		sysLogger,
	)
	feeService := service.NewFeeService(settingsProvider, adminEventPublisher, sysLogger)
	reportService := service.NewReportService(uowFactory, reportAggregator)

	consumerService := service.NewConsumerService(
		pubSub,
		uowFactory,
		emailService,
		notificationService,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		AuthController:         controller.NewAuthController(authService),
		BookingController:      controller.NewBookingController(bookingService),
		FeeController:          controller.NewFeeController(feeService),
		ReportController:       controller.NewReportController(reportService),
		NotificationController: controller.NewNotificationController(notificationService),

		ConsumerService: consumerService,
	}
}
