package setup

import (
	"context"
	"errors"
	"fmt"

	"github.com/drovo/drovo-service/internal/config"
	"github.com/drovo/drovo-service/internal/domain"
	"github.com/drovo/drovo-service/internal/infrastructure/auth"
	"github.com/drovo/drovo-service/internal/infrastructure/imagestore"
	publisher "github.com/drovo/drovo-service/internal/infrastructure/kafka"
	"github.com/drovo/drovo-service/internal/infrastructure/logger"
	"github.com/drovo/drovo-service/internal/infrastructure/metrics"
	"github.com/drovo/drovo-service/internal/infrastructure/migrate"
	"github.com/drovo/drovo-service/internal/infrastructure/notifier"
	"github.com/drovo/drovo-service/internal/infrastructure/postgres"
	"github.com/drovo/drovo-service/internal/infrastructure/postgres/repository"
	"github.com/drovo/drovo-service/internal/infrastructure/razorpay"
	"github.com/drovo/drovo-service/internal/infrastructure/vault"
	"github.com/drovo/drovo-service/internal/usecase/external"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrEncryptionConfig = errors.New("bank details encryption is misconfigured")

type Dependencies struct {
	Config       *config.DrovoConfig
	Logger       *zap.Logger
	DB           *gorm.DB
	Registry     *prometheus.Registry
	Metrics      *metrics.DrovoMetrics
	Repositories *Repositories

	OrderPublisher domain.OrderEventPublisher
	Gateway        *razorpay.HTTPGateway
	Images         domain.ImageStore
	Cipher         domain.BankDetailsCipher
	Auth           domain.Authenticator
	Mailer         domain.Mailer
	Notifier       domain.Notifier
	Audit          domain.PaymentAuditLogger
	Caller         *external.Caller

	// ChatSession is nil unless WhatsApp delivery is enabled.
	ChatSession *notifier.Session

	closers []func() error
}

type Repositories struct {
	ShopRepo  domain.ShopRepository
	FoodRepo  domain.FoodRepository
	OrderRepo domain.OrderRepository
	UserRepo  domain.UserRepository
}

func InitializeDependencies(ctx context.Context, cfg *config.DrovoConfig, log *zap.Logger) (*Dependencies, error) {
	db, err := postgres.InitDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	deps := &Dependencies{Config: cfg, Logger: log, DB: db}
	deps.closers = append(deps.closers, func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})

	if cfg.DB.MigrateOnStart {
		if err := migrate.RunMigrations(db, cfg.DB.MigrationsPath, log); err != nil {
			deps.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Metrics = metrics.NewDrovoMetrics(deps.Registry)

	deps.Repositories = &Repositories{
		ShopRepo:  repository.NewDefaultShopRepository(db),
		FoodRepo:  repository.NewDefaultFoodRepository(db),
		OrderRepo: repository.NewDefaultOrderRepository(db),
		UserRepo:  repository.NewDefaultUserRepository(db),
	}

	keyring, err := vault.NewKeyringFromSpec(cfg.Crypto.Keys, cfg.Crypto.ActiveKeyID)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("%w: %v", ErrEncryptionConfig, err)
	}
	deps.Cipher = keyring

	images, err := imagestore.NewCloudinaryStore(cfg.Cloudinary)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("image store: %w", err)
	}
	deps.Images = images

	deps.Gateway = razorpay.NewHTTPGateway(cfg.Razorpay, log.Named("razorpay"), deps.Metrics)
	deps.OrderPublisher = initOrderPublisher(deps)
	deps.Auth = auth.NewJWTAuthenticator(cfg.Auth.JWTSecret)
	deps.Audit = logger.NewPGPaymentAuditLogger(db)
	deps.Caller = external.NewCaller(log.Named("external"), deps.Metrics)

	dispatcher, err := initDispatcher(ctx, deps)
	if err != nil {
		deps.Close()
		return nil, fmt.Errorf("notifier: %w", err)
	}
	deps.Notifier = dispatcher

	return deps, nil
}

func initOrderPublisher(deps *Dependencies) domain.OrderEventPublisher {
	cfg := deps.Config.Kafka
	if len(cfg.Brokers) == 0 {
		deps.Logger.Warn("kafka brokers not configured, order events are dropped")
		return publisher.NoopPublisher{}
	}
	p := publisher.NewDefaultKafkaPublisher(cfg.Brokers, cfg.OrderTopic)
	deps.closers = append(deps.closers, p.Close)
	return p
}

// initDispatcher only assigns configured channels; an unset interface field
// is how the dispatcher knows to skip a channel.
func initDispatcher(ctx context.Context, deps *Dependencies) (*notifier.Dispatcher, error) {
	cfg := deps.Config
	d := &notifier.Dispatcher{
		Logger:  deps.Logger.Named("notifier"),
		Metrics: deps.Metrics,
	}

	mailer := notifier.NewSMTPMailer(cfg.SMTP)
	deps.Mailer = mailer
	if cfg.SMTP.Username != "" {
		d.Email = mailer
	} else {
		deps.Logger.Warn("smtp credentials not configured, email notifications disabled")
	}

	if cfg.Firebase.ProjectID != "" {
		pusher, err := notifier.NewFCMPusher(ctx, cfg.Firebase)
		if err != nil {
			return nil, fmt.Errorf("firebase: %w", err)
		}
		d.Push = pusher
	}

	if cfg.WhatsApp.Enabled {
		session := notifier.NewSession(
			notifier.NewCloudTransport(cfg.WhatsApp),
			cfg.WhatsApp.MinBackoff,
			cfg.WhatsApp.MaxBackoff,
			deps.Logger.Named("whatsapp"),
			deps.Metrics,
		)
		deps.ChatSession = session
		d.Chat = session
	}

	return d, nil
}

// Ping reports whether the database answers.
func (d *Dependencies) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases resources in reverse acquisition order.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.Logger.Warn("close dependency", zap.Error(err))
		}
	}
	d.closers = nil
}
