package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"cancelflow-be/internal/config"
	"cancelflow-be/internal/controller"
	"cancelflow-be/internal/entity"
	"cancelflow-be/internal/pkg/logger"
	"cancelflow-be/internal/pkg/mailer"
	"cancelflow-be/internal/repository/boltstore"
	"cancelflow-be/internal/repository/cache"
	"cancelflow-be/internal/repository/memory"
	"cancelflow-be/internal/repository/unitofwork"
	"cancelflow-be/internal/service"
	"cancelflow-be/pkg/abtest"
	"cancelflow-be/pkg/database"
	pktNats "cancelflow-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	CancellationController controller.ICancellationController
	SessionController      controller.ISessionController
	HealthController       controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func() error
}

func NewContainer(cfg *config.Config) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	// 1. Record store
	uowFactory, err := c.newRepositoryFactory(cfg)
	if err != nil {
		c.Close()
		return nil, err
	}
	if cfg.Database.StoreDriver != config.StoreDriverPostgres {
		if err := seedDemoSubscription(context.Background(), uowFactory, cfg.Demo); err != nil {
			c.Close()
			return nil, fmt.Errorf("seed demo subscription: %w", err)
		}
	}

	assigner, err := abtest.New(cfg.Experiment.VariantPolicy)
	if err != nil {
		c.Close()
		return nil, err
	}

	// 2. Variant cache, only worth it in front of a durable store
	var variantCache cache.VariantCache = cache.NoopVariantCache{}
	if cfg.App.RedisURL != "" && cfg.Database.StoreDriver != config.StoreDriverMemory {
		if rdb := c.connectRedis(cfg.App.RedisURL); rdb != nil {
			variantCache = cache.NewRedisVariantCache(rdb, cfg.Experiment.VariantCacheTTL)
		}
	}

	// 3. Event Bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	c.closers = append(c.closers, pubSub.Close)

	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
			natsPub = nil
		} else {
			c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
		}
	}

	var emailService mailer.IEmailService
	if cfg.SMTP.Host != "" {
		emailService = mailer.NewEmailService(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Email,
			cfg.SMTP.Password,
			cfg.SMTP.Email,
			cfg.SMTP.SenderName,
		)
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Events.Topic, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Events.Topic,
		uowFactory,
		pktNats.NewRelay(natsPub, sysLogger),
		emailService,
		sysLogger,
	)

	cancellationService := service.NewCancellationService(uowFactory, assigner, variantCache, publisherService, sysLogger)
	sessionService := service.NewSessionService(uowFactory, cfg.Demo.UserID, cfg.Demo.UserEmail)

	// 5. Controllers
	c.CancellationController = controller.NewCancellationController(cancellationService)
	c.SessionController = controller.NewSessionController(sessionService)
	c.HealthController = controller.NewHealthController()

	log.Printf("[INFO] Store: %s, variant policy: %s", cfg.Database.StoreDriver, assigner.Policy())
	return c, nil
}

// Close releases every connection the container opened, newest first.
func (c *Container) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return errors.Join(errs...)
}

func (c *Container) newRepositoryFactory(cfg *config.Config) (unitofwork.RepositoryFactory, error) {
	switch cfg.Database.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			c.closers = append(c.closers, sqlDB.Close)
		}
		return unitofwork.NewRepositoryFactory(db), nil

	case config.StoreDriverBolt:
		store, err := boltstore.Open(cfg.Database.BoltPath)
		if err != nil {
			return nil, fmt.Errorf("open bolt store: %w", err)
		}
		c.closers = append(c.closers, store.Close)
		return boltstore.NewRepositoryFactory(store), nil

	case config.StoreDriverMemory, "":
		return memory.NewRepositoryFactory(memory.NewStore(cfg.Database.MemoryStoreTTL)), nil

	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Database.StoreDriver)
	}
}

func (c *Container) connectRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: url}
	}

	rdb := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (variant cache disabled)", err)
		_ = rdb.Close()
		return nil
	}

	c.closers = append(c.closers, rdb.Close)
	return rdb
}

// seedDemoSubscription makes sure the demo user has an active subscription to cancel.
func seedDemoSubscription(ctx context.Context, factory unitofwork.RepositoryFactory, demo config.DemoConfig) error {
	userId, err := uuid.Parse(demo.UserID)
	if err != nil {
		return fmt.Errorf("MOCK_USER_ID: %w", err)
	}

	repo := factory.NewUnitOfWork(ctx).SubscriptionRepository()
	existing, err := repo.FindByUserID(ctx, userId)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	return repo.Save(ctx, &entity.Subscription{
		ID:           demo.SubscriptionID,
		UserID:       userId,
		Email:        demo.UserEmail,
		MonthlyPrice: demo.SubscriptionPrice,
		Status:       entity.SubscriptionStatusActive,
	})
}
