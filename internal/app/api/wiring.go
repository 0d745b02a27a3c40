package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	catalogmemory "github.com/freshharvest/harvest-api/internal/domains/catalog/adapters/memory"
	catalogpostgres "github.com/freshharvest/harvest-api/internal/domains/catalog/adapters/persistence/postgres"
	"github.com/freshharvest/harvest-api/internal/domains/catalog/adapters/seed"
	catalogdomain "github.com/freshharvest/harvest-api/internal/domains/catalog/domain"
	catalogports "github.com/freshharvest/harvest-api/internal/domains/catalog/ports"
	ordersevents "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/events"
	ordersmemory "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/memory"
	ordersnotify "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/notify"
	orderspostgres "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/persistence/postgres"
	ordersports "github.com/freshharvest/harvest-api/internal/domains/orders/ports"
	"github.com/freshharvest/harvest-api/internal/platform/kafka"
	"github.com/freshharvest/harvest-api/internal/platform/migrations"
	platformobservability "github.com/freshharvest/harvest-api/internal/platform/observability"
	platformpostgres "github.com/freshharvest/harvest-api/internal/platform/postgres"
)

// Observability maps the config onto the platform observability settings.
func (c Config) Observability(service string) platformobservability.Config {
	return platformobservability.Config{
		ServiceName:  service,
		Environment:  c.Environment,
		LogLevel:     c.LogLevel,
		LogFormat:    c.LogFormat,
		OTLPEndpoint: c.OTLPEndpoint,
		OTLPInsecure: c.OTLPInsecure,
		StdoutTraces: c.StdoutTraces,
	}
}

type stores struct {
	products    catalogports.Repository
	orders      ordersports.Repository
	idempotency idempotencyStore
	cleanup     func()
}

// idempotencyStore is an IdempotencyStore that can also drop expired keys.
type idempotencyStore interface {
	ordersports.IdempotencyStore
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// buildStores picks Postgres when POSTGRES_DSN dials, otherwise in-memory
// stores. Either way the catalog is seeded when empty.
func buildStores(ctx context.Context, cfg Config, logger *slog.Logger) (stores, error) {
	products, err := seed.LoadFile(cfg.CatalogSeedFile)
	if err != nil {
		return stores{}, fmt.Errorf("load catalog seed: %w", err)
	}

	db, cleanup := platformpostgres.ConnectOrFallback(ctx, cfg.PostgresDSN, platformpostgres.Options{}, logger)
	var built stores
	if db == nil {
		built = stores{
			products:    catalogmemory.NewRepository(products...),
			orders:      ordersmemory.NewRepository(),
			idempotency: ordersmemory.NewIdempotencyStore(ordersmemory.WithKeyTTL(cfg.IdempotencyKeyTTL)),
			cleanup:     cleanup,
		}
	} else {
		if err := migrations.Run(db); err != nil {
			cleanup()
			return stores{}, fmt.Errorf("migrate: %w", err)
		}
		productRepo := catalogpostgres.NewRepository(db)
		if err := seedCatalog(ctx, productRepo, products); err != nil {
			cleanup()
			return stores{}, err
		}
		logger.Info("catalog and order store configured with postgres")
		built = stores{
			products:    productRepo,
			orders:      orderspostgres.NewRepository(db),
			idempotency: orderspostgres.NewIdempotencyStore(db),
			cleanup:     cleanup,
		}
	}

	if cfg.SeedDemoOrders {
		n, err := ordersmemory.SeedDemoOrders(ctx, built.orders, cfg.DeliveryLeadTime)
		if err != nil {
			built.cleanup()
			return stores{}, fmt.Errorf("seed demo orders: %w", err)
		}
		logger.Info("demo orders loaded", slog.Int("count", n))
	}
	return built, nil
}

// purgeExpiredKeys drops idempotency keys older than ttl.
func purgeExpiredKeys(ctx context.Context, store idempotencyStore, ttl time.Duration, logger *slog.Logger) {
	purged, err := store.PurgeBefore(ctx, time.Now().Add(-ttl))
	if err != nil {
		logger.WarnContext(ctx, "idempotency key purge failed", slog.String("error", err.Error()))
		return
	}
	if purged > 0 {
		logger.InfoContext(ctx, "idempotency keys purged", slog.Int64("count", purged))
	}
}

// runKeyPurge purges expired keys every interval until ctx is done.
func runKeyPurge(ctx context.Context, store idempotencyStore, ttl, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purgeExpiredKeys(ctx, store, ttl, logger)
		}
	}
}

func seedCatalog(ctx context.Context, repo catalogports.Repository, products []*catalogdomain.Product) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list catalog: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, product := range products {
		if _, err := repo.Save(ctx, product); err != nil {
			return fmt.Errorf("seed product %d: %w", product.ID, err)
		}
	}
	return nil
}

// NewNotifier returns an SMTP notifier when SMTP_USER is set, otherwise one
// that only logs.
func NewNotifier(cfg Config, logger *slog.Logger) (ordersports.Notifier, error) {
	if !cfg.SMTP.Enabled() {
		logger.Warn("SMTP_USER not set, customer e-mails are logged instead of sent")
		return ordersnotify.NewLogNotifier(logger, cfg.AppURL), nil
	}
	notifier, err := ordersnotify.NewSMTPNotifier(ordersnotify.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Secure:   cfg.SMTP.Secure,
		Username: cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		AppURL:   cfg.AppURL,
		Timeout:  cfg.SMTP.Timeout,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("SMTP notifications enabled", slog.String("host", cfg.SMTP.Host), slog.Int("port", cfg.SMTP.Port))
	return notifier, nil
}

func buildPublisher(cfg Config, logger *slog.Logger) (ordersports.EventPublisher, func()) {
	kafkaClient := kafka.NewClient(cfg.KafkaBrokers)
	if !kafkaClient.Enabled() {
		return ordersports.NoopPublisher{}, func() {}
	}
	publisher := ordersevents.NewKafkaPublisher(kafkaClient.NewWriter(cfg.KafkaOrderTopic))
	logger.Info("order events published to kafka",
		slog.Any("brokers", kafkaClient.Brokers),
		slog.String("topic", cfg.KafkaOrderTopic))
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("failed to close kafka writer", slog.String("error", err.Error()))
		}
	}
}

// DialTemporal connects a traced Temporal client unless TEMPORAL_DISABLED is set.
func DialTemporal(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{
		Tracer: instruments.Tracer("temporal-client"),
	})
	if err != nil {
		return nil, err
	}
	logger := slog.Default()
	if instruments != nil && instruments.Logger != nil {
		logger = instruments.Logger
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}
