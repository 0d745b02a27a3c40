package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	storefrontserver "github.com/freshharvest/harvest-api/go"

	catalogobs "github.com/freshharvest/harvest-api/internal/domains/catalog/adapters/observability"
	catalogapp "github.com/freshharvest/harvest-api/internal/domains/catalog/application"
	orderscatalog "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/catalog"
	ordersobs "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/observability"
	ordersworkflows "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/freshharvest/harvest-api/internal/domains/orders/application"
	ordersports "github.com/freshharvest/harvest-api/internal/domains/orders/ports"
	"github.com/freshharvest/harvest-api/internal/platform/metrics"
	platformobservability "github.com/freshharvest/harvest-api/internal/platform/observability"
)

const serviceName = "harvest-api"

func keyPurgeInterval(ttl time.Duration) time.Duration {
	if ttl < time.Hour {
		return ttl
	}
	return time.Hour
}

// Run boots the storefront HTTP API with observability, stores, and
// notification delivery wired. It returns once ctx is cancelled and the
// server has drained.
func Run(ctx context.Context, cfg Config) error {
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability(serviceName))
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	stores, err := buildStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer stores.cleanup()
	purgeCtx, stopPurge := context.WithCancel(ctx)
	defer stopPurge()
	go runKeyPurge(purgeCtx, stores.idempotency, cfg.IdempotencyKeyTTL, keyPurgeInterval(cfg.IdempotencyKeyTTL), logger)

	catalogService := catalogobs.New(
		catalogapp.NewService(stores.products),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)

	notifier, err := NewNotifier(cfg, logger)
	if err != nil {
		return err
	}
	var dispatcher ordersports.NotificationDispatcher
	inline := ordersworkflows.NewInlineNotifications(notifier, logger)
	dispatcher = inline
	defer inline.Wait()
	if temporalClient, err := DialTemporal(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, sending notifications inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		dispatcher = ordersworkflows.NewTemporalNotifications(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	publisher, closePublisher := buildPublisher(cfg, logger)
	defer closePublisher()

	orderService := ordersobs.New(
		ordersapp.NewService(stores.orders,
			ordersapp.WithCatalog(orderscatalog.NewResolver(catalogService)),
			ordersapp.WithNotifications(dispatcher),
			ordersapp.WithEventPublisher(publisher),
			ordersapp.WithIdempotencyStore(stores.idempotency),
			ordersapp.WithDeliveryLeadTime(cfg.DeliveryLeadTime),
			ordersapp.WithLogger(logger),
		),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	handlers := storefrontserver.ApiHandleFunctions{
		CatalogAPI: storefrontserver.NewCatalogAPI(catalogService),
		OrderAPI:   storefrontserver.NewOrderAPI(orderService),
		AdminAPI:   storefrontserver.NewAdminAPI(orderService),
		AdminGate:  storefrontserver.AdminTokenGate(cfg.AdminToken),
		Metrics:    metrics.NewServerMetrics("api", registry),
	}
	if cfg.AdminToken == "" {
		logger.Warn("ADMIN_TOKEN not set, admin routes are open")
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	router := storefrontserver.NewRouterWithGinEngine(engine, handlers)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Fresh Harvest API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("Fresh Harvest API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down Fresh Harvest API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
