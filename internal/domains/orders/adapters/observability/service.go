package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	orderstypes "github.com/freshharvest/harvest-api/internal/domains/orders/application/types"
	ordersdomain "github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	ordersports "github.com/freshharvest/harvest-api/internal/domains/orders/ports"
)

const tracerName = "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/observability/service"

// Service decorates the orders service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core orders service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.CreateOrder",
		trace.WithAttributes(attribute.String("order.product_id", input.ProductID)))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.String("order.product_id", input.ProductID))
	result, err := s.inner.CreateOrder(ctx, input)
	if err != nil {
		s.metrics.recordRejected(ctx)
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.String("order.product_id", input.ProductID))
	}
	span.SetAttributes(attribute.String("order.id", result.ID))
	s.metrics.recordPlaced(ctx, result)
	s.logInfo(ctx, "order placed",
		slog.String("order.id", result.ID),
		slog.String("product", result.ProductName),
		slog.Int("quantity_kg", result.Quantity))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.GetOrder", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.String("order.id", id))
	}
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.ListOrders")
	defer span.End()

	result, err := s.inner.ListOrders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status string) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.UpdateOrderStatus",
		trace.WithAttributes(attribute.String("order.id", id), attribute.String("order.status", status)))
	defer span.End()

	s.logInfo(ctx, "updating order status", slog.String("order.id", id), slog.String("status", status))
	result, err := s.inner.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to update order status", slog.String("order.id", id))
	}
	s.metrics.recordTransition(ctx, result.Status)
	s.logInfo(ctx, "order status updated", slog.String("order.id", id), slog.String("status", string(result.Status)))
	return result, nil
}

func (s *Service) RecentOrders(ctx context.Context, query orderstypes.RecentOrdersQuery) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.RecentOrders", trace.WithAttributes(attribute.Int("orders.limit", query.Limit)))
	defer span.End()

	result, err := s.inner.RecentOrders(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list recent orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) NotifyCustomer(ctx context.Context, id string) (*ordersdomain.NotificationReceipt, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.NotifyCustomer", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	s.logInfo(ctx, "notifying customer", slog.String("order.id", id))
	result, err := s.inner.NotifyCustomer(ctx, id)
	if err != nil {
		s.metrics.recordNotification(ctx, false)
		return nil, s.handleError(ctx, span, err, "failed to notify customer", slog.String("order.id", id))
	}
	s.metrics.recordNotification(ctx, true)
	s.logInfo(ctx, "customer notified", slog.String("order.id", id), slog.String("recipient", result.Recipient))
	return result, nil
}

func (s *Service) Track(ctx context.Context, id string) (*orderstypes.TrackingView, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Track", trace.WithAttributes(attribute.String("order.id", id)))
	defer span.End()

	result, err := s.inner.Track(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to track order", slog.String("order.id", id))
	}
	return result, nil
}

func (s *Service) Dashboard(ctx context.Context) (*orderstypes.Dashboard, error) {
	ctx, span := s.tracer.Start(ctx, "OrdersService.Dashboard")
	defer span.End()

	result, err := s.inner.Dashboard(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to build dashboard")
	}
	span.SetAttributes(attribute.Int("orders.total", result.TotalOrders))
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersPlaced   metric.Int64Counter
	ordersRejected metric.Int64Counter
	kilograms      metric.Int64Counter
	transitions    metric.Int64Counter
	notifications  metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders placed"))
	ordersRejected, _ := m.Int64Counter("orders.service.orders_rejected", metric.WithDescription("Number of order submissions rejected"))
	kilograms, _ := m.Int64Counter("orders.service.kilograms_ordered", metric.WithDescription("Kilograms ordered per product"), metric.WithUnit("kg"))
	transitions, _ := m.Int64Counter("orders.service.status_transitions", metric.WithDescription("Status updates applied by operators"))
	notifications, _ := m.Int64Counter("orders.service.notifications", metric.WithDescription("Customer notifications attempted"))
	return serviceMetrics{
		ordersPlaced:   ordersPlaced,
		ordersRejected: ordersRejected,
		kilograms:      kilograms,
		transitions:    transitions,
		notifications:  notifications,
	}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, order *ordersdomain.Order) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1)
	}
	if m.kilograms != nil {
		m.kilograms.Add(ctx, int64(order.Quantity), metric.WithAttributes(attribute.String("product", order.ProductName)))
	}
}

func (m serviceMetrics) recordRejected(ctx context.Context) {
	if m.ordersRejected != nil {
		m.ordersRejected.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordTransition(ctx context.Context, status ordersdomain.Status) {
	if m.transitions != nil {
		m.transitions.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

func (m serviceMetrics) recordNotification(ctx context.Context, ok bool) {
	if m.notifications != nil {
		m.notifications.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", ok)))
	}
}

var _ ordersports.Service = (*Service)(nil)
