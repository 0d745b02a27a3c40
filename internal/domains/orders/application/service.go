package application

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	orderstypes "github.com/freshharvest/harvest-api/internal/domains/orders/application/types"
	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	"github.com/freshharvest/harvest-api/internal/domains/orders/ports"
)

const (
	// DefaultDeliveryLeadTime is added to createdAt for the delivery estimate.
	DefaultDeliveryLeadTime = 48 * time.Hour
	// PlaceholderProductName is used when no catalog is wired.
	PlaceholderProductName = "Product Name"

	maxIDAttempts = 3
)

// Service orchestrates order intake, administration, and tracking.
type Service struct {
	repo          ports.Repository
	catalog       ports.ProductCatalog
	notifications ports.NotificationDispatcher
	events        ports.EventPublisher
	idempotency   ports.IdempotencyStore
	intake        *intake
	now           func() time.Time
	newID         func() string
	leadTime      time.Duration
	logger        *slog.Logger
}

type Option func(*Service)

func WithCatalog(catalog ports.ProductCatalog) Option {
	return func(s *Service) { s.catalog = catalog }
}

func WithNotifications(dispatcher ports.NotificationDispatcher) Option {
	return func(s *Service) { s.notifications = dispatcher }
}

func WithEventPublisher(publisher ports.EventPublisher) Option {
	return func(s *Service) {
		if publisher != nil {
			s.events = publisher
		}
	}
}

// WithIdempotencyStore enables replay of orders submitted with an Idempotency-Key.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) { s.idempotency = store }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithDeliveryLeadTime sets the delivery estimate offset. Zero disables estimates.
func WithDeliveryLeadTime(d time.Duration) Option {
	return func(s *Service) { s.leadTime = d }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		events:   ports.NoopPublisher{},
		intake:   newIntake(),
		now:      time.Now,
		newID:    uuid.NewString,
		leadTime: DefaultDeliveryLeadTime,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// CreateOrder validates customer input, snapshots the product, and stores a Pending order.
func (s *Service) CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*domain.Order, error) {
	details, err := s.intake.check(input)
	if err != nil {
		return nil, err
	}
	key, fingerprint := s.idempotencyKey(input)
	if key != "" {
		replayed, err := s.replay(ctx, key, fingerprint)
		if err != nil || replayed != nil {
			return replayed, err
		}
	}
	snapshot, err := s.resolveProduct(ctx, details.ProductID)
	if err != nil {
		return nil, err
	}

	var order *domain.Order
	for attempt := 0; ; attempt++ {
		order, err = domain.NewOrder(s.newID(), details, snapshot, s.now(), s.leadTime)
		if err != nil {
			return nil, mapError(err)
		}
		err = s.repo.Insert(ctx, order)
		if err == nil {
			break
		}
		if !errors.Is(err, ports.ErrDuplicateID) || attempt+1 >= maxIDAttempts {
			return nil, dependencyError("order store", err)
		}
	}
	if key != "" {
		stored, err := s.remember(ctx, key, fingerprint, order)
		if err != nil {
			return nil, err
		}
		if stored.ID != order.ID {
			return stored, nil
		}
	}

	s.publish(ctx, domain.OrderPlaced{
		BaseEvent:   domain.BaseEvent{Timestamp: order.CreatedAt},
		OrderID:     order.ID,
		ProductID:   order.ProductID,
		ProductName: order.ProductName,
		Quantity:    order.Quantity,
		Subtotal:    order.Subtotal().String(),
	})
	if order.HasEmail() && s.notifications != nil {
		if err := s.notifications.Enqueue(ctx, domain.Notification{Kind: domain.NotificationConfirmation, Order: order.Clone()}); err != nil {
			s.logger.WarnContext(ctx, "order confirmation not queued",
				slog.String("order.id", order.ID), slog.String("error", err.Error()))
		}
	}
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	return order, nil
}

// ListOrders returns every order, oldest first.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return orders, nil
}

// UpdateOrderStatus validates the status before looking the order up, so an
// invalid status never touches the record.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status string) (*domain.Order, error) {
	next, err := domain.ParseStatus(status)
	if err != nil {
		return nil, newValidationError("status", err.Error())
	}
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	updated, err := s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		var validation *ValidationError
		if mapped := mapError(err); errors.As(mapped, &validation) {
			return nil, mapped
		}
		return nil, storeError(err)
	}
	s.publish(ctx, domain.OrderStatusChanged{
		BaseEvent:  domain.BaseEvent{Timestamp: s.now().UTC()},
		OrderID:    updated.ID,
		FromStatus: current.Status,
		ToStatus:   updated.Status,
	})
	return updated, nil
}

// RecentOrders lists orders newest first, optionally filtered by status.
func (s *Service) RecentOrders(ctx context.Context, query orderstypes.RecentOrdersQuery) ([]*domain.Order, error) {
	if query.Limit < 0 {
		return nil, newValidationError("limit", "must not be negative")
	}
	var (
		orders []*domain.Order
		err    error
	)
	if len(query.Statuses) > 0 {
		for _, status := range query.Statuses {
			if !status.Valid() {
				return nil, newValidationError("status", domain.ErrInvalidStatus.Error())
			}
		}
		orders, err = s.repo.FindByStatus(ctx, query.Statuses)
	} else {
		orders, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, storeError(err)
	}
	newest := make([]*domain.Order, 0, len(orders))
	for i := len(orders) - 1; i >= 0; i-- {
		newest = append(newest, orders[i])
		if query.Limit > 0 && len(newest) == query.Limit {
			break
		}
	}
	return newest, nil
}

// NotifyCustomer sends a status-update message and waits for the outcome.
// The order itself is never modified.
func (s *Service) NotifyCustomer(ctx context.Context, id string) (*domain.NotificationReceipt, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if !order.HasEmail() {
		return nil, newValidationError("email", ports.ErrNoRecipient.Error())
	}
	if s.notifications == nil {
		return nil, dependencyError("notifications", errors.New("no notifier configured"))
	}
	receipt, err := s.notifications.Deliver(ctx, domain.Notification{Kind: domain.NotificationStatusUpdate, Order: order})
	if err != nil {
		if errors.Is(err, ports.ErrNoRecipient) {
			return nil, newValidationError("email", ports.ErrNoRecipient.Error())
		}
		return nil, dependencyError("notifications", err)
	}
	return receipt, nil
}

func (s *Service) resolveProduct(ctx context.Context, productID int64) (domain.ProductSnapshot, error) {
	if s.catalog == nil {
		return domain.ProductSnapshot{Name: PlaceholderProductName}, nil
	}
	snapshot, err := s.catalog.Resolve(ctx, productID)
	if err != nil {
		if errors.Is(err, ports.ErrProductNotFound) {
			return domain.ProductSnapshot{}, newValidationError("productId", "does not match a catalog product")
		}
		return domain.ProductSnapshot{}, dependencyError("product catalog", err)
	}
	return snapshot, nil
}

func (s *Service) publish(ctx context.Context, event domain.Event) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "order event not published",
			slog.String("event", event.EventName()), slog.String("error", err.Error()))
	}
}

var _ ports.Service = (*Service)(nil)
