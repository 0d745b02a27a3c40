package ports

import (
	"context"
	"errors"

	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
)

var (
	ErrProductNotFound = errors.New("product not found in catalog")
	ErrNoRecipient     = errors.New("order has no email address")
)

// ProductCatalog resolves the product snapshot captured on a new order.
type ProductCatalog interface {
	Resolve(ctx context.Context, productID int64) (domain.ProductSnapshot, error)
}

// Notifier delivers one customer notification.
type Notifier interface {
	Notify(ctx context.Context, notification domain.Notification) (*domain.NotificationReceipt, error)
}

// NotificationDispatcher routes notifications to a Notifier, either waiting
// for the outcome or handing it off.
type NotificationDispatcher interface {
	Deliver(ctx context.Context, notification domain.Notification) (*domain.NotificationReceipt, error)
	Enqueue(ctx context.Context, notification domain.Notification) error
}

// EventPublisher emits order lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// NoopPublisher discards events.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.Event) error { return nil }
