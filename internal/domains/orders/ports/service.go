package ports

import (
	"context"

	orderstypes "github.com/freshharvest/harvest-api/internal/domains/orders/application/types"
	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
)

// Service exposes the order use cases to transports.
type Service interface {
	CreateOrder(ctx context.Context, input orderstypes.CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status string) (*domain.Order, error)
	RecentOrders(ctx context.Context, query orderstypes.RecentOrdersQuery) ([]*domain.Order, error)
	NotifyCustomer(ctx context.Context, id string) (*domain.NotificationReceipt, error)
	Track(ctx context.Context, id string) (*orderstypes.TrackingView, error)
	Dashboard(ctx context.Context) (*orderstypes.Dashboard, error)
}
