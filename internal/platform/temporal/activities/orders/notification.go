package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	ordersports "github.com/freshharvest/harvest-api/internal/domains/orders/ports"
)

const (
	// SendNotificationActivityName delivers one customer e-mail.
	SendNotificationActivityName = "orders.activities.SendNotification"
	// NoRecipientErrorType marks failures that retrying cannot fix.
	NoRecipientErrorType = "NoRecipient"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	notifier ordersports.Notifier
}

func NewActivities(notifier ordersports.Notifier) *Activities {
	return &Activities{notifier: notifier}
}

// SendNotification hands the notification to the configured notifier.
func (a *Activities) SendNotification(ctx context.Context, notification domain.Notification) (*domain.NotificationReceipt, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.notifier == nil {
		logger.Error("notification activity not initialized")
		return nil, errors.New("notification activity not initialized")
	}
	if notification.Order == nil {
		return nil, temporal.NewNonRetryableApplicationError("notification has no order", NoRecipientErrorType, ordersports.ErrNoRecipient)
	}
	orderID := notification.Order.ID
	logger.Info("SendNotification activity started", "orderId", orderID, "kind", string(notification.Kind))
	receipt, err := a.notifier.Notify(ctx, notification)
	if err != nil {
		if errors.Is(err, ordersports.ErrNoRecipient) {
			logger.Warn("SendNotification skipped, no recipient", "orderId", orderID)
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), NoRecipientErrorType, err)
		}
		logger.Error("SendNotification activity failed", "orderId", orderID, "error", err)
		return nil, err
	}
	logger.Info("SendNotification activity completed", "orderId", orderID, "recipient", receipt.Recipient)
	return receipt, nil
}
