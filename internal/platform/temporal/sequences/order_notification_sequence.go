package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	orderactivities "github.com/freshharvest/harvest-api/internal/platform/temporal/activities/orders"
)

// RunOrderNotificationSequence sends one customer notification with retries.
func RunOrderNotificationSequence(ctx workflow.Context, notification domain.Notification) (*domain.NotificationReceipt, error) {
	logger := workflow.GetLogger(ctx)
	orderID := ""
	if notification.Order != nil {
		orderID = notification.Order.ID
	}
	logger.Info("order notification sequence started", "orderId", orderID, "kind", string(notification.Kind))
	options := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:        2 * time.Second,
			BackoffCoefficient:     2.0,
			MaximumInterval:        10 * time.Second,
			MaximumAttempts:        5,
			NonRetryableErrorTypes: []string{orderactivities.NoRecipientErrorType},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var receipt domain.NotificationReceipt
	err := workflow.ExecuteActivity(ctx, orderactivities.SendNotificationActivityName, notification).Get(ctx, &receipt)
	if err != nil {
		logger.Error("order notification sequence failed", "orderId", orderID, "error", err)
		return nil, err
	}
	logger.Info("order notification sequence completed", "orderId", orderID, "recipient", receipt.Recipient)
	return &receipt, nil
}
