package orders

import (
	"go.temporal.io/sdk/workflow"

	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	"github.com/freshharvest/harvest-api/internal/platform/temporal/sequences"
)

const (
	// NotificationWorkflowName is the public identifier for registering the workflow.
	NotificationWorkflowName = "orders.workflows.Notification"
	// NotificationTaskQueue is the queue consumed by the notification worker.
	NotificationTaskQueue = "ORDER_NOTIFICATIONS"
)

// NotificationWorkflowInput carries the order snapshot so the worker needs no store access.
type NotificationWorkflowInput struct {
	Notification domain.Notification
	TraceID      string
}

// NotificationWorkflow delivers a customer notification.
func NotificationWorkflow(ctx workflow.Context, input NotificationWorkflowInput) (*domain.NotificationReceipt, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("NotificationWorkflow started", withTraceID(input.TraceID, "kind", string(input.Notification.Kind))...)
	receipt, err := sequences.RunOrderNotificationSequence(ctx, input.Notification)
	if err != nil {
		logger.Error("NotificationWorkflow failed", withTraceID(input.TraceID, "error", err)...)
		return nil, err
	}
	logger.Info("NotificationWorkflow completed", withTraceID(input.TraceID, "orderId", receipt.OrderID)...)
	return receipt, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
