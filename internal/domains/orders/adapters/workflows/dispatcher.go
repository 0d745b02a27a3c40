package workflows

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	"github.com/freshharvest/harvest-api/internal/domains/orders/ports"
	orderactivities "github.com/freshharvest/harvest-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/freshharvest/harvest-api/internal/platform/temporal/workflows/orders"
)

var (
	_ ports.NotificationDispatcher = (*TemporalNotifications)(nil)
	_ ports.NotificationDispatcher = (*InlineNotifications)(nil)
)

const (
	// notificationRunTimeout covers the activity retry schedule with headroom.
	notificationRunTimeout = 5 * time.Minute
	// deliverWait bounds how long an operator request waits for the receipt.
	deliverWait = 45 * time.Second
)

// TemporalNotifications runs notifications as durable workflows.
type TemporalNotifications struct {
	client    client.Client
	taskQueue string
}

func NewTemporalNotifications(c client.Client) *TemporalNotifications {
	return &TemporalNotifications{client: c, taskQueue: orderworkflows.NotificationTaskQueue}
}

// Deliver starts the workflow and waits for the receipt.
func (o *TemporalNotifications) Deliver(ctx context.Context, notification domain.Notification) (*domain.NotificationReceipt, error) {
	run, err := o.start(ctx, notification, false)
	if err != nil {
		return nil, err
	}
	waitCtx, cancel := context.WithTimeout(ctx, deliverWait)
	defer cancel()
	var receipt domain.NotificationReceipt
	if err := run.Get(waitCtx, &receipt); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, fmt.Errorf("notification workflow %s still running after %s: %w", run.GetID(), deliverWait, err)
		}
		return nil, translateWorkflowError(err)
	}
	return &receipt, nil
}

// Enqueue starts the workflow without waiting. Confirmations use a fixed
// workflow ID per order, so a repeat is treated as already queued.
func (o *TemporalNotifications) Enqueue(ctx context.Context, notification domain.Notification) error {
	_, err := o.start(ctx, notification, true)
	var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
	if errors.As(err, &alreadyStarted) {
		return nil
	}
	return err
}

func (o *TemporalNotifications) start(ctx context.Context, notification domain.Notification, enqueue bool) (client.WorkflowRun, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal notifications not configured")
	}
	if notification.Order == nil {
		return nil, ports.ErrNoRecipient
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:                       buildNotificationWorkflowID(notification, traceComponent, enqueue),
		TaskQueue:                o.taskQueue,
		WorkflowExecutionTimeout: notificationRunTimeout,
	}
	return o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.NotificationWorkflowName,
		orderworkflows.NotificationWorkflowInput{Notification: notification, TraceID: traceComponent},
	)
}

// InlineNotifications calls the notifier in-process, useful for tests or dev fallbacks.
type InlineNotifications struct {
	notifier ports.Notifier
	logger   *slog.Logger
	timeout  time.Duration
	pending  sync.WaitGroup
}

func NewInlineNotifications(notifier ports.Notifier, logger *slog.Logger) *InlineNotifications {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &InlineNotifications{notifier: notifier, logger: logger, timeout: 30 * time.Second}
}

func (o *InlineNotifications) Deliver(ctx context.Context, notification domain.Notification) (*domain.NotificationReceipt, error) {
	if o == nil || o.notifier == nil {
		return nil, errors.New("inline notifications not configured")
	}
	return o.notifier.Notify(ctx, notification)
}

// Enqueue sends in the background; the request context's cancellation is
// not inherited.
func (o *InlineNotifications) Enqueue(ctx context.Context, notification domain.Notification) error {
	if o == nil || o.notifier == nil {
		return errors.New("inline notifications not configured")
	}
	detached := context.WithoutCancel(ctx)
	o.pending.Add(1)
	go func() {
		defer o.pending.Done()
		sendCtx, cancel := context.WithTimeout(detached, o.timeout)
		defer cancel()
		if _, err := o.notifier.Notify(sendCtx, notification); err != nil {
			orderID := ""
			if notification.Order != nil {
				orderID = notification.Order.ID
			}
			o.logger.WarnContext(sendCtx, "background notification failed",
				slog.String("order.id", orderID),
				slog.String("kind", string(notification.Kind)),
				slog.String("error", err.Error()))
		}
	}()
	return nil
}

// Wait blocks until queued notifications finish.
func (o *InlineNotifications) Wait() {
	o.pending.Wait()
}

func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() == orderactivities.NoRecipientErrorType {
		return fmt.Errorf("%w: %w", ports.ErrNoRecipient, err)
	}
	return err
}

func buildNotificationWorkflowID(notification domain.Notification, traceComponent string, enqueue bool) string {
	if enqueue && notification.Kind == domain.NotificationConfirmation {
		return fmt.Sprintf("order-confirmation-%s", notification.Order.ID)
	}
	return fmt.Sprintf("order-notification-%s-%s-%s", notification.Kind, notification.Order.ID, traceComponent)
}

func workflowTraceComponent(ctx context.Context) string {
	traceComponent := workflowTraceID(ctx)
	if traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
