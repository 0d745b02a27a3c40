package workflows

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/mocks"
	"go.temporal.io/sdk/temporal"

	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	"github.com/freshharvest/harvest-api/internal/domains/orders/ports"
	orderactivities "github.com/freshharvest/harvest-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/freshharvest/harvest-api/internal/platform/temporal/workflows/orders"
)

type countingNotifier struct {
	mu     sync.Mutex
	calls  int
	err    error
	ctxErr error
}

func (c *countingNotifier) Notify(ctx context.Context, n domain.Notification) (*domain.NotificationReceipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	c.ctxErr = ctx.Err()
	if c.err != nil {
		return nil, c.err
	}
	return &domain.NotificationReceipt{OrderID: n.Order.ID, Kind: n.Kind}, nil
}

func confirmation(t *testing.T) domain.Notification {
	t.Helper()
	email := "john@example.com"
	order, err := domain.NewOrder("abc123", domain.Details{
		ProductID: 1, Quantity: 25, CustomerName: "John Doe", Contact: "9876543210", Address: "123 Main St", Email: &email,
	}, domain.ProductSnapshot{Name: "Apples"}, time.Now(), 0)
	require.NoError(t, err)
	return domain.Notification{Kind: domain.NotificationConfirmation, Order: order}
}

func TestInlineNotifications_Deliver(t *testing.T) {
	notifier := &countingNotifier{}
	dispatcher := NewInlineNotifications(notifier, nil)

	receipt, err := dispatcher.Deliver(context.Background(), confirmation(t))
	require.NoError(t, err)
	require.Equal(t, "abc123", receipt.OrderID)

	notifier.err = errors.New("smtp down")
	_, err = dispatcher.Deliver(context.Background(), confirmation(t))
	require.ErrorContains(t, err, "smtp down")
}

func TestInlineNotifications_EnqueueSurvivesCancelledRequest(t *testing.T) {
	notifier := &countingNotifier{}
	dispatcher := NewInlineNotifications(notifier, nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, dispatcher.Enqueue(ctx, confirmation(t)))
	cancel()
	dispatcher.Wait()

	require.Equal(t, 1, notifier.calls)
	require.NoError(t, notifier.ctxErr)
}

func TestTranslateWorkflowError(t *testing.T) {
	noRecipient := temporal.NewNonRetryableApplicationError("no email", orderactivities.NoRecipientErrorType, nil)
	require.ErrorIs(t, translateWorkflowError(noRecipient), ports.ErrNoRecipient)

	other := errors.New("workflow timed out")
	require.Equal(t, other, translateWorkflowError(other))
}

func TestBuildNotificationWorkflowID(t *testing.T) {
	n := confirmation(t)
	require.Equal(t, "order-confirmation-abc123", buildNotificationWorkflowID(n, "trace", true))

	n.Kind = domain.NotificationStatusUpdate
	require.Equal(t, "order-notification-status_update-abc123-trace", buildNotificationWorkflowID(n, "trace", true))
}

func TestTemporalNotifications_StartsWorkflowByRegisteredName(t *testing.T) {
	temporalClient := &mocks.Client{}
	run := &mocks.WorkflowRun{}
	run.On("Get", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		receipt := args.Get(1).(*domain.NotificationReceipt)
		receipt.OrderID = "abc123"
		receipt.Recipient = "john@example.com"
	})
	temporalClient.On("ExecuteWorkflow", mock.Anything,
		mock.MatchedBy(func(opts client.StartWorkflowOptions) bool {
			return opts.TaskQueue == orderworkflows.NotificationTaskQueue && opts.WorkflowExecutionTimeout > 0
		}),
		orderworkflows.NotificationWorkflowName,
		mock.AnythingOfType("orders.NotificationWorkflowInput"),
	).Return(run, nil)

	dispatcher := NewTemporalNotifications(temporalClient)
	receipt, err := dispatcher.Deliver(context.Background(), confirmation(t))
	require.NoError(t, err)
	require.Equal(t, "john@example.com", receipt.Recipient)

	require.NoError(t, dispatcher.Enqueue(context.Background(), confirmation(t)))
	temporalClient.AssertNumberOfCalls(t, "ExecuteWorkflow", 2)
}

func TestTemporalNotifications_EnqueueTreatsRunningConfirmationAsQueued(t *testing.T) {
	temporalClient := &mocks.Client{}
	temporalClient.On("ExecuteWorkflow", mock.Anything, mock.Anything, orderworkflows.NotificationWorkflowName, mock.Anything).
		Return(nil, serviceerror.NewWorkflowExecutionAlreadyStarted("already started", "", ""))

	dispatcher := NewTemporalNotifications(temporalClient)
	require.NoError(t, dispatcher.Enqueue(context.Background(), confirmation(t)))
}
