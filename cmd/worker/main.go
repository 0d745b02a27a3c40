package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/freshharvest/harvest-api/internal/app/api"
	platformobservability "github.com/freshharvest/harvest-api/internal/platform/observability"
	orderactivities "github.com/freshharvest/harvest-api/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/freshharvest/harvest-api/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "harvest-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, cfg.Observability(serviceName))
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	notifier, err := api.NewNotifier(cfg, logger)
	if err != nil {
		logger.Error("failed to configure notifier", slog.String("error", err.Error()))
		os.Exit(1)
	}
	notificationActivities := orderactivities.NewActivities(notifier)

	temporalClient, err := api.DialTemporal(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.NotificationTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.NotificationWorkflow, workflow.RegisterOptions{Name: orderworkflows.NotificationWorkflowName})
	w.RegisterActivityWithOptions(notificationActivities.SendNotification, activity.RegisterOptions{Name: orderactivities.SendNotificationActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.NotificationTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
