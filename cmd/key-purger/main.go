package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/freshharvest/harvest-api/internal/app/api"
	orderspostgres "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/persistence/postgres"
	platformpostgres "github.com/freshharvest/harvest-api/internal/platform/postgres"
)

// key-purger deletes order Idempotency-Key records older than IDEMPOTENCY_KEY_TTL.
// Meant to run from cron against the Postgres store.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	if cfg.PostgresDSN == "" {
		log.Fatal("POSTGRES_DSN not set; nothing to purge")
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN, platformpostgres.Options{})
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	cutoff := time.Now().Add(-cfg.IdempotencyKeyTTL)
	purged, err := orderspostgres.NewIdempotencyStore(db).PurgeBefore(ctx, cutoff)
	if err != nil {
		log.Fatalf("failed to purge idempotency keys: %v", err)
	}
	logger.Info("idempotency key purge completed", slog.Int64("purged", purged), slog.Time("cutoff", cutoff))
}
