package api

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ordersmemory "github.com/freshharvest/harvest-api/internal/domains/orders/adapters/memory"
	"github.com/freshharvest/harvest-api/internal/domains/orders/ports"
)

func TestBuildStores_MemoryFallbackSeedsDemoOrders(t *testing.T) {
	cfg := Config{SeedDemoOrders: true, DeliveryLeadTime: 48 * time.Hour, IdempotencyKeyTTL: time.Hour}
	built, err := buildStores(context.Background(), cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer built.cleanup()

	orders, err := built.orders.List(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 7)

	products, err := built.products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 12)
}

func TestBuildStores_SkipsDemoOrdersWhenDisabled(t *testing.T) {
	cfg := Config{IdempotencyKeyTTL: time.Hour}
	built, err := buildStores(context.Background(), cfg, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	defer built.cleanup()

	orders, err := built.orders.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestPurgeExpiredKeys(t *testing.T) {
	ctx := context.Background()
	now := time.Now().Add(-2 * time.Hour)
	store := ordersmemory.NewIdempotencyStore(ordersmemory.WithIdempotencyClock(func() time.Time { return now }))
	_, err := store.Save(ctx, ports.IdempotencyRecord{Key: "old", RequestHash: "h", OrderID: "o1"})
	require.NoError(t, err)

	now = time.Now()
	_, err = store.Save(ctx, ports.IdempotencyRecord{Key: "fresh", RequestHash: "h", OrderID: "o2"})
	require.NoError(t, err)

	purgeExpiredKeys(ctx, store, time.Hour, slog.New(slog.DiscardHandler))

	old, err := store.Get(ctx, "old")
	require.NoError(t, err)
	require.Nil(t, old)
	fresh, err := store.Get(ctx, "fresh")
	require.NoError(t, err)
	require.NotNil(t, fresh)
}

func TestKeyPurgeInterval(t *testing.T) {
	require.Equal(t, 10*time.Minute, keyPurgeInterval(10*time.Minute))
	require.Equal(t, time.Hour, keyPurgeInterval(24*time.Hour))
}
