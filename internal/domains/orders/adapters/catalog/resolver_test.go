package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/freshharvest/harvest-api/internal/domains/catalog/application"
	catalogmemory "github.com/freshharvest/harvest-api/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/freshharvest/harvest-api/internal/domains/catalog/domain"
	"github.com/freshharvest/harvest-api/internal/domains/orders/ports"
)

type failingGetter struct{}

func (failingGetter) GetProduct(context.Context, int64) (*catalogdomain.Product, error) {
	return nil, errors.New("catalog offline")
}

func TestResolve(t *testing.T) {
	apples, err := catalogdomain.NewProduct(1, "Apples", decimal.NewFromInt(120))
	require.NoError(t, err)
	resolver := NewResolver(catalogapp.NewService(catalogmemory.NewRepository(apples)))

	snapshot, err := resolver.Resolve(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Apples", snapshot.Name)
	require.True(t, snapshot.UnitPrice.Equal(decimal.NewFromInt(120)))

	_, err = resolver.Resolve(context.Background(), 2)
	require.ErrorIs(t, err, ports.ErrProductNotFound)

	offline := &Resolver{products: failingGetter{}}
	_, err = offline.Resolve(context.Background(), 1)
	require.Error(t, err)
	require.NotErrorIs(t, err, ports.ErrProductNotFound)
}
