package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/freshharvest/harvest-api/internal/domains/catalog/domain"
	"github.com/freshharvest/harvest-api/internal/domains/catalog/ports"
)

func product(t *testing.T, id int64, name string, price int64) *domain.Product {
	t.Helper()
	p, err := domain.NewProduct(id, name, decimal.NewFromInt(price))
	require.NoError(t, err)
	return p
}

func TestSave_AssignsNextID(t *testing.T) {
	repo := NewRepository(product(t, 1, "Apples", 120), product(t, 7, "Grapes", 150))

	saved, err := repo.Save(context.Background(), product(t, 0, "Kiwi", 200))
	require.NoError(t, err)
	require.Equal(t, int64(8), saved.ID)

	require.NoError(t, repo.Delete(context.Background(), 8))
	again, err := repo.Save(context.Background(), product(t, 0, "Mango", 210))
	require.NoError(t, err)
	require.Equal(t, int64(8), again.ID)
}

func TestGetByID_ReturnsCopy(t *testing.T) {
	repo := NewRepository(product(t, 1, "Apples", 120))

	got, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, "Apples", again.Name)

	_, err = repo.GetByID(context.Background(), 99)
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSearch_FiltersAndPages(t *testing.T) {
	repo := NewRepository(
		product(t, 1, "Apples", 120),
		product(t, 2, "Grapes", 150),
		product(t, 3, "Pineapple", 90),
		product(t, 4, "Carrots", 40),
	)

	items, total, err := repo.Search(context.Background(), ports.ProductQuery{
		NameContains: "APP",
		MinPrice:     decimal.Zero,
		MaxPrice:     decimal.NewFromInt(1000),
		Limit:        1,
	})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, items, 1)
	require.Equal(t, "Apples", items[0].Name)

	items, total, err = repo.Search(context.Background(), ports.ProductQuery{
		MinPrice: decimal.NewFromInt(40),
		MaxPrice: decimal.NewFromInt(90),
	})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, []int64{3, 4}, []int64{items[0].ID, items[1].ID})

	items, total, err = repo.Search(context.Background(), ports.ProductQuery{
		MaxPrice: decimal.NewFromInt(1000),
		Offset:   10,
	})
	require.NoError(t, err)
	require.Equal(t, 4, total)
	require.Empty(t, items)
}

func TestSearch_RejectsNegativeWindow(t *testing.T) {
	repo := NewRepository(product(t, 1, "Apples", 120))

	_, _, err := repo.Search(context.Background(), ports.ProductQuery{
		MinPrice: decimal.Zero, MaxPrice: decimal.NewFromInt(1000), Offset: -16, Limit: 8,
	})
	require.ErrorIs(t, err, ports.ErrInvalidQuery)
}
