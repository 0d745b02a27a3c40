package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/freshharvest/harvest-api/internal/domains/catalog/domain"
)

func TestDefault_TwelveProducts(t *testing.T) {
	products := Default()
	require.Len(t, products, 12)
	require.Equal(t, "Apples", products[0].Name)
	require.True(t, products[0].Price.Equal(decimal.NewFromInt(120)))
	require.Equal(t, int64(12), products[11].ID)
	for _, p := range products {
		require.NoError(t, p.Validate())
	}
}

func TestParse_AssignsMissingIDs(t *testing.T) {
	products, err := Parse([]byte(`
products:
  - id: 5
    name: Mango
    price: "210.50"
  - name: Kiwi
    price: "180"
`))
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, int64(5), products[0].ID)
	require.Equal(t, int64(6), products[1].ID)
	require.Equal(t, "210.5", products[0].Price.String())
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"bad price":     "products:\n  - name: Kiwi\n    price: cheap\n",
		"zero price":    "products:\n  - name: Kiwi\n    price: \"0\"\n",
		"duplicate id":  "products:\n  - id: 1\n    name: A\n    price: \"1\"\n  - id: 1\n    name: B\n    price: \"2\"\n",
		"unknown field": "products:\n  - name: Kiwi\n    price: \"1\"\n    colour: green\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
		})
	}
}

func TestParse_ZeroPriceIsDomainError(t *testing.T) {
	_, err := Parse([]byte("products:\n  - name: Kiwi\n    price: \"0\"\n"))
	require.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestLoadFile(t *testing.T) {
	products, err := LoadFile("")
	require.NoError(t, err)
	require.Len(t, products, 12)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products:\n  - name: Kiwi\n    price: \"180\"\n"), 0o600))
	products, err = LoadFile(path)
	require.NoError(t, err)
	require.Len(t, products, 1)
	require.Equal(t, int64(1), products[0].ID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
