// Package catalog adapts the product catalog bounded context to the orders ProductCatalog port.
package catalog

import (
	"context"
	"errors"
	"fmt"

	catalogdomain "github.com/freshharvest/harvest-api/internal/domains/catalog/domain"
	catalogports "github.com/freshharvest/harvest-api/internal/domains/catalog/ports"
	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	"github.com/freshharvest/harvest-api/internal/domains/orders/ports"
)

var _ ports.ProductCatalog = (*Resolver)(nil)

type productGetter interface {
	GetProduct(ctx context.Context, id int64) (*catalogdomain.Product, error)
}

// Resolver snapshots catalog products for new orders.
type Resolver struct {
	products productGetter
}

func NewResolver(products catalogports.Service) *Resolver {
	return &Resolver{products: products}
}

func (r *Resolver) Resolve(ctx context.Context, productID int64) (domain.ProductSnapshot, error) {
	product, err := r.products.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return domain.ProductSnapshot{}, fmt.Errorf("%w: %d", ports.ErrProductNotFound, productID)
		}
		return domain.ProductSnapshot{}, err
	}
	return domain.ProductSnapshot{Name: product.Name, UnitPrice: product.Price}, nil
}
