package ports

import (
	"context"

	"github.com/freshharvest/harvest-api/internal/domains/catalog/application/types"
	"github.com/freshharvest/harvest-api/internal/domains/catalog/domain"
)

// Service exposes catalog use cases to adapters.
type Service interface {
	ListProducts(ctx context.Context, input types.SearchInput) (*types.ProductPage, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	AddProduct(ctx context.Context, input types.ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, input types.ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id int64) (*domain.Product, error)
}
