package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/freshharvest/harvest-api/internal/domains/catalog/domain"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrInvalidQuery rejects a negative search window.
	ErrInvalidQuery = errors.New("product query offset and limit must not be negative")
)

// ProductQuery narrows a catalog search. Zero Limit means no limit.
type ProductQuery struct {
	NameContains string
	MinPrice     decimal.Decimal
	MaxPrice     decimal.Decimal
	Offset       int
	Limit        int
}

// Repository persists catalog products.
type Repository interface {
	// Save inserts or updates a product; ID zero assigns max(id)+1.
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Delete(ctx context.Context, id int64) error
	// List returns every product ordered by ID.
	List(ctx context.Context) ([]*domain.Product, error)
	// Search returns the requested window of matches plus the total match count.
	Search(ctx context.Context, query ProductQuery) ([]*domain.Product, int, error)
}
