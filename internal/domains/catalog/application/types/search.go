package types

import (
	"github.com/shopspring/decimal"

	"github.com/freshharvest/harvest-api/internal/domains/catalog/domain"
)

const (
	DefaultPageSize = 8
	MaxPageSize     = 100
)

var (
	DefaultMinPrice = decimal.Zero
	DefaultMaxPrice = decimal.NewFromInt(1000)
)

// SearchInput filters the public catalog listing. Nil bounds fall back to
// DefaultMinPrice/DefaultMaxPrice.
type SearchInput struct {
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Page     int
	PageSize int
}

// ProductPage is one page of a filtered catalog listing.
type ProductPage struct {
	Items      []*domain.Product
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}
