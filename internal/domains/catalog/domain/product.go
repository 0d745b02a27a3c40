package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidProductID = errors.New("product id must not be negative")
	ErrEmptyName        = errors.New("product name is required")
	ErrInvalidPrice     = errors.New("product price must be greater than zero")
)

// Product is a catalog entry priced per kilogram.
type Product struct {
	ID    int64
	Name  string
	Price decimal.Decimal
}

// NewProduct validates and constructs a Product. An ID of zero asks the
// repository to assign the next identifier.
func NewProduct(id int64, name string, price decimal.Decimal) (*Product, error) {
	product := &Product{ID: id}
	if err := product.Rename(name); err != nil {
		return nil, err
	}
	if err := product.Reprice(price); err != nil {
		return nil, err
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

// Rename trims and sets the display name.
func (p *Product) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Name = name
	return nil
}

// Reprice sets the per kilogram price.
func (p *Product) Reprice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return ErrInvalidPrice
	}
	p.Price = price
	return nil
}

// Validate re-applies invariants before persistence.
func (p *Product) Validate() error {
	if p.ID < 0 {
		return ErrInvalidProductID
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if !p.Price.IsPositive() {
		return ErrInvalidPrice
	}
	return nil
}

// MatchesName reports whether query is a case-insensitive substring of the name.
func (p *Product) MatchesName(query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Name), strings.ToLower(query))
}

// PriceWithin reports whether the price lies in the inclusive range [min, max].
func (p *Product) PriceWithin(min, max decimal.Decimal) bool {
	return p.Price.GreaterThanOrEqual(min) && p.Price.LessThanOrEqual(max)
}
