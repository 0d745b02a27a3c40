package mapper

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"

	catalogtypes "github.com/freshharvest/harvest-api/internal/domains/catalog/application/types"
	"github.com/freshharvest/harvest-api/internal/domains/catalog/domain"
)

// Product is the HTTP representation of a catalog entry. Price is a JSON number.
type Product struct {
	ID    int64       `json:"id"`
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
}

// MutationProduct captures admin create/update payloads while preserving field presence.
type MutationProduct struct {
	Name  *string          `json:"name"`
	Price *decimal.Decimal `json:"price"`
}

// ProductPage is a page of catalog search results.
type ProductPage struct {
	Items      []Product `json:"items"`
	Page       int       `json:"page"`
	PageSize   int       `json:"pageSize"`
	TotalItems int       `json:"totalItems"`
	TotalPages int       `json:"totalPages"`
}

var (
	errMissingName  = errors.New("name is required")
	errMissingPrice = errors.New("price is required")
)

// ToProductInput validates presence of the mutable fields.
func ToProductInput(input MutationProduct) (catalogtypes.ProductInput, map[string]string) {
	fields := map[string]string{}
	if input.Name == nil {
		fields["name"] = errMissingName.Error()
	}
	if input.Price == nil {
		fields["price"] = errMissingPrice.Error()
	}
	if len(fields) > 0 {
		return catalogtypes.ProductInput{}, fields
	}
	return catalogtypes.ProductInput{Name: *input.Name, Price: *input.Price}, nil
}

// FromDomainProduct converts a domain product to its transport shape.
func FromDomainProduct(product *domain.Product) Product {
	if product == nil {
		return Product{}
	}
	return Product{
		ID:    product.ID,
		Name:  product.Name,
		Price: json.Number(product.Price.String()),
	}
}

func FromDomainProducts(products []*domain.Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		out = append(out, FromDomainProduct(p))
	}
	return out
}

func FromProductPage(page *catalogtypes.ProductPage) ProductPage {
	if page == nil {
		return ProductPage{Items: []Product{}}
	}
	return ProductPage{
		Items:      FromDomainProducts(page.Items),
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}
