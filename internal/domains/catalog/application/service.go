package application

import (
	"context"
	"fmt"
	"math"

	"github.com/freshharvest/harvest-api/internal/domains/catalog/application/types"
	"github.com/freshharvest/harvest-api/internal/domains/catalog/domain"
	"github.com/freshharvest/harvest-api/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// ListProducts filters by name and price range and returns the requested page.
// A page past the end yields an empty item list with accurate totals.
func (s *Service) ListProducts(ctx context.Context, input types.SearchInput) (*types.ProductPage, error) {
	minPrice := types.DefaultMinPrice
	if input.MinPrice != nil {
		minPrice = *input.MinPrice
	}
	maxPrice := types.DefaultMaxPrice
	if input.MaxPrice != nil {
		maxPrice = *input.MaxPrice
	}
	if minPrice.IsNegative() || maxPrice.LessThan(minPrice) {
		return nil, fmt.Errorf("%w: price range %s..%s is empty", ErrInvalidInput, minPrice, maxPrice)
	}
	page := input.Page
	if page <= 0 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = types.DefaultPageSize
	}
	if pageSize > types.MaxPageSize {
		pageSize = types.MaxPageSize
	}
	if page-1 > math.MaxInt/pageSize {
		return nil, fmt.Errorf("%w: page %d is out of range", ErrInvalidInput, page)
	}

	items, total, err := s.repo.Search(ctx, ports.ProductQuery{
		NameContains: input.Search,
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		Offset:       (page - 1) * pageSize,
		Limit:        pageSize,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &types.ProductPage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

// AddProduct creates a product with the next free identifier.
func (s *Service) AddProduct(ctx context.Context, input types.ProductInput) (*domain.Product, error) {
	product, err := domain.NewProduct(0, input.Name, input.Price)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateProduct replaces name and price of an existing product.
func (s *Service) UpdateProduct(ctx context.Context, id int64, input types.ProductInput) (*domain.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := existing.Rename(input.Name); err != nil {
		return nil, mapError(err)
	}
	if err := existing.Reprice(input.Price); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// DeleteProduct removes a product and returns the removed record.
func (s *Service) DeleteProduct(ctx context.Context, id int64) (*domain.Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, mapError(err)
	}
	return existing, nil
}

var _ ports.Service = (*Service)(nil)
