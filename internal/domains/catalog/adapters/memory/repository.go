package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/freshharvest/harvest-api/internal/domains/catalog/domain"
	"github.com/freshharvest/harvest-api/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product catalog.
type Repository struct {
	mu       sync.RWMutex
	products map[int64]*domain.Product
	maxID    int64
}

// NewRepository returns a catalog preloaded with the given products.
func NewRepository(seed ...*domain.Product) *Repository {
	r := &Repository{products: map[int64]*domain.Product{}}
	for _, product := range seed {
		if product == nil {
			continue
		}
		clone := *product
		r.products[clone.ID] = &clone
		if clone.ID > r.maxID {
			r.maxID = clone.ID
		}
	}
	return r
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := *product
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if clone.ID == 0 {
		clone.ID = r.maxID + 1
	}
	if clone.ID > r.maxID {
		r.maxID = clone.ID
	}
	r.products[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *Repository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	r.maxID = 0
	for existing := range r.products {
		if existing > r.maxID {
			r.maxID = existing
		}
	}
	return nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedLocked(), nil
}

func (r *Repository) Search(_ context.Context, query ports.ProductQuery) ([]*domain.Product, int, error) {
	if query.Offset < 0 || query.Limit < 0 {
		return nil, 0, ports.ErrInvalidQuery
	}
	r.mu.RLock()
	all := r.sortedLocked()
	r.mu.RUnlock()

	matches := make([]*domain.Product, 0, len(all))
	for _, product := range all {
		if product.MatchesName(query.NameContains) && product.PriceWithin(query.MinPrice, query.MaxPrice) {
			matches = append(matches, product)
		}
	}
	total := len(matches)
	if query.Offset >= total {
		return []*domain.Product{}, total, nil
	}
	end := total
	if query.Limit > 0 && query.Offset+query.Limit < end {
		end = query.Offset + query.Limit
	}
	return matches[query.Offset:end], total, nil
}

func (r *Repository) sortedLocked() []*domain.Product {
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		clone := *product
		list = append(list, &clone)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
