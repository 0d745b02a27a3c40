package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	"github.com/freshharvest/harvest-api/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order store. Appends are serialized, so list
// order is insertion order.
type Repository struct {
	mu     sync.RWMutex
	byID   map[string]*domain.Order
	sorted []*domain.Order
}

func NewRepository() *Repository {
	return &Repository{byID: map[string]*domain.Order{}}
}

func (r *Repository) Insert(_ context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return err
	}
	clone := order.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[clone.ID]; exists {
		return ports.ErrDuplicateID
	}
	r.byID[clone.ID] = clone
	r.sorted = append(r.sorted, clone)
	return nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *Repository) List(_ context.Context) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0, len(r.sorted))
	for _, order := range r.sorted {
		list = append(list, order.Clone())
	}
	return list, nil
}

func (r *Repository) FindByStatus(_ context.Context, statuses []domain.Status) ([]*domain.Order, error) {
	wanted := make(map[domain.Status]struct{}, len(statuses))
	for _, s := range statuses {
		wanted[s] = struct{}{}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0)
	for _, order := range r.sorted {
		if _, ok := wanted[order.Status]; ok {
			list = append(list, order.Clone())
		}
	}
	return list, nil
}

func (r *Repository) UpdateStatus(_ context.Context, id string, status domain.Status) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.byID[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	if err := order.UpdateStatus(status); err != nil {
		return nil, err
	}
	return order.Clone(), nil
}
