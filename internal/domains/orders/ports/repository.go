package ports

import (
	"context"
	"errors"

	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
)

var (
	ErrNotFound    = errors.New("order not found")
	ErrDuplicateID = errors.New("order id already exists")
)

// Repository owns the authoritative collection of orders. Orders are never deleted.
type Repository interface {
	// Insert appends a new order; an existing ID yields ErrDuplicateID.
	Insert(ctx context.Context, order *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns every order, oldest first.
	List(ctx context.Context) ([]*domain.Order, error)
	// FindByStatus returns orders in any of the given statuses, oldest first.
	FindByStatus(ctx context.Context, statuses []domain.Status) ([]*domain.Order, error)
	// UpdateStatus sets the status in a single write and returns the stored record.
	UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error)
}
