package memory

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	"github.com/freshharvest/harvest-api/internal/domains/orders/ports"
)

type demoOrder struct {
	id        string
	productID int64
	product   string
	price     int64
	quantity  int
	customer  string
	contact   string
	email     string
	address   string
	status    domain.Status
	createdAt string
}

// oldest first so insertion order matches createdAt
var demoOrders = []demoOrder{
	{"stu901", 6, "Onions", 35, 45, "Edward Foster", "3210987654", "edward@example.com", "404 Birch St, City, State, 12345", domain.StatusDelivered, "2023-04-12T08:50:00Z"},
	{"pqr678", 4, "Potatoes", 30, 60, "Diana Evans", "4321098765", "diana@example.com", "303 Cedar St, City, State, 12345", domain.StatusPending, "2023-04-13T13:25:00Z"},
	{"mno345", 8, "Oranges", 100, 35, "Charlie Davis", "5432109876", "charlie@example.com", "202 Maple St, City, State, 12345", domain.StatusInProgress, "2023-04-14T11:10:00Z"},
	{"jkl012", 2, "Bananas", 60, 40, "Alice Brown", "6543210987", "alice@example.com", "101 Elm St, City, State, 12345", domain.StatusPending, "2023-04-15T16:45:00Z"},
	{"ghi789", 5, "Tomatoes", 80, 30, "Bob Johnson", "7654321098", "bob@example.com", "789 Pine St, City, State, 12345", domain.StatusDelivered, "2023-04-16T09:15:00Z"},
	{"def456", 3, "Carrots", 40, 50, "Jane Smith", "8765432109", "jane@example.com", "456 Oak St, City, State, 12345", domain.StatusInProgress, "2023-04-17T14:20:00Z"},
	{"abc123", 1, "Apples", 120, 25, "John Doe", "9876543210", "john@example.com", "123 Main St, City, State, 12345", domain.StatusPending, "2023-04-18T10:30:00Z"},
}

// SeedDemo loads the storefront's sample orders. Existing IDs are skipped.
func (r *Repository) SeedDemo(ctx context.Context, leadTime time.Duration) (int, error) {
	return SeedDemoOrders(ctx, r, leadTime)
}

// SeedDemoOrders inserts the sample orders into any order store, skipping
// IDs that already exist.
func SeedDemoOrders(ctx context.Context, repo ports.Repository, leadTime time.Duration) (int, error) {
	inserted := 0
	for _, d := range demoOrders {
		order, err := d.build(leadTime)
		if err != nil {
			return inserted, err
		}
		_, err = repo.GetByID(ctx, d.id)
		if err == nil {
			continue
		}
		if !errors.Is(err, ports.ErrNotFound) {
			return inserted, err
		}
		if err := repo.Insert(ctx, order); err != nil {
			if errors.Is(err, ports.ErrDuplicateID) {
				continue
			}
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func (d demoOrder) build(leadTime time.Duration) (*domain.Order, error) {
	createdAt, err := time.Parse(time.RFC3339, d.createdAt)
	if err != nil {
		return nil, err
	}
	email := d.email
	order, err := domain.NewOrder(d.id, domain.Details{
		ProductID:    d.productID,
		Quantity:     d.quantity,
		CustomerName: d.customer,
		Contact:      d.contact,
		Email:        &email,
		Address:      d.address,
	}, domain.ProductSnapshot{Name: d.product, UnitPrice: decimal.NewFromInt(d.price)}, createdAt, leadTime)
	if err != nil {
		return nil, err
	}
	if err := order.UpdateStatus(d.status); err != nil {
		return nil, err
	}
	return order, nil
}
