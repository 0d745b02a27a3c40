package application

import (
	"context"

	"github.com/shopspring/decimal"

	orderstypes "github.com/freshharvest/harvest-api/internal/domains/orders/application/types"
	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
)

const recentCustomerCount = 5

// Dashboard summarizes order volume per status, revenue, and the latest customers.
func (s *Service) Dashboard(ctx context.Context) (*orderstypes.Dashboard, error) {
	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	summary := &orderstypes.Dashboard{
		TotalOrders:     len(orders),
		Counts:          map[domain.Status]int{},
		Kilograms:       map[domain.Status]int{},
		Revenue:         decimal.Zero,
		RecentCustomers: []orderstypes.RecentCustomer{},
	}
	for _, status := range domain.Statuses() {
		summary.Counts[status] = 0
		summary.Kilograms[status] = 0
	}
	for _, order := range orders {
		summary.Counts[order.Status]++
		summary.Kilograms[order.Status] += order.Quantity
		summary.Revenue = summary.Revenue.Add(order.Subtotal())
	}
	for i := len(orders) - 1; i >= 0 && len(summary.RecentCustomers) < recentCustomerCount; i-- {
		o := orders[i]
		summary.RecentCustomers = append(summary.RecentCustomers, orderstypes.RecentCustomer{
			OrderID:      o.ID,
			CustomerName: o.CustomerName,
			ProductName:  o.ProductName,
			Quantity:     o.Quantity,
			Status:       o.Status,
			CreatedAt:    o.CreatedAt,
		})
	}
	return summary, nil
}
