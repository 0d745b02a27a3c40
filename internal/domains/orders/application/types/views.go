package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
)

// TrackingStep is one stage of the public progress bar.
type TrackingStep struct {
	Status  domain.Status
	Reached bool
	Current bool
}

// TrackingView is what the public tracking page shows for an order.
// EstimatedDelivery is nil once the order is delivered.
type TrackingView struct {
	Order             *domain.Order
	Steps             []TrackingStep
	EstimatedDelivery *time.Time
}

// RecentCustomer summarizes one of the latest orders on the dashboard.
type RecentCustomer struct {
	OrderID      string
	CustomerName string
	ProductName  string
	Quantity     int
	Status       domain.Status
	CreatedAt    time.Time
}

// Dashboard aggregates order activity for operators.
type Dashboard struct {
	TotalOrders     int
	Counts          map[domain.Status]int
	Kilograms       map[domain.Status]int
	Revenue         decimal.Decimal
	RecentCustomers []RecentCustomer
}
