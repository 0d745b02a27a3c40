package mapper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	orderstypes "github.com/freshharvest/harvest-api/internal/domains/orders/application/types"
	ordersdomain "github.com/freshharvest/harvest-api/internal/domains/orders/domain"
)

// LooseString accepts a JSON string or number and keeps its literal text, so
// intake can report "must be an integer" instead of a decode failure.
type LooseString string

func (l *LooseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*l = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = LooseString(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", data)
		}
		*l = LooseString(n.String())
	}
	return nil
}

// CreateOrder is the public order submission payload.
type CreateOrder struct {
	ProductID    LooseString `json:"productId"`
	Quantity     LooseString `json:"quantity"`
	CustomerName string      `json:"customerName"`
	Contact      string      `json:"contact"`
	Email        *string     `json:"email,omitempty"`
	Address      string      `json:"address"`
}

// StatusUpdate is the admin status change payload.
type StatusUpdate struct {
	Status string `json:"status"`
}

// Order is the HTTP representation of an order.
type Order struct {
	ID                string      `json:"id"`
	ProductID         int64       `json:"productId"`
	ProductName       string      `json:"productName"`
	UnitPrice         json.Number `json:"unitPrice"`
	Quantity          int         `json:"quantity"`
	Subtotal          json.Number `json:"subtotal"`
	CustomerName      string      `json:"customerName"`
	Contact           string      `json:"contact"`
	Email             *string     `json:"email,omitempty"`
	Address           string      `json:"address"`
	Status            string      `json:"status"`
	CreatedAt         time.Time   `json:"createdAt"`
	EstimatedDelivery *time.Time  `json:"estimatedDelivery,omitempty"`
}

type TrackingStep struct {
	Status  string `json:"status"`
	Reached bool   `json:"reached"`
	Current bool   `json:"current"`
}

type Tracking struct {
	Order             Order          `json:"order"`
	Steps             []TrackingStep `json:"steps"`
	EstimatedDelivery *time.Time     `json:"estimatedDelivery,omitempty"`
}

type RecentCustomer struct {
	OrderID      string    `json:"orderId"`
	CustomerName string    `json:"customerName"`
	ProductName  string    `json:"productName"`
	Quantity     int       `json:"quantity"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Dashboard struct {
	TotalOrders       int              `json:"totalOrders"`
	OrdersByStatus    map[string]int   `json:"ordersByStatus"`
	KilogramsByStatus map[string]int   `json:"kilogramsByStatus"`
	Revenue           json.Number      `json:"revenue"`
	RecentCustomers   []RecentCustomer `json:"recentCustomers"`
}

type NotificationReceipt struct {
	OrderID   string    `json:"orderId"`
	Kind      string    `json:"kind"`
	Recipient string    `json:"recipient"`
	SentAt    time.Time `json:"sentAt"`
}

// ToCreateOrderInput maps the payload to intake input. A null email is absent.
func ToCreateOrderInput(payload CreateOrder) orderstypes.CreateOrderInput {
	input := orderstypes.CreateOrderInput{
		ProductID:    string(payload.ProductID),
		Quantity:     string(payload.Quantity),
		CustomerName: payload.CustomerName,
		Contact:      payload.Contact,
		Address:      payload.Address,
	}
	if payload.Email != nil {
		input.Email = *payload.Email
	}
	return input
}

func FromDomainOrder(order *ordersdomain.Order) Order {
	if order == nil {
		return Order{}
	}
	return Order{
		ID:                order.ID,
		ProductID:         order.ProductID,
		ProductName:       order.ProductName,
		UnitPrice:         json.Number(order.UnitPrice.String()),
		Quantity:          order.Quantity,
		Subtotal:          json.Number(order.Subtotal().String()),
		CustomerName:      order.CustomerName,
		Contact:           order.Contact,
		Email:             order.Email,
		Address:           order.Address,
		Status:            string(order.Status),
		CreatedAt:         order.CreatedAt,
		EstimatedDelivery: order.EstimatedDelivery,
	}
}

func FromDomainOrders(orders []*ordersdomain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDomainOrder(o))
	}
	return out
}

func FromTrackingView(view *orderstypes.TrackingView) Tracking {
	if view == nil {
		return Tracking{Steps: []TrackingStep{}}
	}
	steps := make([]TrackingStep, 0, len(view.Steps))
	for _, s := range view.Steps {
		steps = append(steps, TrackingStep{Status: string(s.Status), Reached: s.Reached, Current: s.Current})
	}
	return Tracking{
		Order:             FromDomainOrder(view.Order),
		Steps:             steps,
		EstimatedDelivery: view.EstimatedDelivery,
	}
}

func FromDashboard(d *orderstypes.Dashboard) Dashboard {
	if d == nil {
		return Dashboard{}
	}
	out := Dashboard{
		TotalOrders:       d.TotalOrders,
		OrdersByStatus:    make(map[string]int, len(d.Counts)),
		KilogramsByStatus: make(map[string]int, len(d.Kilograms)),
		Revenue:           json.Number(d.Revenue.String()),
		RecentCustomers:   make([]RecentCustomer, 0, len(d.RecentCustomers)),
	}
	for status, n := range d.Counts {
		out.OrdersByStatus[string(status)] = n
	}
	for status, kg := range d.Kilograms {
		out.KilogramsByStatus[string(status)] = kg
	}
	for _, c := range d.RecentCustomers {
		out.RecentCustomers = append(out.RecentCustomers, RecentCustomer{
			OrderID:      c.OrderID,
			CustomerName: c.CustomerName,
			ProductName:  c.ProductName,
			Quantity:     c.Quantity,
			Status:       string(c.Status),
			CreatedAt:    c.CreatedAt,
		})
	}
	return out
}

func FromReceipt(r *ordersdomain.NotificationReceipt) NotificationReceipt {
	if r == nil {
		return NotificationReceipt{}
	}
	return NotificationReceipt{OrderID: r.OrderID, Kind: string(r.Kind), Recipient: r.Recipient, SentAt: r.SentAt}
}
