package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyID           = errors.New("order id is required")
	ErrInvalidProductID  = errors.New("product id must be greater than zero")
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrEmptyCustomerName = errors.New("customer name is required")
	ErrEmptyContact      = errors.New("contact is required")
	ErrEmptyAddress      = errors.New("address is required")
	ErrInvalidEmail      = errors.New("email address is invalid")
)

// ProductSnapshot is the catalog data copied onto an order when it is placed.
type ProductSnapshot struct {
	Name      string
	UnitPrice decimal.Decimal
}

// Details are the customer-supplied parts of an order.
type Details struct {
	ProductID    int64
	Quantity     int
	CustomerName string
	Contact      string
	Email        *string
	Address      string
}

// Order is a bulk purchase of one product, measured in kilograms.
type Order struct {
	ID                string
	ProductID         int64
	ProductName       string
	UnitPrice         decimal.Decimal
	Quantity          int
	CustomerName      string
	Contact           string
	Email             *string
	Address           string
	Status            Status
	CreatedAt         time.Time
	EstimatedDelivery *time.Time
}

// NewOrder builds a Pending order. A positive leadTime sets EstimatedDelivery.
// createdAt is kept at microsecond precision to match the Postgres columns.
func NewOrder(id string, details Details, product ProductSnapshot, createdAt time.Time, leadTime time.Duration) (*Order, error) {
	order := &Order{
		ID:           strings.TrimSpace(id),
		ProductID:    details.ProductID,
		ProductName:  product.Name,
		UnitPrice:    product.UnitPrice,
		Quantity:     details.Quantity,
		CustomerName: strings.TrimSpace(details.CustomerName),
		Contact:      strings.TrimSpace(details.Contact),
		Email:        normalizeEmail(details.Email),
		Address:      strings.TrimSpace(details.Address),
		Status:       StatusPending,
		CreatedAt:    createdAt.UTC().Truncate(time.Microsecond),
	}
	if leadTime > 0 {
		eta := order.CreatedAt.Add(leadTime)
		order.EstimatedDelivery = &eta
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	return order, nil
}

// Validate enforces invariants on the aggregate.
func (o *Order) Validate() error {
	if o.ID == "" {
		return ErrEmptyID
	}
	if o.ProductID <= 0 {
		return ErrInvalidProductID
	}
	if o.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if o.CustomerName == "" {
		return ErrEmptyCustomerName
	}
	if o.Contact == "" {
		return ErrEmptyContact
	}
	if o.Address == "" {
		return ErrEmptyAddress
	}
	if o.Email != nil {
		if _, err := mail.ParseAddress(*o.Email); err != nil {
			return ErrInvalidEmail
		}
	}
	if !o.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// UpdateStatus moves the order to status. Any known status may follow any other.
func (o *Order) UpdateStatus(status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	o.Status = status
	return nil
}

// Subtotal is quantity times the snapshotted unit price.
func (o *Order) Subtotal() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

func (o *Order) HasEmail() bool {
	return o.Email != nil && *o.Email != ""
}

// Clone returns a deep copy.
func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	if o.Email != nil {
		email := *o.Email
		clone.Email = &email
	}
	if o.EstimatedDelivery != nil {
		eta := *o.EstimatedDelivery
		clone.EstimatedDelivery = &eta
	}
	return &clone
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
