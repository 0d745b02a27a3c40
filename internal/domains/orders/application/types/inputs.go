package types

import "github.com/freshharvest/harvest-api/internal/domains/orders/domain"

// CreateOrderInput carries raw customer fields. Numbers stay textual so
// intake can report parse failures per field.
type CreateOrderInput struct {
	ProductID    string `json:"productId" validate:"required"`
	Quantity     string `json:"quantity" validate:"required"`
	CustomerName string `json:"customerName" validate:"required,min=2"`
	Contact      string `json:"contact" validate:"required,min=10"`
	Email        string `json:"email" validate:"omitempty,email"`
	Address      string `json:"address" validate:"required,min=5"`

	// IdempotencyKey comes from the Idempotency-Key header, not the body.
	IdempotencyKey string `json:"-" validate:"-"`
}

// RecentOrdersQuery bounds the admin listing. Limit zero means all.
type RecentOrdersQuery struct {
	Limit    int
	Statuses []domain.Status
}
