package types

import "github.com/shopspring/decimal"

// ProductInput carries the admin-editable product fields.
type ProductInput struct {
	Name  string
	Price decimal.Decimal
}
