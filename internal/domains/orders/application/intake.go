package application

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	orderstypes "github.com/freshharvest/harvest-api/internal/domains/orders/application/types"
	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
)

// intake checks customer fields before anything touches the store.
type intake struct {
	validate *validator.Validate
}

func newIntake() *intake {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return &intake{validate: v}
}

func (in *intake) check(input orderstypes.CreateOrderInput) (domain.Details, error) {
	input = trimInput(input)
	fields := map[string]string{}

	if err := in.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return domain.Details{}, err
		}
		for _, fe := range verrs {
			fields[fe.Field()] = reason(fe)
		}
	}

	var details domain.Details
	if _, bad := fields["productId"]; !bad {
		id, err := strconv.ParseInt(input.ProductID, 10, 64)
		switch {
		case err != nil:
			fields["productId"] = "must be an integer"
		case id <= 0:
			fields["productId"] = "must be greater than zero"
		default:
			details.ProductID = id
		}
	}
	if _, bad := fields["quantity"]; !bad {
		qty, err := strconv.Atoi(input.Quantity)
		switch {
		case err != nil:
			fields["quantity"] = "must be a whole number of kilograms"
		case qty <= 0:
			fields["quantity"] = "must be greater than zero"
		default:
			details.Quantity = qty
		}
	}
	if len(fields) > 0 {
		return domain.Details{}, &ValidationError{Fields: fields}
	}

	details.CustomerName = input.CustomerName
	details.Contact = input.Contact
	details.Address = input.Address
	if input.Email != "" {
		email := input.Email
		details.Email = &email
	}
	return details, nil
}

func trimInput(input orderstypes.CreateOrderInput) orderstypes.CreateOrderInput {
	input.ProductID = strings.TrimSpace(input.ProductID)
	input.Quantity = strings.TrimSpace(input.Quantity)
	input.CustomerName = strings.TrimSpace(input.CustomerName)
	input.Contact = strings.TrimSpace(input.Contact)
	input.Email = strings.TrimSpace(input.Email)
	input.Address = strings.TrimSpace(input.Address)
	return input
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	default:
		return fmt.Sprintf("failed %s check", fe.Tag())
	}
}
