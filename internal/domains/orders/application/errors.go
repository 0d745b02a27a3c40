package application

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/freshharvest/harvest-api/internal/domains/orders/domain"
	"github.com/freshharvest/harvest-api/internal/domains/orders/ports"
)

var (
	// ErrInvalidInput signals the request violated an order invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrDependency signals a collaborator (catalog, store, mail) failed.
	ErrDependency = errors.New("order dependency unavailable")
	// ErrIdempotencyConflict signals a reused Idempotency-Key with a different order.
	ErrIdempotencyConflict = ports.ErrIdempotencyConflict
)

// ValidationError reports every offending field with a reason.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

var domainFields = []struct {
	err   error
	field string
}{
	{domain.ErrInvalidProductID, "productId"},
	{domain.ErrInvalidQuantity, "quantity"},
	{domain.ErrEmptyCustomerName, "customerName"},
	{domain.ErrEmptyContact, "contact"},
	{domain.ErrEmptyAddress, "address"},
	{domain.ErrInvalidEmail, "email"},
	{domain.ErrInvalidStatus, "status"},
	{domain.ErrEmptyID, "id"},
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	for _, df := range domainFields {
		if errors.Is(err, df.err) {
			return &ValidationError{Fields: map[string]string{df.field: df.err.Error()}}
		}
	}
	return err
}

func dependencyError(collaborator string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDependency, collaborator, err)
}

// storeError keeps not-found as is and reports any other store failure as a
// dependency outage.
func storeError(err error) error {
	if err == nil || errors.Is(err, ports.ErrNotFound) {
		return err
	}
	return dependencyError("order store", err)
}
