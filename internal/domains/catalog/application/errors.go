package application

import (
	"errors"
	"fmt"

	"github.com/freshharvest/harvest-api/internal/domains/catalog/domain"
	"github.com/freshharvest/harvest-api/internal/domains/catalog/ports"
)

// ErrInvalidInput signals the request violated a catalog invariant.
var ErrInvalidInput = errors.New("invalid product input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidPrice) ||
		errors.Is(err, domain.ErrInvalidProductID) ||
		errors.Is(err, ports.ErrInvalidQuery) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
