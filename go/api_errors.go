package storefrontserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/freshharvest/harvest-api/internal/domains/catalog/application"
	catalogports "github.com/freshharvest/harvest-api/internal/domains/catalog/ports"
	ordersapp "github.com/freshharvest/harvest-api/internal/domains/orders/application"
	ordersports "github.com/freshharvest/harvest-api/internal/domains/orders/ports"
	apierrors "github.com/freshharvest/harvest-api/internal/shared/errors"
)

// responder renders every handler error as RFC 7807. Orders are mapped
// before the catalog so a ValidationError keeps its field map.
var responder = apierrors.NewChainedResponder("", mapOrderError, mapCatalogError)

func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}

func respondFieldError(c *gin.Context, field, reason string) {
	responder.ValidationFailed(c, map[string]string{field: reason})
}

func mapOrderError(err error) (apierrors.ProblemDetail, bool) {
	var validation *ordersapp.ValidationError
	if errors.As(err, &validation) {
		return apierrors.NewValidationProblem(validation.Fields), true
	}
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrIdempotencyConflict):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	case errors.Is(err, ordersapp.ErrDependency):
		return apierrors.NewDependencyProblem(err.Error()), true
	case errors.Is(err, ordersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func mapCatalogError(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
