package errors

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type of every error body the storefront writes.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper turns a bounded context's errors into a problem. ok is false
// when the error belongs to someone else.
type ErrorMapper func(err error) (problem ProblemDetail, ok bool)

// Responder writes problem bodies for the catalog and orders handlers.
// Mappers run in order; the first match wins and unmatched errors become 500s.
type Responder struct {
	baseURI string
	mappers []ErrorMapper
	logger  *slog.Logger
}

// NewChainedResponder builds a Responder. A non-empty baseURI turns the
// relative /problems/... types into absolute URIs.
func NewChainedResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{baseURI: baseURI, mappers: mappers, logger: slog.Default()}
}

// Respond writes problem and aborts the handler chain.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.baseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.baseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError maps err through the chain. A ProblemDetail passes through
// untouched; anything unrecognised is logged and answered with a 500.
func (r *Responder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.logger.ErrorContext(c.Request.Context(), "unmapped handler error",
		slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))
	r.Respond(c, ErrInternal.WithDetail(err.Error()))
}

func (r *Responder) NotFound(c *gin.Context, resourceType string, identifier any) {
	r.Respond(c, NewNotFoundProblem(resourceType, identifier))
}

// BadRequest covers bodies that could not be decoded at all.
func (r *Responder) BadRequest(c *gin.Context, detail string) {
	r.Respond(c, ErrBadRequest.WithDetail(detail))
}

// ValidationFailed reports field -> reason pairs under the "fields" extension.
func (r *Responder) ValidationFailed(c *gin.Context, fieldErrors map[string]string) {
	r.Respond(c, NewValidationProblem(fieldErrors))
}
