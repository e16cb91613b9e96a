package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// ErrorMapper translates a domain or application error into a ProblemDetail.
type ErrorMapper func(err error) (ProblemDetail, bool)

// Responder writes Problem Details, consulting its mappers before falling back to 500.
// Unmapped errors never leak their message to the client; they are attached to the
// gin context and logged instead.
type Responder struct {
	// BaseURI is prepended to problem type URIs if they are relative.
	BaseURI string
	Logger  *slog.Logger
	mappers []ErrorMapper
}

// NewResponder creates a responder with optional base URI and error mappers.
func NewResponder(baseURI string, mappers ...ErrorMapper) *Responder {
	return &Responder{BaseURI: baseURI, mappers: mappers}
}

// Respond sends a ProblemDetail response with the problem media type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.AbortWithStatusJSON(problem.Status, problem)
}

// RespondError maps err through the chain; ProblemDetail values pass through untouched.
func (r *Responder) RespondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			r.Respond(c, problem)
			return
		}
	}
	r.internal(c, err)
}

// NoRoute answers unknown paths with a not-found problem.
func (r *Responder) NoRoute(c *gin.Context) {
	r.Respond(c, ErrNotFound.WithDetail(fmt.Sprintf("no route for %s", c.Request.URL.Path)))
}

// NoMethod answers known paths called with an unsupported method.
func (r *Responder) NoMethod(c *gin.Context) {
	r.Respond(c, ErrMethodNotAllowed.WithDetail(fmt.Sprintf("%s is not supported here", c.Request.Method)))
}

// Recovery converts handler panics into an internal-error problem.
func (r *Responder) Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		r.internal(c, fmt.Errorf("panic: %v", recovered))
	})
}

func (r *Responder) internal(c *gin.Context, err error) {
	_ = c.Error(err)
	if r.Logger != nil && c.Request != nil {
		r.Logger.ErrorContext(c.Request.Context(), "request failed",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("error", err.Error()))
	}
	r.Respond(c, ErrInternal.WithDetail(http.StatusText(http.StatusInternalServerError)))
}
