package storefrontserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cartapp "github.com/Apurer/exotica-pets/internal/domains/cart/application"
	cartports "github.com/Apurer/exotica-pets/internal/domains/cart/ports"
	catalogapp "github.com/Apurer/exotica-pets/internal/domains/catalog/application"
	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
	apierrors "github.com/Apurer/exotica-pets/internal/shared/errors"
)

// newResponder builds the problem responder shared by the handlers of one router.
func newResponder(logger *slog.Logger) *apierrors.Responder {
	r := apierrors.NewResponder("", cartErrorMapper, catalogErrorMapper)
	r.Logger = logger
	return r
}

// problemWriter gives the API sections access to their router's responder.
type problemWriter struct {
	responder *apierrors.Responder
}

func (p *problemWriter) useResponder(r *apierrors.Responder) {
	p.responder = r
}

func (p problemWriter) problems() *apierrors.Responder {
	if p.responder == nil {
		return newResponder(nil)
	}
	return p.responder
}

func (p problemWriter) respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	p.problems().Respond(c, problem)
}

// respondError answers transport-level failures such as malformed bodies.
func (p problemWriter) respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	p.respondProblem(c, problem)
}

// respondServiceError maps application errors of either bounded context.
func (p problemWriter) respondServiceError(c *gin.Context, err error) {
	p.problems().RespondError(c, err)
}

func catalogErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	var recordErr *catalogtypes.RecordError
	switch {
	case errors.As(err, &recordErr):
		return apierrors.NewValidationProblem(recordErr.Fields).WithDetail(err.Error()), true
	case errors.Is(err, catalogapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, catalogports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, catalogports.ErrImportConflict):
		return apierrors.ErrConflict.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}

func cartErrorMapper(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, cartapp.ErrCartScopeMissing):
		return apierrors.ErrCartScope.WithDetail(err.Error()), true
	case errors.Is(err, cartapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(err.Error()), true
	case errors.Is(err, cartapp.ErrCartNotFound), errors.Is(err, cartports.ErrAnimalNotFound):
		return apierrors.ErrNotFound.WithDetail(err.Error()), true
	case errors.Is(err, cartapp.ErrOutOfStock):
		return apierrors.ErrOutOfStock.WithDetail(err.Error()), true
	case errors.Is(err, cartapp.ErrExceedsStock):
		return apierrors.ErrStockLimit.WithDetail(err.Error()), true
	}
	return apierrors.ProblemDetail{}, false
}
