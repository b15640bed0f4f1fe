package bookingserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/application"
	catalogdomain "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/domain"
	catalogports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/ports"
	ordersapp "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/application"
	ordersdomain "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/domain"
	ordersports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/ports"
	apierrors "github.com/mariusel9911/Proiect-IC-sub001/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError maps a status/error pair onto an RFC 7807 response.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	case http.StatusConflict:
		problem = apierrors.ErrConflict.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

// respondOrderServiceError classifies orders application errors. Storage
// failures fall through to a generic internal problem so driver messages
// never reach clients.
func respondOrderServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, ordersports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, ordersports.ErrServiceNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, ordersports.ErrInvalidSelection):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, ordersapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, ordersapp.ErrForbidden):
		respondError(c, http.StatusForbidden, err)
	case errors.Is(err, ordersdomain.ErrInvalidFulfillmentStatus),
		errors.Is(err, ordersdomain.ErrInvalidPaymentStatus),
		errors.Is(err, ordersdomain.ErrMethodMismatch),
		errors.Is(err, ordersdomain.ErrMissingCallbackFields):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, ordersdomain.ErrInvalidTransition):
		respondProblem(c, apierrors.ErrInvalidTransition.WithDetail(err.Error()))
	case errors.Is(err, ordersports.ErrConflict):
		respondError(c, http.StatusConflict, err)
	default:
		apierrors.RespondError(c, err)
	}
}

// respondCatalogServiceError classifies catalog application errors.
func respondCatalogServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, catalogports.ErrNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, catalogapp.ErrEmptySelection),
		errors.Is(err, catalogapp.ErrUnknownOption),
		errors.Is(err, catalogdomain.ErrEmptyName),
		errors.Is(err, catalogdomain.ErrNegativePrice),
		errors.Is(err, catalogdomain.ErrEmptyOptions),
		errors.Is(err, catalogdomain.ErrEmptyOptionName),
		errors.Is(err, catalogdomain.ErrDuplicateSlot):
		respondError(c, http.StatusBadRequest, err)
	default:
		apierrors.RespondError(c, err)
	}
}
