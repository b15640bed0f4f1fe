package bookingserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ordersports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/orders/ports"
	principalsapp "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/application"
	principalsports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/principals/ports"
	apierrors "github.com/mariusel9911/Proiect-IC-sub001/internal/shared/errors"
)

// PrincipalHeader carries the acting principal's identifier. Credential
// issuance happens upstream; this API only resolves the referenced record.
const PrincipalHeader = "X-Principal-ID"

const actorContextKey = "bookingserver.actor"

// authSkipPaths are reachable without a principal header.
var authSkipPaths = map[string]struct{}{
	"/health": {},
}

// PrincipalAuth resolves the X-Principal-ID header into an actor on every
// request. The lookup always hits the principals service so that privilege
// or deactivation changes take effect immediately.
func PrincipalAuth(principals principalsports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authSkipPaths[c.FullPath()]; ok {
			c.Next()
			return
		}
		raw := strings.TrimSpace(c.GetHeader(PrincipalHeader))
		if raw == "" {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("missing "+PrincipalHeader+" header"))
			c.Abort()
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			respondProblem(c, apierrors.ErrUnauthorized.WithDetail("malformed "+PrincipalHeader+" header"))
			c.Abort()
			return
		}
		principal, err := principals.Resolve(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, principalsapp.ErrInactive) {
				respondProblem(c, apierrors.ErrForbidden.WithDetail("principal is deactivated"))
			} else {
				respondProblem(c, apierrors.ErrUnauthorized.WithDetail("unknown principal"))
			}
			c.Abort()
			return
		}
		c.Set(actorContextKey, ordersports.Actor{ID: principal.ID, Admin: principal.Admin})
		c.Next()
	}
}

// currentActor extracts the resolved actor, responding 401 when absent.
func currentActor(c *gin.Context) (ordersports.Actor, bool) {
	value, ok := c.Get(actorContextKey)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("no principal resolved for request"))
		return ordersports.Actor{}, false
	}
	actor, ok := value.(ordersports.Actor)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("no principal resolved for request"))
		return ordersports.Actor{}, false
	}
	return actor, true
}

// requireAdmin responds 403 unless the actor carries the admin flag.
func requireAdmin(c *gin.Context) (ordersports.Actor, bool) {
	actor, ok := currentActor(c)
	if !ok {
		return ordersports.Actor{}, false
	}
	if !actor.Admin {
		respondError(c, http.StatusForbidden, errors.New("administrator privileges required"))
		return ordersports.Actor{}, false
	}
	return actor, true
}
