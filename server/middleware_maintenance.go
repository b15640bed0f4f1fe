package bookingserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	platformredis "github.com/mariusel9911/Proiect-IC-sub001/internal/platform/redis"
	apierrors "github.com/mariusel9911/Proiect-IC-sub001/internal/shared/errors"
)

const (
	maintenanceFlagOperation = "maintenance"
	maintenanceFlagKey       = "enabled"
)

// maintenanceAllowed lists method/path pairs that stay reachable while the
// API is gated: liveness and catalog reads.
var maintenanceAllowed = map[string]struct{}{
	http.MethodGet + " /health":                 {},
	http.MethodGet + " /v1/services":            {},
	http.MethodGet + " /v1/services/:serviceId": {},
}

// MaintenanceGate short-circuits requests with 503 while the maintenance
// flag is raised. The flag lives in Redis so it can be flipped without a
// redeploy; the boolean fallback applies when Redis is absent.
func MaintenanceGate(flags *platformredis.Client, fallback bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !maintenanceEnabled(c, flags, fallback) {
			c.Next()
			return
		}
		if _, ok := maintenanceAllowed[c.Request.Method+" "+c.FullPath()]; ok {
			c.Next()
			return
		}
		respondProblem(c, apierrors.ErrServiceUnavailable.WithDetail("the API is temporarily down for maintenance"))
		c.Abort()
	}
}

func maintenanceEnabled(c *gin.Context, flags *platformredis.Client, fallback bool) bool {
	if flags != nil {
		value, err := flags.Get(c.Request.Context(), flags.Key(maintenanceFlagOperation, maintenanceFlagKey))
		if err == nil && value != "" {
			return isTruthy(value)
		}
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}
