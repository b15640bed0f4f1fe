package bookingserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	cataloghttpmapper "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/mariusel9911/Proiect-IC-sub001/internal/domains/catalog/ports"
)

// CatalogAPI wires HTTP transport with the catalog bounded context service.
type CatalogAPI struct {
	service catalogports.Service
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// Post /v1/services
// Register a bookable service (admin only)
func (api *CatalogAPI) CreateService(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	var payload cataloghttpmapper.MutationService
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	created, err := api.service.CreateService(c.Request.Context(), cataloghttpmapper.ToDomainService(payload))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cataloghttpmapper.FromDomainService(created))
}

// Get /v1/services
// List all bookable services
func (api *CatalogAPI) ListServices(c *gin.Context) {
	services, err := api.service.ListServices(c.Request.Context())
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainServices(services))
}

// Get /v1/services/:serviceId
// Fetch one bookable service
func (api *CatalogAPI) GetServiceById(c *gin.Context) {
	id, ok := parseServiceIDParam(c)
	if !ok {
		return
	}
	service, err := api.service.GetService(c.Request.Context(), id)
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainService(service))
}

// Put /v1/services/:serviceId
// Replace a bookable service (admin only)
func (api *CatalogAPI) UpdateService(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	id, ok := parseServiceIDParam(c)
	if !ok {
		return
	}
	var payload cataloghttpmapper.MutationService
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.UpdateService(c.Request.Context(), id, cataloghttpmapper.ToDomainService(payload))
	if err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cataloghttpmapper.FromDomainService(updated))
}

// Delete /v1/services/:serviceId
// Remove a bookable service (admin only)
func (api *CatalogAPI) DeleteService(c *gin.Context) {
	if _, ok := requireAdmin(c); !ok {
		return
	}
	id, ok := parseServiceIDParam(c)
	if !ok {
		return
	}
	if err := api.service.DeleteService(c.Request.Context(), id); err != nil {
		respondCatalogServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func parseServiceIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("serviceId"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return uuid.Nil, false
	}
	return id, true
}
