package storefrontserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/exotica-pets/internal/domains/catalog/adapters/http/mapper"
	catalogtypes "github.com/Apurer/exotica-pets/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/exotica-pets/internal/domains/catalog/ports"
)

// CatalogAPI wires HTTP transport with the catalog bounded context service and workflows.
type CatalogAPI struct {
	problemWriter
	service   catalogports.Service
	workflows catalogports.WorkflowOrchestrator
}

// NewCatalogAPI creates a CatalogAPI backed by the provided service.
func NewCatalogAPI(service catalogports.Service, workflows catalogports.WorkflowOrchestrator) CatalogAPI {
	return CatalogAPI{service: service, workflows: workflows}
}

// Get /v1/animals
// Lists animals matching the sidebar filters and search box
func (api *CatalogAPI) ListAnimals(c *gin.Context) {
	var query catalogmapper.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		api.respondError(c, http.StatusBadRequest, err)
		return
	}
	page, err := api.service.List(c.Request.Context(), catalogmapper.ToListInput(query))
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromPage(page))
}

// Get /v1/animals/:animalId
// Find animal by ID
func (api *CatalogAPI) GetAnimal(c *gin.Context) {
	animal, err := api.service.GetByID(c.Request.Context(), catalogtypes.AnimalIdentifier{ID: c.Param("animalId")})
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromProjection(animal))
}

// Put /v1/animals
// Creates or replaces a listing
func (api *CatalogAPI) UpsertAnimal(c *gin.Context) {
	var payload catalogmapper.AnimalPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.respondError(c, http.StatusBadRequest, err)
		return
	}
	saved, err := api.service.Upsert(c.Request.Context(), catalogmapper.ToUpsertInput(payload))
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromProjection(saved))
}

// Delete /v1/animals/:animalId
// Removes a listing
func (api *CatalogAPI) DeleteAnimal(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), catalogtypes.AnimalIdentifier{ID: c.Param("animalId")}); err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/catalog/filters
// Lists the sidebar options
func (api *CatalogAPI) ListFilters(c *gin.Context) {
	options, err := api.service.Filters(c.Request.Context())
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromFilterOptions(options))
}

// Post /v1/catalog/import
// Imports a batch of listings; the Idempotency-Key header wins over the body field
func (api *CatalogAPI) ImportCatalog(c *gin.Context) {
	var payload catalogmapper.ImportRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.respondError(c, http.StatusBadRequest, err)
		return
	}
	if key := strings.TrimSpace(c.GetHeader("Idempotency-Key")); key != "" {
		payload.IdempotencyKey = key
	}
	result, err := api.importCatalog(c.Request.Context(), catalogmapper.ToImportInput(payload))
	if err != nil {
		api.respondServiceError(c, err)
		return
	}
	if result.Replayed {
		c.Header("Idempotent-Replayed", "true")
	}
	c.JSON(http.StatusOK, catalogmapper.FromImportResult(result))
}

func (api *CatalogAPI) importCatalog(ctx context.Context, input catalogtypes.ImportCatalogInput) (*catalogtypes.ImportResult, error) {
	if api.workflows != nil {
		return api.workflows.ImportCatalog(ctx, input)
	}
	return api.service.Import(ctx, input)
}
