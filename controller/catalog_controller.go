package controller

import (
	"homeserve-backend/models"
	"homeserve-backend/services"
	"homeserve-backend/utils/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CatalogController struct {
	service services.CatalogServiceInterface
	logger  logger.Logger
}

func NewCatalogController(service services.CatalogServiceInterface, logger logger.Logger) *CatalogController {
	return &CatalogController{
		service: service,
		logger:  logger,
	}
}

// ListPackages handles GET /api/v1/catalog/packages
// @Summary List service packages
// @Tags Catalog
// @Produce json
// @Param category_id query string false "Filter by category"
// @Param active_only query bool false "Only active packages (default true)"
// @Success 200 {object} models.APIResponse "Packages retrieved successfully"
// @Failure 500 {object} models.APIResponse "Internal Server Error"
// @Router /catalog/packages [get]
func (h *CatalogController) ListPackages(c *gin.Context) {
	filter := &models.PackageFilter{
		CategoryID: c.Query("category_id"),
		ActiveOnly: true,
	}
	if raw := c.Query("active_only"); raw != "" {
		if activeOnly, err := strconv.ParseBool(raw); err == nil {
			filter.ActiveOnly = activeOnly
		}
	}

	packages, err := h.service.ListPackages(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, "Failed to retrieve packages", err)
		return
	}

	c.JSON(http.StatusOK, models.ListResponse(http.StatusOK, "Packages retrieved successfully", packages, len(packages)))
}

// GetPackage handles GET /api/v1/catalog/packages/:id
// @Summary Get a service package
// @Tags Catalog
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} models.APIResponse "Package retrieved successfully"
// @Failure 404 {object} models.APIResponse "Not Found - Package does not exist"
// @Router /catalog/packages/{id} [get]
func (h *CatalogController) GetPackage(c *gin.Context) {
	pkg, err := h.service.GetPackage(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Failed to retrieve package", err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(http.StatusOK, "Package retrieved successfully", pkg))
}

// ListCategories handles GET /api/v1/catalog/categories
// @Summary List service categories
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.APIResponse "Categories retrieved successfully"
// @Router /catalog/categories [get]
func (h *CatalogController) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to retrieve categories", err)
		return
	}

	c.JSON(http.StatusOK, models.ListResponse(http.StatusOK, "Categories retrieved successfully", categories, len(categories)))
}

// ListPanchayaths handles GET /api/v1/catalog/panchayaths
// @Summary List panchayaths
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.APIResponse "Panchayaths retrieved successfully"
// @Router /catalog/panchayaths [get]
func (h *CatalogController) ListPanchayaths(c *gin.Context) {
	panchayaths, err := h.service.ListPanchayaths(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "Failed to retrieve panchayaths", err)
		return
	}

	c.JSON(http.StatusOK, models.ListResponse(http.StatusOK, "Panchayaths retrieved successfully", panchayaths, len(panchayaths)))
}

// GetWards handles GET /api/v1/catalog/panchayaths/:id/wards
// @Summary List the ward numbers of a panchayath
// @Tags Catalog
// @Produce json
// @Param id path string true "Panchayath ID"
// @Success 200 {object} models.APIResponse "Wards retrieved successfully"
// @Failure 404 {object} models.APIResponse "Not Found - Panchayath does not exist"
// @Router /catalog/panchayaths/{id}/wards [get]
func (h *CatalogController) GetWards(c *gin.Context) {
	wards, err := h.service.GetWards(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, "Failed to retrieve wards", err)
		return
	}

	c.JSON(http.StatusOK, models.ListResponse(http.StatusOK, "Wards retrieved successfully", wards, len(wards)))
}

// ListAddOns handles GET /api/v1/catalog/addons
// @Summary List add-on services
// @Tags Catalog
// @Produce json
// @Success 200 {object} models.APIResponse "Add-ons retrieved successfully"
// @Router /catalog/addons [get]
func (h *CatalogController) ListAddOns(c *gin.Context) {
	addOns := h.service.ListAddOns()
	c.JSON(http.StatusOK, models.ListResponse(http.StatusOK, "Add-ons retrieved successfully", addOns, len(addOns)))
}
