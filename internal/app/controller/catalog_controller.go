package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/steelify/catalog-backend/internal/app/service"
	apperrors "github.com/steelify/catalog-backend/internal/errors"
	"github.com/steelify/catalog-backend/internal/middleware"
)

// CatalogController serves the three read-only reference catalogs.
type CatalogController struct {
	catalogService service.CatalogService
}

func NewCatalogController(catalogService service.CatalogService) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
	}
}

// ListProducts returns the full product catalog
// GET /api/v1/products
func (ctrl *CatalogController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	products, err := ctrl.catalogService.ListProducts()
	if err != nil {
		log.Error("Failed to fetch products", err, nil)
		apperrors.InternalError(c, "Failed to fetch products")
		return
	}

	log.Info("Products fetched successfully", map[string]interface{}{
		"count": len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// ListMaterials returns the full material catalog
// GET /api/v1/materials
func (ctrl *CatalogController) ListMaterials(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	materials, err := ctrl.catalogService.ListMaterials()
	if err != nil {
		log.Error("Failed to fetch materials", err, nil)
		apperrors.InternalError(c, "Failed to fetch materials")
		return
	}

	log.Info("Materials fetched successfully", map[string]interface{}{
		"count": len(materials),
	})

	c.JSON(http.StatusOK, gin.H{
		"materials": materials,
		"count":     len(materials),
	})
}

// ListGrades returns the full grade catalog
// GET /api/v1/grades
func (ctrl *CatalogController) ListGrades(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	grades, err := ctrl.catalogService.ListGrades()
	if err != nil {
		log.Error("Failed to fetch grades", err, nil)
		apperrors.InternalError(c, "Failed to fetch grades")
		return
	}

	log.Info("Grades fetched successfully", map[string]interface{}{
		"count": len(grades),
	})

	c.JSON(http.StatusOK, gin.H{
		"grades": grades,
		"count":  len(grades),
	})
}
