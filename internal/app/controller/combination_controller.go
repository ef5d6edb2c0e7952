package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/steelify/catalog-backend/internal/app/service"
	apperrors "github.com/steelify/catalog-backend/internal/errors"
	"github.com/steelify/catalog-backend/internal/middleware"
)

type CombinationController struct {
	combinationService service.CombinationService
}

func NewCombinationController(combinationService service.CombinationService) *CombinationController {
	return &CombinationController{
		combinationService: combinationService,
	}
}

type CreateCombinationsRequest struct {
	ProductID  uint   `json:"product_id"`
	MaterialID uint   `json:"material_id"`
	GradeIDs   []uint `json:"grade_ids"`
	Shape      string `json:"shape"`
	Length     string `json:"length"`
	Thickness  string `json:"thickness"`
	Price      string `json:"price"`

	// Accepted for compatibility with older clients and ignored; the display
	// names are always recomputed server-side.
	FinalProducts []string `json:"final_products"`
}

type UpdateCombinationRequest struct {
	MaterialID *uint   `json:"material_id"`
	Shape      *string `json:"shape"`
	Length     *string `json:"length"`
	Thickness  *string `json:"thickness"`
	Price      *string `json:"price"`
}

type BulkUpdateRequest struct {
	ProductIDs []uint         `json:"product_ids"`
	UpdateData BulkUpdateData `json:"update_data"`
}

type BulkUpdateData struct {
	MaterialID *uint   `json:"material_id"`
	GradeID    *uint   `json:"grade_id"`
	Shape      *string `json:"shape"`
	Length     *string `json:"length"`
	Thickness  *string `json:"thickness"`
	Price      *string `json:"price"`
}

// ListCombinations returns all combinations with resolved reference names
// GET /api/v1/product-combinations
func (ctrl *CombinationController) ListCombinations(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	combinations, err := ctrl.combinationService.ListCombinations()
	if err != nil {
		log.Error("Failed to fetch product combinations", err, nil)
		apperrors.InternalError(c, "Failed to fetch product combinations")
		return
	}

	log.Info("Product combinations fetched successfully", map[string]interface{}{
		"count": len(combinations),
	})

	c.JSON(http.StatusOK, gin.H{
		"combinations": combinations,
		"count":        len(combinations),
	})
}

// GetCombinationByID returns one combination with resolved reference names
// GET /api/v1/product-combinations/:id
func (ctrl *CombinationController) GetCombinationByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	combination, err := ctrl.combinationService.GetCombinationByID(id)
	if err != nil {
		if errors.Is(err, service.ErrCombinationNotFound) {
			log.Warn("Product combination not found", map[string]interface{}{
				"combination_id": id,
			})
			apperrors.NotFound(c, apperrors.CombinationNotFound, "Product combination not found")
			return
		}
		log.Error("Failed to fetch product combination", err, map[string]interface{}{
			"combination_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch product combination")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"combination": combination,
	})
}

// CreateCombinations creates one combination per grade id
// POST /api/v1/product-combinations
func (ctrl *CombinationController) CreateCombinations(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateCombinationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid combination creation request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	log.Debug("Creating product combinations", map[string]interface{}{
		"product_id":  req.ProductID,
		"material_id": req.MaterialID,
		"grade_count": len(req.GradeIDs),
	})

	combinations, err := ctrl.combinationService.CreateCombinations(service.CreateCombinationsInput{
		ProductID:  req.ProductID,
		MaterialID: req.MaterialID,
		GradeIDs:   req.GradeIDs,
		Shape:      req.Shape,
		Length:     req.Length,
		Thickness:  req.Thickness,
		Price:      req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingRequiredFields):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Product, material and at least one grade are required")
		case errors.Is(err, service.ErrProductNotFound):
			apperrors.BadRequest(c, apperrors.CatalogProductNotFound, "Referenced product does not exist")
		case errors.Is(err, service.ErrMaterialNotFound):
			apperrors.BadRequest(c, apperrors.CatalogMaterialNotFound, "Referenced material does not exist")
		case errors.Is(err, service.ErrGradeNotFound):
			apperrors.BadRequest(c, apperrors.CatalogGradeNotFound, "Referenced grade does not exist")
		default:
			log.Error("Failed to create product combinations", err, map[string]interface{}{
				"product_id": req.ProductID,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create product combinations")
		}
		return
	}

	log.Info("Product combinations created successfully", map[string]interface{}{
		"count": len(combinations),
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product combinations added successfully",
		"count":   len(combinations),
	})
}

// UpdateCombination patches one combination and recomputes its display name
// PUT /api/v1/product-combinations/:id
func (ctrl *CombinationController) UpdateCombination(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req UpdateCombinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid combination update request", map[string]interface{}{
			"combination_id": id,
			"error":          err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	updated, err := ctrl.combinationService.UpdateCombination(id, service.UpdateCombinationInput{
		MaterialID: req.MaterialID,
		Shape:      req.Shape,
		Length:     req.Length,
		Thickness:  req.Thickness,
		Price:      req.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCombinationNotFound):
			log.Warn("Product combination not found for update", map[string]interface{}{
				"combination_id": id,
			})
			apperrors.NotFound(c, apperrors.CombinationNotFound, "Product combination not found")
		case errors.Is(err, service.ErrMaterialNotFound):
			apperrors.BadRequest(c, apperrors.CatalogMaterialNotFound, "Referenced material does not exist")
		default:
			log.Error("Failed to update product combination", err, map[string]interface{}{
				"combination_id": id,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update product combination")
		}
		return
	}

	log.Info("Product combination updated successfully", map[string]interface{}{
		"combination_id": updated.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"combination": updated,
	})
}

// BulkUpdateCombinations applies one patch to many combinations
// PUT /api/v1/bulk-update
func (ctrl *CombinationController) BulkUpdateCombinations(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid bulk update request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request data")
		return
	}

	log.Debug("Bulk updating product combinations", map[string]interface{}{
		"target_count": len(req.ProductIDs),
	})

	result, err := ctrl.combinationService.BulkUpdateCombinations(req.ProductIDs, service.BulkUpdatePatch{
		MaterialID: req.UpdateData.MaterialID,
		GradeID:    req.UpdateData.GradeID,
		Shape:      req.UpdateData.Shape,
		Length:     req.UpdateData.Length,
		Thickness:  req.UpdateData.Thickness,
		Price:      req.UpdateData.Price,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyBulkTargets):
			apperrors.BadRequest(c, apperrors.CombinationEmptyBatch, "Invalid or missing combination IDs")
		case errors.Is(err, service.ErrMaterialNotFound):
			apperrors.BadRequest(c, apperrors.CatalogMaterialNotFound, "Referenced material does not exist")
		case errors.Is(err, service.ErrGradeNotFound):
			apperrors.BadRequest(c, apperrors.CatalogGradeNotFound, "Referenced grade does not exist")
		default:
			log.Error("Failed to bulk update product combinations", err, map[string]interface{}{
				"target_count": len(req.ProductIDs),
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "bulk update product combinations")
		}
		return
	}

	log.Info("Bulk update completed", map[string]interface{}{
		"updated": len(result.Updated),
		"skipped": len(result.Skipped),
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Bulk update successful",
		"updated": result.Updated,
		"skipped": result.Skipped,
	})
}

// CountByProduct returns combination counts grouped by product
// GET /api/v1/product-combinations/count-by-product
func (ctrl *CombinationController) CountByProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	counts, err := ctrl.combinationService.CountByProduct()
	if err != nil {
		log.Error("Failed to count combinations by product", err, nil)
		apperrors.InternalError(c, "Failed to count combinations by product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"counts": counts,
	})
}

// CountByMaterial returns combination counts grouped by material
// GET /api/v1/product-combinations/count-by-material
func (ctrl *CombinationController) CountByMaterial(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	counts, err := ctrl.combinationService.CountByMaterial()
	if err != nil {
		log.Error("Failed to count combinations by material", err, nil)
		apperrors.InternalError(c, "Failed to count combinations by material")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"counts": counts,
	})
}

func parseIDParam(c *gin.Context) (uint, bool) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		log.Warn("Invalid combination ID format", map[string]interface{}{
			"combination_id": idStr,
			"error":          err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid combination ID")
		return 0, false
	}
	return uint(id), true
}
