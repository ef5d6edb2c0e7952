package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/steelify/catalog-backend/internal/app/model"
	"github.com/steelify/catalog-backend/internal/app/repository"
	"github.com/steelify/catalog-backend/internal/cache"
	"github.com/steelify/catalog-backend/pkg/logger"
)

var (
	ErrMissingRequiredFields = errors.New("product, material and at least one grade are required")
	ErrProductNotFound       = errors.New("product not found")
	ErrMaterialNotFound      = errors.New("material not found")
	ErrGradeNotFound         = errors.New("grade not found")
	ErrCombinationNotFound   = errors.New("product combination not found")
	ErrEmptyBulkTargets      = errors.New("no target combination ids provided")
)

// CreateCombinationsInput creates one combination per grade. The shared
// attributes apply to every created row.
type CreateCombinationsInput struct {
	ProductID  uint
	MaterialID uint
	GradeIDs   []uint
	Shape      string
	Length     string
	Thickness  string
	Price      string
}

// UpdateCombinationInput carries the patchable fields of a single update.
// Nil fields are left untouched. Grade is not patchable here; grade changes
// go through the bulk path.
type UpdateCombinationInput struct {
	MaterialID *uint
	Shape      *string
	Length     *string
	Thickness  *string
	Price      *string
}

// BulkUpdatePatch is the patch applied to every bulk-update target. Nil
// fields are left at their prior values on each target.
type BulkUpdatePatch struct {
	MaterialID *uint
	GradeID    *uint
	Shape      *string
	Length     *string
	Thickness  *string
	Price      *string
}

// BulkUpdateResult reports the per-id outcome of a bulk update. Skipped holds
// requested ids that matched no existing combination.
type BulkUpdateResult struct {
	Updated []uint `json:"updated"`
	Skipped []uint `json:"skipped"`
}

type CombinationService interface {
	CreateCombinations(input CreateCombinationsInput) ([]model.ProductCombination, error)
	ListCombinations() ([]model.ProductCombination, error)
	GetCombinationByID(id uint) (*model.ProductCombination, error)
	UpdateCombination(id uint, input UpdateCombinationInput) (*model.ProductCombination, error)
	BulkUpdateCombinations(ids []uint, patch BulkUpdatePatch) (*BulkUpdateResult, error)
	CountByProduct() ([]repository.NameCount, error)
	CountByMaterial() ([]repository.NameCount, error)
}

type combinationService struct {
	combinationRepo repository.CombinationRepository
	catalogRepo     repository.CatalogRepository
	aggregateCache  *cache.AggregateCache
}

// NewCombinationService builds the combination service. The aggregate cache
// is optional; pass nil to disable caching.
func NewCombinationService(
	combinationRepo repository.CombinationRepository,
	catalogRepo repository.CatalogRepository,
	aggregateCache *cache.AggregateCache,
) CombinationService {
	return &combinationService{
		combinationRepo: combinationRepo,
		catalogRepo:     catalogRepo,
		aggregateCache:  aggregateCache,
	}
}

// CreateCombinations validates the references, composes the display name per
// grade and inserts one row per grade as a single batch. Client-supplied
// display names are never trusted; the name is always recomputed from the
// resolved catalog names.
func (s *combinationService) CreateCombinations(input CreateCombinationsInput) ([]model.ProductCombination, error) {
	logger.Debug("Creating product combinations", map[string]interface{}{
		"product_id":  input.ProductID,
		"material_id": input.MaterialID,
		"grade_count": len(input.GradeIDs),
	})

	if input.ProductID == 0 || input.MaterialID == 0 || len(input.GradeIDs) == 0 {
		logger.Warn("Combination create request missing required fields", map[string]interface{}{
			"product_id":  input.ProductID,
			"material_id": input.MaterialID,
			"grade_count": len(input.GradeIDs),
		})
		return nil, ErrMissingRequiredFields
	}

	product, err := s.catalogRepo.FindProductByID(input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	material, err := s.catalogRepo.FindMaterialByID(input.MaterialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, err
	}

	grades, err := s.catalogRepo.FindGradesByIDs(input.GradeIDs)
	if err != nil {
		return nil, err
	}

	gradesByID := make(map[uint]model.Grade, len(grades))
	for _, grade := range grades {
		gradesByID[grade.ID] = grade
	}

	combinations := make([]model.ProductCombination, 0, len(input.GradeIDs))
	for _, gradeID := range input.GradeIDs {
		grade, ok := gradesByID[gradeID]
		if !ok {
			logger.Warn("Combination create references unknown grade", map[string]interface{}{
				"grade_id": gradeID,
			})
			return nil, ErrGradeNotFound
		}

		combinations = append(combinations, model.ProductCombination{
			ProductID:        product.ID,
			MaterialID:       material.ID,
			GradeID:          grade.ID,
			FinalProductName: model.ComposeFinalName(material.Name, grade.Name, product.Name),
			Shape:            input.Shape,
			Length:           input.Length,
			Thickness:        input.Thickness,
			Price:            input.Price,
		})
	}

	if err := s.combinationRepo.CreateBatch(combinations); err != nil {
		logger.Error("Failed to create product combinations", err, map[string]interface{}{
			"count": len(combinations),
		})
		return nil, err
	}

	s.aggregateCache.Invalidate()

	logger.Info("Product combinations created", map[string]interface{}{
		"count": len(combinations),
	})
	return combinations, nil
}

func (s *combinationService) ListCombinations() ([]model.ProductCombination, error) {
	combinations, err := s.combinationRepo.FindAll()
	if err != nil {
		logger.Error("Failed to list product combinations", err)
		return nil, err
	}

	logger.Info("Product combinations listed", map[string]interface{}{
		"count": len(combinations),
	})
	return combinations, nil
}

func (s *combinationService) GetCombinationByID(id uint) (*model.ProductCombination, error) {
	combination, err := s.combinationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product combination not found", map[string]interface{}{
				"combination_id": id,
			})
			return nil, ErrCombinationNotFound
		}
		logger.Error("Failed to fetch product combination", err, map[string]interface{}{
			"combination_id": id,
		})
		return nil, err
	}
	return combination, nil
}

// UpdateCombination patches the provided scalar fields of one combination and
// always recomputes the display name from the effective material plus the
// record's unchanged grade and product.
func (s *combinationService) UpdateCombination(id uint, input UpdateCombinationInput) (*model.ProductCombination, error) {
	logger.Debug("Updating product combination", map[string]interface{}{
		"combination_id": id,
	})

	existing, err := s.combinationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Product combination not found for update", map[string]interface{}{
				"combination_id": id,
			})
			return nil, ErrCombinationNotFound
		}
		return nil, err
	}

	materialName := existing.Material.Name
	fields := map[string]interface{}{}

	if input.MaterialID != nil {
		material, err := s.catalogRepo.FindMaterialByID(*input.MaterialID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMaterialNotFound
			}
			return nil, err
		}
		materialName = material.Name
		fields["material_id"] = material.ID
	}
	if input.Shape != nil {
		fields["shape"] = *input.Shape
	}
	if input.Length != nil {
		fields["length"] = *input.Length
	}
	if input.Thickness != nil {
		fields["thickness"] = *input.Thickness
	}
	if input.Price != nil {
		fields["price"] = *input.Price
	}

	fields["final_product_name"] = model.ComposeFinalName(materialName, existing.Grade.Name, existing.Product.Name)

	if err := s.combinationRepo.UpdateFields(id, fields); err != nil {
		logger.Error("Failed to update product combination", err, map[string]interface{}{
			"combination_id": id,
		})
		return nil, err
	}

	s.aggregateCache.Invalidate()

	updated, err := s.combinationRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	logger.Info("Product combination updated", map[string]interface{}{
		"combination_id": updated.ID,
		"final_name":     updated.FinalProductName,
	})
	return updated, nil
}

// BulkUpdateCombinations applies one patch to every existing target,
// recomputing the display name per target from the effective material and
// grade. Targets that do not exist are reported as skipped, not failed. The
// patch references are validated before any write; the writes themselves are
// independent, so a storage failure partway through leaves earlier targets
// updated.
func (s *combinationService) BulkUpdateCombinations(ids []uint, patch BulkUpdatePatch) (*BulkUpdateResult, error) {
	logger.Debug("Bulk updating product combinations", map[string]interface{}{
		"target_count": len(ids),
	})

	if len(ids) == 0 {
		return nil, ErrEmptyBulkTargets
	}

	var patchMaterial *model.Material
	if patch.MaterialID != nil {
		material, err := s.catalogRepo.FindMaterialByID(*patch.MaterialID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMaterialNotFound
			}
			return nil, err
		}
		patchMaterial = material
	}

	var patchGrade *model.Grade
	if patch.GradeID != nil {
		grade, err := s.catalogRepo.FindGradeByID(*patch.GradeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrGradeNotFound
			}
			return nil, err
		}
		patchGrade = grade
	}

	targets, err := s.combinationRepo.FindByIDs(ids)
	if err != nil {
		return nil, err
	}

	targetsByID := make(map[uint]model.ProductCombination, len(targets))
	for _, target := range targets {
		targetsByID[target.ID] = target
	}

	result := &BulkUpdateResult{
		Updated: []uint{},
		Skipped: []uint{},
	}

	for _, id := range ids {
		target, ok := targetsByID[id]
		if !ok {
			result.Skipped = append(result.Skipped, id)
			continue
		}

		fields := map[string]interface{}{}

		materialName := target.Material.Name
		if patchMaterial != nil {
			materialName = patchMaterial.Name
			fields["material_id"] = patchMaterial.ID
		}

		gradeName := target.Grade.Name
		if patchGrade != nil {
			gradeName = patchGrade.Name
			fields["grade_id"] = patchGrade.ID
		}

		if patch.Shape != nil {
			fields["shape"] = *patch.Shape
		}
		if patch.Length != nil {
			fields["length"] = *patch.Length
		}
		if patch.Thickness != nil {
			fields["thickness"] = *patch.Thickness
		}
		if patch.Price != nil {
			fields["price"] = *patch.Price
		}

		fields["final_product_name"] = model.ComposeFinalName(materialName, gradeName, target.Product.Name)

		if err := s.combinationRepo.UpdateFields(id, fields); err != nil {
			logger.Error("Bulk update failed partway through", err, map[string]interface{}{
				"combination_id": id,
				"updated_so_far": len(result.Updated),
			})
			return nil, err
		}

		result.Updated = append(result.Updated, id)
	}

	if len(result.Updated) > 0 {
		s.aggregateCache.Invalidate()
	}

	logger.Info("Product combinations bulk updated", map[string]interface{}{
		"updated": len(result.Updated),
		"skipped": len(result.Skipped),
	})
	return result, nil
}

func (s *combinationService) CountByProduct() ([]repository.NameCount, error) {
	var counts []repository.NameCount
	if s.aggregateCache.GetCounts(cache.KeyCountByProduct, &counts) {
		return counts, nil
	}

	counts, err := s.combinationRepo.CountByProduct()
	if err != nil {
		logger.Error("Failed to count combinations by product", err)
		return nil, err
	}

	s.aggregateCache.SetCounts(cache.KeyCountByProduct, counts)

	logger.Info("Combinations counted by product", map[string]interface{}{
		"groups": len(counts),
	})
	return counts, nil
}

func (s *combinationService) CountByMaterial() ([]repository.NameCount, error) {
	var counts []repository.NameCount
	if s.aggregateCache.GetCounts(cache.KeyCountByMaterial, &counts) {
		return counts, nil
	}

	counts, err := s.combinationRepo.CountByMaterial()
	if err != nil {
		logger.Error("Failed to count combinations by material", err)
		return nil, err
	}

	s.aggregateCache.SetCounts(cache.KeyCountByMaterial, counts)

	logger.Info("Combinations counted by material", map[string]interface{}{
		"groups": len(counts),
	})
	return counts, nil
}
