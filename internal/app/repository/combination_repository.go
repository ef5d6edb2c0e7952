package repository

import (
	"github.com/steelify/catalog-backend/internal/app/model"
	"github.com/steelify/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

// NameCount is one row of a grouped count, keyed by the resolved reference name.
type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type CombinationRepository interface {
	CreateBatch(combinations []model.ProductCombination) error
	FindAll() ([]model.ProductCombination, error)
	FindByID(id uint) (*model.ProductCombination, error)
	FindByIDs(ids []uint) ([]model.ProductCombination, error)
	UpdateFields(id uint, fields map[string]interface{}) error
	CountByProduct() ([]NameCount, error)
	CountByMaterial() ([]NameCount, error)
}

type combinationRepository struct {
	db *gorm.DB
}

func NewCombinationRepository(db *gorm.DB) CombinationRepository {
	return &combinationRepository{db: db}
}

// baseQuery resolves the three reference names on every read so consumers
// never issue follow-up lookups.
func (r *combinationRepository) baseQuery() *gorm.DB {
	return r.db.Model(&model.ProductCombination{}).
		Preload("Product").
		Preload("Material").
		Preload("Grade")
}

// CreateBatch inserts all combinations in one statement; either every row is
// persisted or none is.
func (r *combinationRepository) CreateBatch(combinations []model.ProductCombination) error {
	logger.Debug("Creating combination batch in database", map[string]interface{}{
		"count": len(combinations),
	})

	if err := r.db.Create(&combinations).Error; err != nil {
		logger.Error("Failed to create combination batch in database", err, map[string]interface{}{
			"count": len(combinations),
		})
		return err
	}

	logger.Debug("Combination batch created in database", map[string]interface{}{
		"count": len(combinations),
	})
	return nil
}

func (r *combinationRepository) FindAll() ([]model.ProductCombination, error) {
	var combinations []model.ProductCombination
	if err := r.baseQuery().Order("product_combinations.id ASC").Find(&combinations).Error; err != nil {
		logger.Error("Failed to list combinations", err)
		return nil, err
	}

	logger.Debug("Combinations listed", map[string]interface{}{
		"count": len(combinations),
	})
	return combinations, nil
}

func (r *combinationRepository) FindByID(id uint) (*model.ProductCombination, error) {
	logger.Debug("Finding combination by ID in database", map[string]interface{}{
		"combination_id": id,
	})

	var combination model.ProductCombination
	if err := r.baseQuery().First(&combination, id).Error; err != nil {
		logger.Error("Failed to find combination by ID in database", err, map[string]interface{}{
			"combination_id": id,
		})
		return nil, err
	}
	return &combination, nil
}

func (r *combinationRepository) FindByIDs(ids []uint) ([]model.ProductCombination, error) {
	logger.Debug("Finding combinations by IDs in database", map[string]interface{}{
		"requested": len(ids),
	})

	var combinations []model.ProductCombination
	if err := r.baseQuery().Where("product_combinations.id IN ?", ids).Find(&combinations).Error; err != nil {
		logger.Error("Failed to find combinations by IDs in database", err, map[string]interface{}{
			"requested": len(ids),
		})
		return nil, err
	}

	logger.Debug("Combinations found by IDs", map[string]interface{}{
		"requested": len(ids),
		"found":     len(combinations),
	})
	return combinations, nil
}

// UpdateFields writes only the given columns, leaving everything else at its
// prior value.
func (r *combinationRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	logger.Debug("Updating combination fields in database", map[string]interface{}{
		"combination_id": id,
		"field_count":    len(fields),
	})

	if err := r.db.Model(&model.ProductCombination{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		logger.Error("Failed to update combination fields in database", err, map[string]interface{}{
			"combination_id": id,
		})
		return err
	}

	logger.Debug("Combination fields updated in database", map[string]interface{}{
		"combination_id": id,
	})
	return nil
}

// CountByProduct counts combinations grouped by product. The join is an inner
// join: groups whose product reference cannot be resolved are omitted.
func (r *combinationRepository) CountByProduct() ([]NameCount, error) {
	var results []NameCount
	err := r.db.Model(&model.ProductCombination{}).
		Select("products.name AS name, COUNT(*) AS count").
		Joins("JOIN products ON products.id = product_combinations.product_id AND products.deleted_at IS NULL").
		Group("products.name").
		Order("products.name ASC").
		Scan(&results).Error
	if err != nil {
		logger.Error("Failed to count combinations by product", err)
		return nil, err
	}

	logger.Debug("Combinations counted by product", map[string]interface{}{
		"groups": len(results),
	})
	return results, nil
}

// CountByMaterial counts combinations grouped by material, inner-joined
// against the material catalog.
func (r *combinationRepository) CountByMaterial() ([]NameCount, error) {
	var results []NameCount
	err := r.db.Model(&model.ProductCombination{}).
		Select("materials.name AS name, COUNT(*) AS count").
		Joins("JOIN materials ON materials.id = product_combinations.material_id AND materials.deleted_at IS NULL").
		Group("materials.name").
		Order("materials.name ASC").
		Scan(&results).Error
	if err != nil {
		logger.Error("Failed to count combinations by material", err)
		return nil, err
	}

	logger.Debug("Combinations counted by material", map[string]interface{}{
		"groups": len(results),
	})
	return results, nil
}
