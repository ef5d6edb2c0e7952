package repository

import (
	"github.com/steelify/catalog-backend/internal/app/model"
	"github.com/steelify/catalog-backend/pkg/logger"
	"gorm.io/gorm"
)

// CatalogRepository reads the three flat reference catalogs. The catalogs are
// seeded at migration time and read-only here.
type CatalogRepository interface {
	FindAllProducts() ([]model.Product, error)
	FindAllMaterials() ([]model.Material, error)
	FindAllGrades() ([]model.Grade, error)
	FindProductByID(id uint) (*model.Product, error)
	FindMaterialByID(id uint) (*model.Material, error)
	FindGradeByID(id uint) (*model.Grade, error)
	FindGradesByIDs(ids []uint) ([]model.Grade, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) FindAllProducts() ([]model.Product, error) {
	var products []model.Product
	if err := r.db.Order("id ASC").Find(&products).Error; err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	logger.Debug("Products listed", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (r *catalogRepository) FindAllMaterials() ([]model.Material, error) {
	var materials []model.Material
	if err := r.db.Order("id ASC").Find(&materials).Error; err != nil {
		logger.Error("Failed to list materials", err)
		return nil, err
	}

	logger.Debug("Materials listed", map[string]interface{}{
		"count": len(materials),
	})
	return materials, nil
}

func (r *catalogRepository) FindAllGrades() ([]model.Grade, error) {
	var grades []model.Grade
	if err := r.db.Order("id ASC").Find(&grades).Error; err != nil {
		logger.Error("Failed to list grades", err)
		return nil, err
	}

	logger.Debug("Grades listed", map[string]interface{}{
		"count": len(grades),
	})
	return grades, nil
}

func (r *catalogRepository) FindProductByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.db.First(&product, id).Error; err != nil {
		logger.Error("Failed to find product by ID", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return &product, nil
}

func (r *catalogRepository) FindMaterialByID(id uint) (*model.Material, error) {
	var material model.Material
	if err := r.db.First(&material, id).Error; err != nil {
		logger.Error("Failed to find material by ID", err, map[string]interface{}{
			"material_id": id,
		})
		return nil, err
	}
	return &material, nil
}

func (r *catalogRepository) FindGradeByID(id uint) (*model.Grade, error) {
	var grade model.Grade
	if err := r.db.First(&grade, id).Error; err != nil {
		logger.Error("Failed to find grade by ID", err, map[string]interface{}{
			"grade_id": id,
		})
		return nil, err
	}
	return &grade, nil
}

func (r *catalogRepository) FindGradesByIDs(ids []uint) ([]model.Grade, error) {
	var grades []model.Grade
	if err := r.db.Where("id IN ?", ids).Find(&grades).Error; err != nil {
		logger.Error("Failed to find grades by IDs", err, map[string]interface{}{
			"grade_ids": ids,
		})
		return nil, err
	}

	logger.Debug("Grades found by IDs", map[string]interface{}{
		"requested": len(ids),
		"found":     len(grades),
	})
	return grades, nil
}
