package service

import (
	"github.com/steelify/catalog-backend/internal/app/model"
	"github.com/steelify/catalog-backend/internal/app/repository"
	"github.com/steelify/catalog-backend/pkg/logger"
)

// CatalogService exposes the three read-only reference catalogs.
type CatalogService interface {
	ListProducts() ([]model.Product, error)
	ListMaterials() ([]model.Material, error)
	ListGrades() ([]model.Grade, error)
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) ListProducts() ([]model.Product, error) {
	products, err := s.catalogRepo.FindAllProducts()
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, err
	}

	logger.Info("Products listed", map[string]interface{}{
		"count": len(products),
	})
	return products, nil
}

func (s *catalogService) ListMaterials() ([]model.Material, error) {
	materials, err := s.catalogRepo.FindAllMaterials()
	if err != nil {
		logger.Error("Failed to list materials", err)
		return nil, err
	}

	logger.Info("Materials listed", map[string]interface{}{
		"count": len(materials),
	})
	return materials, nil
}

func (s *catalogService) ListGrades() ([]model.Grade, error) {
	grades, err := s.catalogRepo.FindAllGrades()
	if err != nil {
		logger.Error("Failed to list grades", err)
		return nil, err
	}

	logger.Info("Grades listed", map[string]interface{}{
		"count": len(grades),
	})
	return grades, nil
}
