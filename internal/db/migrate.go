package db

import (
	"gorm.io/gorm"

	"github.com/steelify/catalog-backend/internal/app/model"
	"github.com/steelify/catalog-backend/pkg/logger"
)

// Migrate runs database migrations and seeds the reference catalogs.
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Product{},
		&model.Material{},
		&model.Grade{},
		&model.ProductCombination{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if err := SeedReferenceData(DB); err != nil {
		logger.Error("Failed to seed reference data during migration", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// SeedReferenceData populates the three reference catalogs when they are
// empty. Existing catalogs are never touched.
func SeedReferenceData(db *gorm.DB) error {
	logger.Info("Seeding reference catalogs...")

	if err := seedCatalog(db, &model.Product{}, []string{"Pipe", "Tubing", "Valves", "Gasket"}, func(name string) interface{} {
		return &model.Product{Name: name}
	}); err != nil {
		return err
	}

	if err := seedCatalog(db, &model.Material{}, []string{"Stainless Steel", "Carbon Steel", "Aluminium", "Iron", "Plastic"}, func(name string) interface{} {
		return &model.Material{Name: name}
	}); err != nil {
		return err
	}

	if err := seedCatalog(db, &model.Grade{}, []string{"304", "A105", "144", "C45", "A78"}, func(name string) interface{} {
		return &model.Grade{Name: name}
	}); err != nil {
		return err
	}

	logger.Info("Reference catalogs seeded successfully")
	return nil
}

func seedCatalog(db *gorm.DB, catalogModel interface{}, names []string, build func(name string) interface{}) error {
	var count int64
	if err := db.Model(catalogModel).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Debug("Catalog already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	for _, name := range names {
		if err := db.Create(build(name)).Error; err != nil {
			logger.Error("Failed to seed catalog entry", err, map[string]interface{}{
				"name": name,
			})
			return err
		}
	}

	logger.Info("Catalog seeded", map[string]interface{}{
		"entries": len(names),
	})
	return nil
}
