package repository

import (
	"testing"

	"github.com/steelify/catalog-backend/internal/app/model"
	"github.com/steelify/catalog-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCatalogTest(t *testing.T) CatalogRepository {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	require.NoError(t, db.SeedReferenceData(testDB))
	return NewCatalogRepository(testDB)
}

func TestCatalogRepository_FindAll(t *testing.T) {
	repo := setupCatalogTest(t)

	products, err := repo.FindAllProducts()
	assert.NoError(t, err)
	assert.Len(t, products, 4)
	assert.Equal(t, "Pipe", products[0].Name)

	materials, err := repo.FindAllMaterials()
	assert.NoError(t, err)
	assert.Len(t, materials, 5)

	grades, err := repo.FindAllGrades()
	assert.NoError(t, err)
	assert.Len(t, grades, 5)
}

func TestCatalogRepository_FindByID(t *testing.T) {
	repo := setupCatalogTest(t)

	materials, err := repo.FindAllMaterials()
	require.NoError(t, err)
	require.NotEmpty(t, materials)

	material, err := repo.FindMaterialByID(materials[0].ID)
	assert.NoError(t, err)
	assert.Equal(t, materials[0].Name, material.Name)

	_, err = repo.FindMaterialByID(9999)
	assert.Error(t, err)
}

func TestCatalogRepository_FindGradesByIDs(t *testing.T) {
	repo := setupCatalogTest(t)

	grades, err := repo.FindAllGrades()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(grades), 2)

	found, err := repo.FindGradesByIDs([]uint{grades[0].ID, grades[1].ID, 9999})
	assert.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestCatalogRepository_SeedIsIdempotent(t *testing.T) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	require.NoError(t, db.SeedReferenceData(testDB))
	require.NoError(t, db.SeedReferenceData(testDB))

	var count int64
	require.NoError(t, testDB.Model(&model.Product{}).Count(&count).Error)
	assert.Equal(t, int64(4), count)
}
