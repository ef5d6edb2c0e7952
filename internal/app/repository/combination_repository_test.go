package repository

import (
	"testing"

	"github.com/steelify/catalog-backend/internal/app/model"
	"github.com/steelify/catalog-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupCombinationTest(t *testing.T) (*gorm.DB, CombinationRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewCombinationRepository(testDB)
	return testDB, repo
}

// seedReferences creates one product, one material and two grades for use as
// foreign keys.
func seedReferences(t *testing.T, testDB *gorm.DB) (model.Product, model.Material, []model.Grade) {
	product := model.Product{Name: "Pipe"}
	require.NoError(t, testDB.Create(&product).Error)

	material := model.Material{Name: "Aluminium"}
	require.NoError(t, testDB.Create(&material).Error)

	grades := []model.Grade{{Name: "304"}, {Name: "A105"}}
	for i := range grades {
		require.NoError(t, testDB.Create(&grades[i]).Error)
	}

	return product, material, grades
}

func TestCombinationRepository_CreateBatch(t *testing.T) {
	testDB, repo := setupCombinationTest(t)
	defer db.CleanupTestDB(testDB)

	product, material, grades := seedReferences(t, testDB)

	combinations := []model.ProductCombination{
		{
			ProductID:        product.ID,
			MaterialID:       material.ID,
			GradeID:          grades[0].ID,
			FinalProductName: "Aluminium 304 Pipe",
			Shape:            "Round",
		},
		{
			ProductID:        product.ID,
			MaterialID:       material.ID,
			GradeID:          grades[1].ID,
			FinalProductName: "Aluminium A105 Pipe",
		},
	}

	err := repo.CreateBatch(combinations)
	assert.NoError(t, err)
	assert.NotZero(t, combinations[0].ID)
	assert.NotZero(t, combinations[1].ID)

	var count int64
	require.NoError(t, testDB.Model(&model.ProductCombination{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestCombinationRepository_FindAll_ResolvesReferences(t *testing.T) {
	testDB, repo := setupCombinationTest(t)
	defer db.CleanupTestDB(testDB)

	product, material, grades := seedReferences(t, testDB)

	err := repo.CreateBatch([]model.ProductCombination{
		{
			ProductID:        product.ID,
			MaterialID:       material.ID,
			GradeID:          grades[0].ID,
			FinalProductName: "Aluminium 304 Pipe",
		},
	})
	require.NoError(t, err)

	found, err := repo.FindAll()
	assert.NoError(t, err)
	require.Len(t, found, 1)

	// Reference names are resolved on the read side
	assert.Equal(t, "Pipe", found[0].Product.Name)
	assert.Equal(t, "Aluminium", found[0].Material.Name)
	assert.Equal(t, "304", found[0].Grade.Name)
}

func TestCombinationRepository_FindByID(t *testing.T) {
	testDB, repo := setupCombinationTest(t)
	defer db.CleanupTestDB(testDB)

	product, material, grades := seedReferences(t, testDB)

	combinations := []model.ProductCombination{
		{
			ProductID:        product.ID,
			MaterialID:       material.ID,
			GradeID:          grades[0].ID,
			FinalProductName: "Aluminium 304 Pipe",
		},
	}
	require.NoError(t, repo.CreateBatch(combinations))

	tests := []struct {
		name    string
		id      uint
		wantErr bool
	}{
		{
			name:    "Existing combination",
			id:      combinations[0].ID,
			wantErr: false,
		},
		{
			name:    "Non-existing combination",
			id:      9999,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindByID(tt.id)

			if tt.wantErr {
				assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
				assert.Nil(t, found)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "Aluminium 304 Pipe", found.FinalProductName)
				assert.Equal(t, "304", found.Grade.Name)
			}
		})
	}
}

func TestCombinationRepository_FindByIDs_OmitsMissing(t *testing.T) {
	testDB, repo := setupCombinationTest(t)
	defer db.CleanupTestDB(testDB)

	product, material, grades := seedReferences(t, testDB)

	combinations := []model.ProductCombination{
		{ProductID: product.ID, MaterialID: material.ID, GradeID: grades[0].ID, FinalProductName: "Aluminium 304 Pipe"},
		{ProductID: product.ID, MaterialID: material.ID, GradeID: grades[1].ID, FinalProductName: "Aluminium A105 Pipe"},
	}
	require.NoError(t, repo.CreateBatch(combinations))

	found, err := repo.FindByIDs([]uint{combinations[0].ID, combinations[1].ID, 9999})
	assert.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestCombinationRepository_UpdateFields_PartialWrite(t *testing.T) {
	testDB, repo := setupCombinationTest(t)
	defer db.CleanupTestDB(testDB)

	product, material, grades := seedReferences(t, testDB)

	combinations := []model.ProductCombination{
		{
			ProductID:        product.ID,
			MaterialID:       material.ID,
			GradeID:          grades[0].ID,
			FinalProductName: "Aluminium 304 Pipe",
			Shape:            "Round",
			Length:           "6m",
			Price:            "100",
		},
	}
	require.NoError(t, repo.CreateBatch(combinations))

	err := repo.UpdateFields(combinations[0].ID, map[string]interface{}{
		"price":              "42",
		"final_product_name": "Aluminium 304 Pipe",
	})
	assert.NoError(t, err)

	updated, err := repo.FindByID(combinations[0].ID)
	require.NoError(t, err)

	// Only the written columns change
	assert.Equal(t, "42", updated.Price)
	assert.Equal(t, "Round", updated.Shape)
	assert.Equal(t, "6m", updated.Length)
	assert.Equal(t, material.ID, updated.MaterialID)
	assert.Equal(t, grades[0].ID, updated.GradeID)
}

func TestCombinationRepository_CountByProduct(t *testing.T) {
	testDB, repo := setupCombinationTest(t)
	defer db.CleanupTestDB(testDB)

	pipe := model.Product{Name: "Pipe"}
	valves := model.Product{Name: "Valves"}
	require.NoError(t, testDB.Create(&pipe).Error)
	require.NoError(t, testDB.Create(&valves).Error)

	material := model.Material{Name: "Iron"}
	require.NoError(t, testDB.Create(&material).Error)

	grade := model.Grade{Name: "C45"}
	require.NoError(t, testDB.Create(&grade).Error)

	require.NoError(t, repo.CreateBatch([]model.ProductCombination{
		{ProductID: pipe.ID, MaterialID: material.ID, GradeID: grade.ID, FinalProductName: "Iron C45 Pipe"},
		{ProductID: pipe.ID, MaterialID: material.ID, GradeID: grade.ID, FinalProductName: "Iron C45 Pipe"},
		{ProductID: valves.ID, MaterialID: material.ID, GradeID: grade.ID, FinalProductName: "Iron C45 Valves"},
	}))

	counts, err := repo.CountByProduct()
	assert.NoError(t, err)
	require.Len(t, counts, 2)

	// Ordered by name ASC
	assert.Equal(t, "Pipe", counts[0].Name)
	assert.Equal(t, int64(2), counts[0].Count)
	assert.Equal(t, "Valves", counts[1].Name)
	assert.Equal(t, int64(1), counts[1].Count)

	var total int64
	for _, c := range counts {
		total += c.Count
	}
	assert.Equal(t, int64(3), total)
}

func TestCombinationRepository_CountByMaterial(t *testing.T) {
	testDB, repo := setupCombinationTest(t)
	defer db.CleanupTestDB(testDB)

	product := model.Product{Name: "Gasket"}
	require.NoError(t, testDB.Create(&product).Error)

	steel := model.Material{Name: "Carbon Steel"}
	plastic := model.Material{Name: "Plastic"}
	require.NoError(t, testDB.Create(&steel).Error)
	require.NoError(t, testDB.Create(&plastic).Error)

	grade := model.Grade{Name: "A78"}
	require.NoError(t, testDB.Create(&grade).Error)

	require.NoError(t, repo.CreateBatch([]model.ProductCombination{
		{ProductID: product.ID, MaterialID: steel.ID, GradeID: grade.ID, FinalProductName: "Carbon Steel A78 Gasket"},
		{ProductID: product.ID, MaterialID: plastic.ID, GradeID: grade.ID, FinalProductName: "Plastic A78 Gasket"},
		{ProductID: product.ID, MaterialID: plastic.ID, GradeID: grade.ID, FinalProductName: "Plastic A78 Gasket"},
	}))

	counts, err := repo.CountByMaterial()
	assert.NoError(t, err)
	require.Len(t, counts, 2)

	assert.Equal(t, "Carbon Steel", counts[0].Name)
	assert.Equal(t, int64(1), counts[0].Count)
	assert.Equal(t, "Plastic", counts[1].Name)
	assert.Equal(t, int64(2), counts[1].Count)
}
