package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/steelify/catalog-backend/internal/app/model"
	"github.com/steelify/catalog-backend/internal/app/repository"
	"github.com/steelify/catalog-backend/internal/app/service"
	"github.com/steelify/catalog-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type combinationControllerFixture struct {
	router   *gin.Engine
	db       *gorm.DB
	service  service.CombinationService
	product  model.Product
	material model.Material
	grades   []model.Grade
}

func setupCombinationControllerTest(t *testing.T) *combinationControllerFixture {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	product := model.Product{Name: "Pipes"}
	require.NoError(t, testDB.Create(&product).Error)

	material := model.Material{Name: "Aluminium"}
	require.NoError(t, testDB.Create(&material).Error)

	grades := []model.Grade{{Name: "304"}, {Name: "A105"}}
	for i := range grades {
		require.NoError(t, testDB.Create(&grades[i]).Error)
	}

	combinationRepo := repository.NewCombinationRepository(testDB)
	catalogRepo := repository.NewCatalogRepository(testDB)
	combinationService := service.NewCombinationService(combinationRepo, catalogRepo, nil)
	combinationController := NewCombinationController(combinationService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/product-combinations", combinationController.ListCombinations)
	router.GET("/product-combinations/count-by-product", combinationController.CountByProduct)
	router.GET("/product-combinations/count-by-material", combinationController.CountByMaterial)
	router.GET("/product-combinations/:id", combinationController.GetCombinationByID)
	router.POST("/product-combinations", combinationController.CreateCombinations)
	router.PUT("/product-combinations/:id", combinationController.UpdateCombination)
	router.PUT("/bulk-update", combinationController.BulkUpdateCombinations)

	return &combinationControllerFixture{
		router:   router,
		db:       testDB,
		service:  combinationService,
		product:  product,
		material: material,
		grades:   grades,
	}
}

func (f *combinationControllerFixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *combinationControllerFixture) createTwo(t *testing.T) []model.ProductCombination {
	created, err := f.service.CreateCombinations(service.CreateCombinationsInput{
		ProductID:  f.product.ID,
		MaterialID: f.material.ID,
		GradeIDs:   []uint{f.grades[0].ID, f.grades[1].ID},
		Price:      "100",
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	return created
}

func TestCombinationController_CreateCombinations_Success(t *testing.T) {
	f := setupCombinationControllerTest(t)

	w := f.do(t, http.MethodPost, "/product-combinations", gin.H{
		"product_id":  f.product.ID,
		"material_id": f.material.ID,
		"grade_ids":   []uint{f.grades[0].ID, f.grades[1].ID},
		"shape":       "Round",
		// Client-supplied names are ignored
		"final_products": []string{"Bogus Name", "Another Bogus"},
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Product combinations added successfully", response["message"])
	assert.Equal(t, float64(2), response["count"])

	// Names were recomputed server-side
	list, err := f.service.ListCombinations()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Aluminium 304 Pipes", list[0].FinalProductName)
	assert.Equal(t, "Aluminium A105 Pipes", list[1].FinalProductName)
}

func TestCombinationController_CreateCombinations_MissingFields(t *testing.T) {
	f := setupCombinationControllerTest(t)

	w := f.do(t, http.MethodPost, "/product-combinations", gin.H{
		"product_id": f.product.ID,
		"grade_ids":  []uint{},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	list, err := f.service.ListCombinations()
	require.NoError(t, err)
	assert.Len(t, list, 0)
}

func TestCombinationController_ListCombinations(t *testing.T) {
	f := setupCombinationControllerTest(t)
	f.createTwo(t)

	w := f.do(t, http.MethodGet, "/product-combinations", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Combinations []model.ProductCombination `json:"combinations"`
		Count        int                        `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Count)
	require.Len(t, response.Combinations, 2)

	// Reference names are resolved in the listing
	assert.Equal(t, "Pipes", response.Combinations[0].Product.Name)
	assert.Equal(t, "Aluminium", response.Combinations[0].Material.Name)
	assert.Equal(t, "304", response.Combinations[0].Grade.Name)
}

func TestCombinationController_GetCombinationByID(t *testing.T) {
	f := setupCombinationControllerTest(t)
	created := f.createTwo(t)

	w := f.do(t, http.MethodGet, fmt.Sprintf("/product-combinations/%d", created[0].ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodGet, "/product-combinations/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/product-combinations/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCombinationController_UpdateCombination(t *testing.T) {
	f := setupCombinationControllerTest(t)
	created := f.createTwo(t)

	w := f.do(t, http.MethodPut, fmt.Sprintf("/product-combinations/%d", created[0].ID), gin.H{
		"shape": "Square",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Combination model.ProductCombination `json:"combination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Square", response.Combination.Shape)
	assert.Equal(t, "100", response.Combination.Price)
	assert.Equal(t, "Aluminium 304 Pipes", response.Combination.FinalProductName)
}

func TestCombinationController_UpdateCombination_NotFound(t *testing.T) {
	f := setupCombinationControllerTest(t)

	w := f.do(t, http.MethodPut, "/product-combinations/9999", gin.H{
		"shape": "Square",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCombinationController_BulkUpdate(t *testing.T) {
	f := setupCombinationControllerTest(t)
	created := f.createTwo(t)

	w := f.do(t, http.MethodPut, "/bulk-update", gin.H{
		"product_ids": []uint{created[0].ID, created[1].ID, 9999},
		"update_data": gin.H{
			"price": "42",
		},
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Message string `json:"message"`
		Updated []uint `json:"updated"`
		Skipped []uint `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Bulk update successful", response.Message)
	assert.ElementsMatch(t, []uint{created[0].ID, created[1].ID}, response.Updated)
	assert.Equal(t, []uint{9999}, response.Skipped)
}

func TestCombinationController_BulkUpdate_EmptyTargets(t *testing.T) {
	f := setupCombinationControllerTest(t)

	w := f.do(t, http.MethodPut, "/bulk-update", gin.H{
		"product_ids": []uint{},
		"update_data": gin.H{"price": "42"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCombinationController_Counts(t *testing.T) {
	f := setupCombinationControllerTest(t)
	f.createTwo(t)

	w := f.do(t, http.MethodGet, "/product-combinations/count-by-product", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Counts []repository.NameCount `json:"counts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Counts, 1)
	assert.Equal(t, "Pipes", response.Counts[0].Name)
	assert.Equal(t, int64(2), response.Counts[0].Count)

	w = f.do(t, http.MethodGet, "/product-combinations/count-by-material", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Counts, 1)
	assert.Equal(t, "Aluminium", response.Counts[0].Name)
	assert.Equal(t, int64(2), response.Counts[0].Count)
}
