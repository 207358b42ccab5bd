package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/ju699/FlexFood/controllers"
	"github.com/ju699/FlexFood/models"
)

func setupCategoryRouter(db *gorm.DB, ownerID uint) *gin.Engine {
	router := gin.New()
	ctrl := controllers.NewCategoryController(db)
	grp := router.Group("/dashboard", authAs(ownerID))
	grp.GET("/categories", ctrl.GetAllCategories)
	grp.POST("/categories", ctrl.CreateCategory)
	grp.PATCH("/categories/:cat_id", ctrl.UpdateCategory)
	grp.DELETE("/categories/:cat_id", ctrl.DeleteCategory)
	return router
}

func TestCategoryCRUD(t *testing.T) {
	db := newTestDB("category_crud")
	seedRestaurant(db, 1, "Le Gourmet", "le-gourmet")
	router := setupCategoryRouter(db, 1)

	// Create
	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/dashboard/categories", map[string]interface{}{
		"name": "Plats",
	}))
	assert.Equal(t, http.StatusCreated, w.Code)

	data := envelopeData(t, w)
	catID := int(data["id"].(float64))
	assert.Equal(t, "Plats", data["name"])

	// Empty name rejected
	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("POST", "/dashboard/categories", map[string]interface{}{}))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// List
	w = httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/dashboard/categories", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Rename
	url := "/dashboard/categories/" + strconv.Itoa(catID)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PATCH", url, map[string]interface{}{
		"name": "Plats chauds",
	}))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Plats chauds", envelopeData(t, w)["name"])

	// Delete
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", url, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// Delete again -> 404
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("DELETE", url, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryScopedToOwnRestaurant(t *testing.T) {
	db := newTestDB("category_scope")
	seedRestaurant(db, 1, "Le Gourmet", "le-gourmet")
	other := seedRestaurant(db, 2, "Chez Mamie", "chez-mamie")

	foreign := models.Category{RestaurantID: other.ID, Name: "Desserts"}
	db.Create(&foreign)

	router := setupCategoryRouter(db, 1)
	url := "/dashboard/categories/" + strconv.Itoa(int(foreign.ID))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("PATCH", url, map[string]interface{}{"name": "Hijacked"}))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", url, nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var untouched models.Category
	assert.NoError(t, db.First(&untouched, foreign.ID).Error)
	assert.Equal(t, "Desserts", untouched.Name)
}

func TestCategoryDeleteLeavesProductsDangling(t *testing.T) {
	db := newTestDB("category_dangling")
	restaurant := seedRestaurant(db, 1, "Le Gourmet", "le-gourmet")

	category := models.Category{RestaurantID: restaurant.ID, Name: "Plats"}
	db.Create(&category)
	product := models.Product{
		RestaurantID: restaurant.ID,
		CategoryID:   &category.ID,
		Name:         "Poulet braisé",
		Price:        2500,
		IsAvailable:  true,
	}
	db.Create(&product)

	router := setupCategoryRouter(db, 1)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/dashboard/categories/"+strconv.Itoa(int(category.ID)), nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// The product survives with its old category reference.
	var kept models.Product
	assert.NoError(t, db.First(&kept, product.ID).Error)
	assert.NotNil(t, kept.CategoryID)
	assert.Equal(t, category.ID, *kept.CategoryID)
}
