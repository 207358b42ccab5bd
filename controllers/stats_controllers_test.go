package controllers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/ju699/FlexFood/controllers"
	"github.com/ju699/FlexFood/models"
)

func setupStatsRouter(db *gorm.DB, ownerID uint) *gin.Engine {
	router := gin.New()
	ctrl := controllers.NewStatsController(db)
	grp := router.Group("/dashboard", authAs(ownerID))
	grp.GET("/stats", ctrl.GetDashboardStats)
	grp.GET("/stats/chart", ctrl.GetStatsChart)
	return router
}

func TestDashboardStats(t *testing.T) {
	db := newTestDB("stats_dashboard")
	restaurant := seedRestaurant(db, 1, "Le Gourmet", "le-gourmet")

	plats := models.Category{RestaurantID: restaurant.ID, Name: "Plats"}
	db.Create(&plats)
	deleted := models.Category{RestaurantID: restaurant.ID, Name: "Boissons"}
	db.Create(&deleted)

	db.Create(&models.Product{RestaurantID: restaurant.ID, CategoryID: &plats.ID, Name: "Poulet", Price: 2500, IsAvailable: true})
	db.Create(&models.Product{RestaurantID: restaurant.ID, CategoryID: &plats.ID, Name: "Attiéké", Price: 1000, IsAvailable: false})
	orphan := models.Product{RestaurantID: restaurant.ID, CategoryID: &deleted.ID, Name: "Bissap", Price: 500, IsAvailable: true}
	db.Create(&orphan)

	// Delete the category so its product dangles
	db.Delete(&deleted)

	db.Create(&models.Order{RestaurantID: restaurant.ID, OrderNumber: "240915-100", Status: models.OrderStatusPending})
	db.Create(&models.Order{RestaurantID: restaurant.ID, OrderNumber: "240915-101", Status: models.OrderStatusServed})

	router := setupStatsRouter(db, 1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/dashboard/stats", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	data := envelopeData(t, w)
	assert.Equal(t, 1.0, data["categories_count"])
	assert.Equal(t, 3.0, data["products_count"])
	assert.Equal(t, 2.0, data["available_count"])
	assert.Equal(t, 1.0, data["unavailable_count"])

	byCategory, _ := data["products_by_category"].([]interface{})
	assert.Len(t, byCategory, 2)
	last, _ := byCategory[len(byCategory)-1].(map[string]interface{})
	assert.Equal(t, "Autre", last["name"], "dangling products group under Autre, listed last")
	assert.Equal(t, 1.0, last["count"])

	orderStats, _ := data["order_stats"].(map[string]interface{})
	assert.Equal(t, 1.0, orderStats["pending"])
	assert.Equal(t, 1.0, orderStats["served"])
	assert.Equal(t, 0.0, orderStats["preparing"])
}

func TestStatsChart(t *testing.T) {
	db := newTestDB("stats_chart")
	restaurant := seedRestaurant(db, 1, "Le Gourmet", "le-gourmet")
	plats := models.Category{RestaurantID: restaurant.ID, Name: "Plats"}
	db.Create(&plats)
	db.Create(&models.Product{RestaurantID: restaurant.ID, CategoryID: &plats.ID, Name: "Poulet", Price: 2500, IsAvailable: true})

	router := setupStatsRouter(db, 1)

	for _, chartType := range []string{"categories", "availability"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/dashboard/stats/chart?type="+chartType, nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "type=%s", chartType)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		body := w.Body.Bytes()
		assert.True(t, len(body) > 4)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, body[:4])
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/dashboard/stats/chart?type=pie", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatsChartEmptyMenu(t *testing.T) {
	db := newTestDB("stats_chart_empty")
	seedRestaurant(db, 1, "Le Gourmet", "le-gourmet")
	router := setupStatsRouter(db, 1)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/dashboard/stats/chart", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
