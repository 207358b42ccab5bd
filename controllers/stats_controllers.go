package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ju699/FlexFood/models"
	"github.com/ju699/FlexFood/services"
	"github.com/ju699/FlexFood/utils"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

type dashboardStats struct {
	CategoriesCount    int64                    `json:"categories_count"`
	ProductsCount      int64                    `json:"products_count"`
	AvailableCount     int64                    `json:"available_count"`
	UnavailableCount   int64                    `json:"unavailable_count"`
	ProductsByCategory []services.CategoryCount `json:"products_by_category"`
	OrderStats         struct {
		Pending   int64 `json:"pending"`
		Preparing int64 `json:"preparing"`
		Ready     int64 `json:"ready"`
		Served    int64 `json:"served"`
	} `json:"order_stats"`
}

// collectStats builds the statistics page payload. Products whose category
// was deleted (or never set) are grouped under "Autre".
func (sc *StatsController) collectStats(restaurantID uint) (dashboardStats, error) {
	var stats dashboardStats

	sc.DB.Model(&models.Category{}).Where("restaurant_id = ?", restaurantID).Count(&stats.CategoriesCount)
	sc.DB.Model(&models.Product{}).Where("restaurant_id = ?", restaurantID).Count(&stats.ProductsCount)
	sc.DB.Model(&models.Product{}).Where("restaurant_id = ? AND is_available = ?", restaurantID, true).Count(&stats.AvailableCount)
	stats.UnavailableCount = stats.ProductsCount - stats.AvailableCount

	var categories []models.Category
	if err := sc.DB.Where("restaurant_id = ?", restaurantID).Find(&categories).Error; err != nil {
		return stats, err
	}
	var products []models.Product
	if err := sc.DB.Where("restaurant_id = ?", restaurantID).Find(&products).Error; err != nil {
		return stats, err
	}

	nameByID := make(map[uint]string, len(categories))
	for _, cat := range categories {
		nameByID[cat.ID] = cat.Name
	}

	counts := make(map[string]int)
	for _, p := range products {
		name := "Autre"
		if p.CategoryID != nil {
			if n, ok := nameByID[*p.CategoryID]; ok {
				name = n
			}
		}
		counts[name]++
	}

	// Keep category order stable; "Autre" goes last.
	for _, cat := range categories {
		if n := counts[cat.Name]; n > 0 {
			stats.ProductsByCategory = append(stats.ProductsByCategory, services.CategoryCount{Name: cat.Name, Count: n})
		}
	}
	if n := counts["Autre"]; n > 0 {
		stats.ProductsByCategory = append(stats.ProductsByCategory, services.CategoryCount{Name: "Autre", Count: n})
	}

	sc.DB.Model(&models.Order{}).Where("restaurant_id = ? AND status = ?", restaurantID, models.OrderStatusPending).Count(&stats.OrderStats.Pending)
	sc.DB.Model(&models.Order{}).Where("restaurant_id = ? AND status = ?", restaurantID, models.OrderStatusPreparing).Count(&stats.OrderStats.Preparing)
	sc.DB.Model(&models.Order{}).Where("restaurant_id = ? AND status = ?", restaurantID, models.OrderStatusReady).Count(&stats.OrderStats.Ready)
	sc.DB.Model(&models.Order{}).Where("restaurant_id = ? AND status = ?", restaurantID, models.OrderStatusServed).Count(&stats.OrderStats.Served)

	return stats, nil
}

// GetDashboardStats
func (sc *StatsController) GetDashboardStats(c *gin.Context) {
	restaurant, err := restaurantForOwner(sc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	stats, err := sc.collectStats(restaurant.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", stats)
}

// GetStatsChart renders a chart PNG for the statistics page.
// ?type=categories (default) or ?type=availability.
func (sc *StatsController) GetStatsChart(c *gin.Context) {
	restaurant, err := restaurantForOwner(sc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	stats, err := sc.collectStats(restaurant.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var png []byte
	switch c.DefaultQuery("type", "categories") {
	case "availability":
		png, err = services.RenderAvailabilityDonut(int(stats.AvailableCount), int(stats.UnavailableCount))
	case "categories":
		png, err = services.RenderCategoryBarChart(stats.ProductsByCategory)
	default:
		utils.RespondError(c, http.StatusBadRequest, errors.New("unknown chart type"))
		return
	}
	if err != nil {
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
