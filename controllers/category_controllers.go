package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ju699/FlexFood/models"
	"github.com/ju699/FlexFood/utils"
)

type CategoryController struct {
	DB *gorm.DB
}

func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// GetAllCategories
func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	restaurant, err := restaurantForOwner(cc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var categories []models.Category
	if err := cc.DB.Where("restaurant_id = ?", restaurant.ID).Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All categories", categories)
}

// CreateCategory
func (cc *CategoryController) CreateCategory(c *gin.Context) {
	restaurant, err := restaurantForOwner(cc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var body struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	category := models.Category{
		RestaurantID: restaurant.ID,
		Name:         body.Name,
	}
	if err := cc.DB.Create(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

// UpdateCategory renames a category.
func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	restaurant, err := restaurantForOwner(cc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	id, _ := strconv.Atoi(c.Param("cat_id"))

	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var category models.Category
	if err := cc.DB.Where("restaurant_id = ?", restaurant.ID).First(&category, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if body.Name != "" {
		category.Name = body.Name
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory removes a category. Products keep their category_id: there
// is no cascade, dangling references are grouped under "Autre".
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	restaurant, err := restaurantForOwner(cc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	id, _ := strconv.Atoi(c.Param("cat_id"))

	result := cc.DB.Where("restaurant_id = ?", restaurant.ID).Delete(&models.Category{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("category not found"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"category_id": id})
}
