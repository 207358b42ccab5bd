package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ju699/FlexFood/models"
	"github.com/ju699/FlexFood/services"
	"github.com/ju699/FlexFood/utils"
)

type ProductController struct {
	DB      *gorm.DB
	Gateway *services.StorageGateway
	Cache   *services.MenuCache
}

func NewProductController(db *gorm.DB, gateway *services.StorageGateway, cache *services.MenuCache) *ProductController {
	return &ProductController{DB: db, Gateway: gateway, Cache: cache}
}

// GetAllProducts lists the restaurant's products. ?available=true narrows to
// available ones only.
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	restaurant, err := restaurantForOwner(pc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	query := pc.DB.Where("restaurant_id = ?", restaurant.ID)
	if c.Query("available") == "true" {
		query = query.Where("is_available = ?", true)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", products)
}

// CreateProduct creates a product from a multipart form. A name and a
// non-negative price are required; an image file is required unless the
// no_image flag was explicitly checked. Validation failures never reach the
// store.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	restaurant, err := restaurantForOwner(pc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("error parsing form data"))
		return
	}

	name := c.PostForm("name")
	if name == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("price must be a non-negative number"))
		return
	}

	noImage := c.PostForm("no_image") == "true"
	file, fileErr := c.FormFile("image")
	if fileErr != nil && !noImage {
		utils.RespondError(c, http.StatusBadRequest, errors.New("an image is required unless no_image is set"))
		return
	}

	product := models.Product{
		RestaurantID: restaurant.ID,
		Name:         name,
		Description:  c.PostForm("description"),
		Price:        price,
		IsAvailable:  true,
	}

	if raw := c.PostForm("category_id"); raw != "" {
		catID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category_id"))
			return
		}
		id := uint(catID)
		product.CategoryID = &id
	}
	if raw := c.PostForm("cooking_time"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid cooking_time"))
			return
		}
		product.CookingTime = &minutes
	}
	if raw := c.PostForm("tags"); raw != "" {
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid tags format"))
			return
		}
		if err := product.SetTags(tags); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	if raw := c.PostForm("is_available"); raw != "" {
		product.IsAvailable = raw == "true"
	}

	if file != nil {
		url, err := uploadProductImage(c, pc.Gateway, restaurant.ID, file)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		product.ImageURL = &url
	}

	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pc.Cache.Invalidate(c.Request.Context(), restaurant.Slug)

	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// GetProductByID
func (pc *ProductController) GetProductByID(c *gin.Context) {
	restaurant, err := restaurantForOwner(pc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	id, _ := strconv.Atoi(c.Param("product_id"))

	var product models.Product
	if err := pc.DB.Where("restaurant_id = ?", restaurant.ID).First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product detail", product)
}

// UpdateProduct applies a partial multipart update, with an optional
// replacement image through the same pipeline as creation.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	restaurant, err := restaurantForOwner(pc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	id, _ := strconv.Atoi(c.Param("product_id"))

	var product models.Product
	if err := pc.DB.Where("restaurant_id = ?", restaurant.ID).First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("error parsing form data"))
		return
	}

	if name, ok := c.GetPostForm("name"); ok {
		if name == "" {
			utils.RespondError(c, http.StatusBadRequest, errors.New("name is required"))
			return
		}
		product.Name = name
	}
	if raw, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must be a non-negative number"))
			return
		}
		product.Price = price
	}
	if description, ok := c.GetPostForm("description"); ok {
		product.Description = description
	}
	if raw, ok := c.GetPostForm("category_id"); ok {
		if raw == "" {
			product.CategoryID = nil
		} else {
			catID, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category_id"))
				return
			}
			id := uint(catID)
			product.CategoryID = &id
		}
	}
	if raw, ok := c.GetPostForm("cooking_time"); ok && raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid cooking_time"))
			return
		}
		product.CookingTime = &minutes
	}
	if raw, ok := c.GetPostForm("tags"); ok && raw != "" {
		var tags []string
		if err := json.Unmarshal([]byte(raw), &tags); err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid tags format"))
			return
		}
		if err := product.SetTags(tags); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}
	if raw, ok := c.GetPostForm("is_available"); ok && raw != "" {
		product.IsAvailable = raw == "true"
	}

	if file, err := c.FormFile("image"); err == nil {
		url, err := uploadProductImage(c, pc.Gateway, restaurant.ID, file)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		product.ImageURL = &url
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pc.Cache.Invalidate(c.Request.Context(), restaurant.Slug)

	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// ToggleAvailability flips the availability flag. Toggling twice returns the
// product to its original value.
func (pc *ProductController) ToggleAvailability(c *gin.Context) {
	restaurant, err := restaurantForOwner(pc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	id, _ := strconv.Atoi(c.Param("product_id"))

	var product models.Product
	if err := pc.DB.Where("restaurant_id = ?", restaurant.ID).First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	product.IsAvailable = !product.IsAvailable
	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	pc.Cache.Invalidate(c.Request.Context(), restaurant.Slug)

	utils.RespondJSON(c, http.StatusOK, "Availability updated", product)
}

// DeleteProduct
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	restaurant, err := restaurantForOwner(pc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	id, _ := strconv.Atoi(c.Param("product_id"))

	result := pc.DB.Where("restaurant_id = ?", restaurant.ID).Delete(&models.Product{}, id)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	pc.Cache.Invalidate(c.Request.Context(), restaurant.Slug)

	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": id})
}
