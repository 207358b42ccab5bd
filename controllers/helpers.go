package controllers

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ju699/FlexFood/models"
	"github.com/ju699/FlexFood/services"
)

var (
	ErrNoRestaurant = errors.New("restaurant introuvable")
	ErrNotOwner     = errors.New("owner not found in context")
)

// ownerID pulls the authenticated owner from the request context (set by the
// auth middleware).
func ownerID(c *gin.Context) (uint, error) {
	v, exists := c.Get("owner_id")
	if !exists {
		return 0, ErrNotOwner
	}
	id, ok := v.(uint)
	if !ok {
		return 0, ErrNotOwner
	}
	return id, nil
}

// restaurantForOwner loads the single restaurant of the authenticated owner.
// Every dashboard query is scoped through the restaurant returned here.
func restaurantForOwner(db *gorm.DB, c *gin.Context) (*models.Restaurant, error) {
	id, err := ownerID(c)
	if err != nil {
		return nil, err
	}

	var restaurant models.Restaurant
	if err := db.Where("owner_id = ?", id).First(&restaurant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoRestaurant
		}
		return nil, err
	}
	return &restaurant, nil
}

// uploadThroughGateway runs the image pipeline: normalize first, then upload
// through the gateway. Normalization must finish before the upload begins,
// and entity records are only written once the upload returned a URL.
func uploadThroughGateway(c *gin.Context, gw *services.StorageGateway, restaurantID uint, purpose string, file *multipart.FileHeader, opts services.NormalizeOptions) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}

	normalized, name := services.NormalizeImage(data, file.Filename, opts)
	path := services.ObjectPath(restaurantID, purpose, name)
	return gw.Upload(c.Request.Context(), path, normalized, nil)
}

func uploadProductImage(c *gin.Context, gw *services.StorageGateway, restaurantID uint, file *multipart.FileHeader) (string, error) {
	return uploadThroughGateway(c, gw, restaurantID, "products", file, services.ProductImageOptions)
}
