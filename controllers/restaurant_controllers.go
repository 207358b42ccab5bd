package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"

	"github.com/ju699/FlexFood/models"
	"github.com/ju699/FlexFood/services"
	"github.com/ju699/FlexFood/utils"
)

type RestaurantController struct {
	DB      *gorm.DB
	Gateway *services.StorageGateway
	Cache   *services.MenuCache
}

func NewRestaurantController(db *gorm.DB, gateway *services.StorageGateway, cache *services.MenuCache) *RestaurantController {
	return &RestaurantController{DB: db, Gateway: gateway, Cache: cache}
}

// CreateRestaurant handles owner onboarding. One restaurant per owner; the
// slug is derived from the name once, at creation.
func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	id, err := ownerID(c)
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, err)
		return
	}

	var body struct {
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone"`
		Whatsapp string `json:"whatsapp"`
		City     string `json:"city"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var existing models.Restaurant
	if err := rc.DB.Where("owner_id = ?", id).First(&existing).Error; err == nil {
		utils.RespondError(c, http.StatusConflict, errors.New("restaurant already exists for this owner"))
		return
	}

	restaurant := models.Restaurant{
		OwnerID: id,
		Name:    body.Name,
		Slug:    utils.SlugOrFallback(body.Name),
	}
	if body.Phone != "" {
		restaurant.Phone = &body.Phone
	}
	if body.Whatsapp != "" {
		restaurant.Whatsapp = &body.Whatsapp
	}
	if body.City != "" {
		restaurant.City = &body.City
	}

	if err := rc.DB.Create(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Restaurant created: %s (slug=%s)", restaurant.Name, restaurant.Slug)

	utils.RespondJSON(c, http.StatusCreated, "Restaurant created", restaurant)
}

// GetMyRestaurant returns the owner's restaurant, or a not-found envelope so
// the dashboard can render its onboarding state.
func (rc *RestaurantController) GetMyRestaurant(c *gin.Context) {
	restaurant, err := restaurantForOwner(rc.DB, c)
	if err != nil {
		if errors.Is(err, ErrNoRestaurant) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", restaurant)
}

// UpdateRestaurant is the profile edit: partial fields plus optional logo and
// cover files pushed through the normalize+upload pipeline. The slug stays
// stable across renames so printed QR codes keep working.
func (rc *RestaurantController) UpdateRestaurant(c *gin.Context) {
	restaurant, err := restaurantForOwner(rc.DB, c)
	if err != nil {
		if errors.Is(err, ErrNoRestaurant) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("error parsing form data"))
		return
	}

	if name, ok := c.GetPostForm("name"); ok && name != "" {
		restaurant.Name = name
	}
	if phone, ok := c.GetPostForm("phone"); ok {
		restaurant.Phone = &phone
	}
	if whatsapp, ok := c.GetPostForm("whatsapp"); ok {
		restaurant.Whatsapp = &whatsapp
	}
	if city, ok := c.GetPostForm("city"); ok {
		restaurant.City = &city
	}
	if rawHours, ok := c.GetPostForm("opening_hours"); ok && rawHours != "" {
		var hours models.OpeningHours
		if err := json.Unmarshal([]byte(rawHours), &hours); err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid opening_hours format"))
			return
		}
		if err := restaurant.SetOpeningHours(hours); err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	if file, err := c.FormFile("logo"); err == nil {
		url, err := uploadThroughGateway(c, rc.Gateway, restaurant.ID, "logo", file, services.LogoImageOptions)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		restaurant.LogoURL = &url
	}
	if file, err := c.FormFile("cover"); err == nil {
		url, err := uploadThroughGateway(c, rc.Gateway, restaurant.ID, "cover", file, services.CoverImageOptions)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		restaurant.CoverURL = &url
	}

	if err := rc.DB.Save(restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rc.Cache.Invalidate(c.Request.Context(), restaurant.Slug)

	utils.RespondJSON(c, http.StatusOK, "Restaurant updated", restaurant)
}

// GetQRCode serves the scannable PNG encoding the public menu URL, named so
// the browser downloads it.
func (rc *RestaurantController) GetQRCode(c *gin.Context) {
	restaurant, err := restaurantForOwner(rc.DB, c)
	if err != nil {
		if errors.Is(err, ErrNoRestaurant) {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	publicURL := fmt.Sprintf("%s/r/%s", publicBaseURL(), restaurant.Slug)
	png, err := qrcode.Encode(publicURL, qrcode.Medium, 256)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="qrcode-%s.png"`, restaurant.Slug))
	c.Data(http.StatusOK, "image/png", png)
}

func respondUploadError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrRetryLimitExceeded) {
		utils.RespondError(c, http.StatusBadGateway, errors.New("upload retry limit exceeded, please try again"))
		return
	}
	utils.RespondError(c, http.StatusInternalServerError, errors.New("error uploading image"))
}

func publicBaseURL() string {
	if base := os.Getenv("PUBLIC_BASE_URL"); base != "" {
		return base
	}
	return "http://localhost:8080"
}
