package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ju699/FlexFood/models"
	"github.com/ju699/FlexFood/services"
	"github.com/ju699/FlexFood/utils"
)

// PublicController serves the customer-facing menu reached by QR code. No
// authentication; everything is scoped by the slug's restaurant.
type PublicController struct {
	DB    *gorm.DB
	Cache *services.MenuCache
}

func NewPublicController(db *gorm.DB, cache *services.MenuCache) *PublicController {
	return &PublicController{DB: db, Cache: cache}
}

type publicMenu struct {
	Restaurant models.Restaurant `json:"restaurant"`
	Products   []models.Product  `json:"products"`
}

func (pc *PublicController) restaurantBySlug(slug string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := pc.DB.Where("slug = ?", slug).First(&restaurant).Error; err != nil {
		return nil, err
	}
	return &restaurant, nil
}

// GetMenu returns the restaurant and its available products for /r/:slug.
// Cache-first: the payload is kept in Redis until a dashboard write
// invalidates it.
func (pc *PublicController) GetMenu(c *gin.Context) {
	slug := c.Param("slug")

	var menu publicMenu
	if pc.Cache.Get(c.Request.Context(), slug, &menu) {
		utils.RespondJSON(c, http.StatusOK, "Public menu", menu)
		return
	}

	restaurant, err := pc.restaurantBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, ErrNoRestaurant)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var products []models.Product
	if err := pc.DB.Where("restaurant_id = ? AND is_available = ?", restaurant.ID, true).
		Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	menu = publicMenu{Restaurant: *restaurant, Products: products}
	pc.Cache.Set(c.Request.Context(), slug, menu)

	utils.RespondJSON(c, http.StatusOK, "Public menu", menu)
}

// GetProduct returns one product plus the WhatsApp deep link used by the
// "Commander" button, when the restaurant configured a number.
func (pc *PublicController) GetProduct(c *gin.Context) {
	restaurant, err := pc.restaurantBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, ErrNoRestaurant)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	id, _ := strconv.Atoi(c.Param("product_id"))

	var product models.Product
	if err := pc.DB.Where("restaurant_id = ?", restaurant.ID).First(&product, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("product not found"))
		return
	}

	data := gin.H{"product": product}
	if restaurant.Whatsapp != nil && *restaurant.Whatsapp != "" {
		data["whatsapp_link"] = utils.WhatsAppOrderLink(*restaurant.Whatsapp, product.Name, product.Price)
	}

	utils.RespondJSON(c, http.StatusOK, "Product detail", data)
}

// CreateOrder is the customer order submission. Names and unit prices are
// snapshotted from the restaurant's own products so later edits never
// rewrite order history. Products outside this restaurant are skipped by
// scoping.
func (pc *PublicController) CreateOrder(c *gin.Context) {
	restaurant, err := pc.restaurantBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, ErrNoRestaurant)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type itemReq struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity" binding:"required,min=1"`
	}
	var body struct {
		Items         []itemReq `json:"items" binding:"required,min=1,dive"`
		CustomerName  string    `json:"customer_name"`
		CustomerPhone string    `json:"customer_phone"`
		TableNumber   *string   `json:"table_number"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var items []models.OrderItem
	for _, item := range body.Items {
		var product models.Product
		if err := pc.DB.Where("restaurant_id = ?", restaurant.ID).
			First(&product, item.ProductID).Error; err != nil {
			continue
		}
		items = append(items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
		})
	}
	if len(items) == 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("no valid items in order"))
		return
	}

	order := models.Order{
		RestaurantID:  restaurant.ID,
		OrderNumber:   pc.generateOrderNumber(restaurant.ID),
		Status:        models.OrderStatusPending,
		CustomerName:  body.CustomerName,
		CustomerPhone: body.CustomerPhone,
		TableNumber:   body.TableNumber,
		Items:         items,
	}

	if err := pc.DB.Create(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order %s created for restaurant %d (%d items)",
		order.OrderNumber, restaurant.ID, len(order.Items))

	utils.RespondJSON(c, http.StatusCreated, "Order created", withTotal(order))
}

// generateOrderNumber retries the random suffix a few times when the label
// already exists for this restaurant, then accepts the last candidate: the
// number is a human-facing label, not an identifier.
func (pc *PublicController) generateOrderNumber(restaurantID uint) string {
	number := models.GenerateOrderNumber(time.Now())
	for attempt := 0; attempt < 5; attempt++ {
		var count int64
		pc.DB.Model(&models.Order{}).
			Where("restaurant_id = ? AND order_number = ?", restaurantID, number).
			Count(&count)
		if count == 0 {
			break
		}
		number = models.GenerateOrderNumber(time.Now())
	}
	return number
}
