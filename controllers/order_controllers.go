package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ju699/FlexFood/models"
	"github.com/ju699/FlexFood/utils"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

type orderResponse struct {
	models.Order
	Total float64 `json:"total"`
}

func withTotal(order models.Order) orderResponse {
	return orderResponse{Order: order, Total: order.Total()}
}

// GetAllOrders feeds the orders board: newest first, items included.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	restaurant, err := restaurantForOwner(oc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var orders []models.Order
	if err := oc.DB.Preload("Items").
		Where("restaurant_id = ?", restaurant.ID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, withTotal(o))
	}

	utils.RespondJSON(c, http.StatusOK, "List of orders", resp)
}

// GetOrderByID
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	restaurant, err := restaurantForOwner(oc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Preload("Items").
		Where("restaurant_id = ?", restaurant.ID).
		First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", withTotal(order))
}

// UpdateOrderStatus overwrites the status with one of the known values. The
// board UI only ever moves one step forward; the data layer does not police
// the path beyond the enum itself.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	restaurant, err := restaurantForOwner(oc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	id, _ := strconv.Atoi(c.Param("order_id"))

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.IsValidOrderStatus(body.Status) {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown status: %s", body.Status))
		return
	}

	var order models.Order
	if err := oc.DB.Preload("Items").
		Where("restaurant_id = ?", restaurant.ID).
		First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	order.Status = body.Status
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order status updated", withTotal(order))
}

// AdvanceOrder moves an order exactly one step forward in the progression
// (pending -> preparing -> ready -> served). served is terminal.
func (oc *OrderController) AdvanceOrder(c *gin.Context) {
	restaurant, err := restaurantForOwner(oc.DB, c)
	if err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	id, _ := strconv.Atoi(c.Param("order_id"))

	var order models.Order
	if err := oc.DB.Preload("Items").
		Where("restaurant_id = ?", restaurant.ID).
		First(&order, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	next, ok := models.NextOrderStatus(order.Status)
	if !ok {
		utils.RespondError(c, http.StatusBadRequest, errors.New("order is already served"))
		return
	}

	order.Status = next
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order advanced", withTotal(order))
}
