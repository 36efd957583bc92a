package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehub/restaurant-app/middlewares"
	"github.com/dinehub/restaurant-app/services"
	"github.com/dinehub/restaurant-app/utils"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{orders: services.NewOrderService(db)}
}

// GetAllOrders lists orders scoped by role.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.orders.ListOrders(middlewares.UserID(c), middlewares.Role(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID returns one order if the caller may see it.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.orders.GetOrder(uint(id), middlewares.UserID(c), middlewares.Role(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CreateOrder persists a pending order from an explicit item list.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req struct {
		RestaurantID uint                      `json:"restaurant_id" binding:"required"`
		Items        []services.OrderItemInput `json:"items" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.orders.CreateOrder(middlewares.UserID(c), req.RestaurantID, req.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// CreateOrderFromCart snapshots the user's cart into a pending order and
// empties the cart.
func (oc *OrderController) CreateOrderFromCart(c *gin.Context) {
	order, err := oc.orders.CreateOrderFromCart(middlewares.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created from cart", order)
}

// Checkout attaches delivery details to the caller's pending order.
func (oc *OrderController) Checkout(c *gin.Context) {
	var req struct {
		Address string `json:"address" binding:"required"`
		Phone   string `json:"phone" binding:"required"`
		Note    string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.orders.Checkout(c.Param("uuid"), middlewares.UserID(c), req.Address, req.Phone, req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Checkout completed", gin.H{
		"order":      order,
		"order_uuid": order.UUID,
	})
}

// UpdateStatus advances the order lifecycle. Vendor/admin only (routing
// enforces the role).
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.orders.UpdateStatus(uint(id), middlewares.UserID(c), middlewares.Role(c), req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}
