package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehub/restaurant-app/middlewares"
	"github.com/dinehub/restaurant-app/models"
	"github.com/dinehub/restaurant-app/services"
	"github.com/dinehub/restaurant-app/utils"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{carts: services.NewCartService(db)}
}

type cartResponse struct {
	*models.Cart
	Total float64 `json:"total"`
}

func toCartResponse(cart *models.Cart) cartResponse {
	return cartResponse{Cart: cart, Total: cart.Total()}
}

// GetCart returns the user's cart with the total derived from current
// prices.
func (cc *CartController) GetCart(c *gin.Context) {
	cart, err := cc.carts.GetCart(middlewares.UserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart", toCartResponse(cart))
}

// AddItem merges a quantity of one food into the cart.
func (cc *CartController) AddItem(c *gin.Context) {
	var req struct {
		FoodID   uint `json:"food_id" binding:"required"`
		Quantity int  `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart, err := cc.carts.AddToCart(middlewares.UserID(c), req.FoodID, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item added to cart", toCartResponse(cart))
}

// DecrementItem reduces a line by one, removing it at zero.
func (cc *CartController) DecrementItem(c *gin.Context) {
	foodID, err := strconv.Atoi(c.Param("food_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart, err := cc.carts.DecrementItem(middlewares.UserID(c), uint(foodID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item decremented", toCartResponse(cart))
}

// RemoveItem deletes a line from the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	foodID, err := strconv.Atoi(c.Param("food_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	cart, err := cc.carts.RemoveFromCart(middlewares.UserID(c), uint(foodID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed from cart", toCartResponse(cart))
}
