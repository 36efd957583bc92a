package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehub/restaurant-app/middlewares"
	"github.com/dinehub/restaurant-app/models"
	"github.com/dinehub/restaurant-app/utils"
)

type FoodController struct {
	DB *gorm.DB
}

func NewFoodController(db *gorm.DB) *FoodController {
	return &FoodController{DB: db}
}

type foodResponse struct {
	models.Food
	DiscountedPrice float64 `json:"discounted_price"`
}

func toFoodResponse(f models.Food) foodResponse {
	return foodResponse{Food: f, DiscountedPrice: f.DiscountedPrice()}
}

// GetAllFoods lists foods with derived discounted prices. Public.
func (fc *FoodController) GetAllFoods(c *gin.Context) {
	query := fc.DB
	if restaurantID := c.Query("restaurant_id"); restaurantID != "" {
		query = query.Where("restaurant_id = ?", restaurantID)
	}

	var foods []models.Food
	if err := query.Find(&foods).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	out := make([]foodResponse, 0, len(foods))
	for _, f := range foods {
		out = append(out, toFoodResponse(f))
	}
	utils.RespondJSON(c, http.StatusOK, "List of foods", out)
}

// GetFood returns one food. Public.
func (fc *FoodController) GetFood(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	var food models.Food
	if err := fc.DB.First(&food, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("food not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food detail", toFoodResponse(food))
}

// CreateFood adds a menu item. Vendors may only add to their own restaurant.
func (fc *FoodController) CreateFood(c *gin.Context) {
	var req struct {
		RestaurantID    uint    `json:"restaurant_id" binding:"required"`
		Name            string  `json:"name" binding:"required"`
		Description     string  `json:"description"`
		Price           float64 `json:"price" binding:"required,gt=0"`
		DiscountPercent uint    `json:"discount_percent" binding:"lte=100"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var restaurant models.Restaurant
	if err := fc.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("restaurant not found"))
		return
	}
	if !middlewares.CanManage(middlewares.Role(c), restaurant.OwnerID, middlewares.UserID(c)) {
		utils.RespondError(c, http.StatusForbidden, errors.New("not allowed to add food to this restaurant"))
		return
	}

	food := models.Food{
		RestaurantID:    restaurant.ID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DiscountPercent: req.DiscountPercent,
	}
	if err := fc.DB.Create(&food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Food created", toFoodResponse(food))
}

// UpdateFood edits a menu item. Owner or admin only.
func (fc *FoodController) UpdateFood(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	food, restaurant, ok := fc.loadFoodWithOwner(c, id)
	if !ok {
		return
	}
	if !middlewares.CanManage(middlewares.Role(c), restaurant.OwnerID, middlewares.UserID(c)) {
		utils.RespondError(c, http.StatusForbidden, errors.New("not the restaurant owner"))
		return
	}

	var req struct {
		Name            *string  `json:"name"`
		Description     *string  `json:"description"`
		Price           *float64 `json:"price"`
		DiscountPercent *uint    `json:"discount_percent"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		food.Name = *req.Name
	}
	if req.Description != nil {
		food.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("price must be greater than zero"))
			return
		}
		food.Price = *req.Price
	}
	if req.DiscountPercent != nil {
		if *req.DiscountPercent > 100 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("discount percent must be 0-100"))
			return
		}
		food.DiscountPercent = *req.DiscountPercent
	}

	if err := fc.DB.Save(food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food updated", toFoodResponse(*food))
}

// DeleteFood removes a menu item. Owner or admin only.
func (fc *FoodController) DeleteFood(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("id"))

	food, restaurant, ok := fc.loadFoodWithOwner(c, id)
	if !ok {
		return
	}
	if !middlewares.CanManage(middlewares.Role(c), restaurant.OwnerID, middlewares.UserID(c)) {
		utils.RespondError(c, http.StatusForbidden, errors.New("not the restaurant owner"))
		return
	}

	if err := fc.DB.Delete(food).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Food deleted", nil)
}

func (fc *FoodController) loadFoodWithOwner(c *gin.Context, id int) (*models.Food, *models.Restaurant, bool) {
	var food models.Food
	if err := fc.DB.First(&food, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("food not found"))
		return nil, nil, false
	}
	var restaurant models.Restaurant
	if err := fc.DB.First(&restaurant, food.RestaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return nil, nil, false
	}
	return &food, &restaurant, true
}
