package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dinehub/restaurant-app/models"
	"github.com/dinehub/restaurant-app/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

func validRole(role string) bool {
	switch role {
	case models.RoleAdmin, models.RoleVendor, models.RoleCustomer:
		return true
	}
	return false
}

// Register creates a user and signs them in with the cookie pair.
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Role == "" {
		req.Role = models.RoleCustomer
	}
	if !validRole(req.Role) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("role must be admin, vendor or customer"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("email already registered"))
		return
	}

	access, refresh, err := utils.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.SetAuthCookies(c, access, refresh)

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.ID,
		"role":    user.Role,
	})
}

// Login verifies credentials and sets the access/refresh cookie pair.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	access, refresh, err := utils.GenerateTokenPair(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.SetAuthCookies(c, access, refresh)

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"access":  access,
		"refresh": refresh,
		"role":    user.Role,
	})
}

// Logout blacklists the current tokens and clears both cookies. Blacklist
// failures are non-fatal.
func (uc *UserController) Logout(c *gin.Context) {
	if access, err := c.Cookie(utils.AccessCookieName); err == nil && access != "" {
		utils.BlacklistToken(access)
	}
	if refresh, err := c.Cookie(utils.RefreshCookieName); err == nil && refresh != "" {
		utils.BlacklistToken(refresh)
	}
	utils.ClearAuthCookies(c)

	utils.RespondJSON(c, http.StatusOK, "Logout successful", nil)
}

// Refresh issues a new access token from a valid refresh token (cookie or
// body).
func (uc *UserController) Refresh(c *gin.Context) {
	refresh, _ := c.Cookie(utils.RefreshCookieName)
	if refresh == "" {
		var body struct {
			Refresh string `json:"refresh"`
		}
		if err := c.ShouldBindJSON(&body); err == nil {
			refresh = body.Refresh
		}
	}
	if refresh == "" {
		utils.RespondError(c, http.StatusBadRequest, errors.New("refresh token required"))
		return
	}

	claims, err := utils.ValidateToken(refresh)
	if err != nil || claims.TokenType != utils.TokenTypeRefresh {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid refresh token"))
		return
	}

	access, newRefresh, err := utils.GenerateTokenPair(claims.UserID, claims.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.SetAuthCookies(c, access, newRefresh)

	utils.RespondJSON(c, http.StatusOK, "Token refreshed", gin.H{
		"access": access,
	})
}

// Me returns the authenticated user's profile.
func (uc *UserController) Me(c *gin.Context) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}
	userID := userIDInterface.(uint)

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data retrieved successfully", gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}
