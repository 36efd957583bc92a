package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/dinehub/restaurant-app/controllers"
	"github.com/dinehub/restaurant-app/middlewares"
	"github.com/dinehub/restaurant-app/models"
	"github.com/dinehub/restaurant-app/utils"
)

func setupAuthRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	userCtrl := controllers.NewUserController(db)
	r.POST("/register", userCtrl.Register)
	r.POST("/login", userCtrl.Login)
	r.POST("/auth/refresh", userCtrl.Refresh)
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	auth.POST("/logout", userCtrl.Logout)
	auth.GET("/me", userCtrl.Me)
	return r
}

func cookieByName(w *httptest.ResponseRecorder, name string) *http.Cookie {
	res := http.Response{Header: w.Header()}
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRegisterSetsAuthCookies(t *testing.T) {
	db := setupTestDB(t)
	r := setupAuthRouter(db)

	w := doJSON(t, r, "POST", "/register", gin.H{
		"name":     "Alex",
		"email":    "alex@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, models.RoleCustomer, data["role"])

	access := cookieByName(w, utils.AccessCookieName)
	refresh := cookieByName(w, utils.RefreshCookieName)
	if assert.NotNil(t, access) {
		assert.True(t, access.HttpOnly)
		assert.NotEmpty(t, access.Value)
	}
	if assert.NotNil(t, refresh) {
		assert.True(t, refresh.HttpOnly)
	}

	// duplicate email is rejected
	w = doJSON(t, r, "POST", "/register", gin.H{
		"name":     "Alex Again",
		"email":    "alex@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)
	r := setupAuthRouter(db)

	// short password
	w := doJSON(t, r, "POST", "/register", gin.H{
		"name": "Alex", "email": "alex@example.com", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// bad role
	w = doJSON(t, r, "POST", "/register", gin.H{
		"name": "Alex", "email": "alex@example.com", "password": "password123", "role": "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestLoginAndMe(t *testing.T) {
	db := setupTestDB(t)
	_, customer, _, _ := seedCatalog(t, db)
	r := setupAuthRouter(db)

	w := doJSON(t, r, "POST", "/login", gin.H{
		"email":    customer.Email,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	access := data["access"].(string)
	assert.NotEmpty(t, access)

	// bearer token works against the protected endpoint
	req, _ := http.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	profile := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, customer.Email, profile["email"])
	assert.Equal(t, models.RoleCustomer, profile["role"])

	// so does the cookie the login set
	req, _ = http.NewRequest("GET", "/me", nil)
	req.AddCookie(cookieByName(w, utils.AccessCookieName))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := setupTestDB(t)
	_, customer, _, _ := seedCatalog(t, db)
	r := setupAuthRouter(db)

	w := doJSON(t, r, "POST", "/login", gin.H{
		"email":    customer.Email,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, "POST", "/login", gin.H{
		"email":    "nobody@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshFromBody(t *testing.T) {
	db := setupTestDB(t)
	_, customer, _, _ := seedCatalog(t, db)
	r := setupAuthRouter(db)

	w := doJSON(t, r, "POST", "/login", gin.H{
		"email":    customer.Email,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})

	w = doJSON(t, r, "POST", "/auth/refresh", gin.H{"refresh": data["refresh"]})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decodeBody(t, w)["data"].(map[string]interface{})["access"])

	// an access token is not accepted as a refresh token
	w = doJSON(t, r, "POST", "/auth/refresh", gin.H{"refresh": data["access"]})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutBlacklistsToken(t *testing.T) {
	db := setupTestDB(t)
	_, customer, _, _ := seedCatalog(t, db)
	r := setupAuthRouter(db)

	w := doJSON(t, r, "POST", "/login", gin.H{
		"email":    customer.Email,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	accessCookie := cookieByName(w, utils.AccessCookieName)

	body := bytes.NewBuffer(nil)
	_ = json.NewEncoder(body).Encode(gin.H{})
	req, _ := http.NewRequest("POST", "/logout", body)
	req.AddCookie(accessCookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// the blacklisted token no longer authenticates
	req, _ = http.NewRequest("GET", "/me", nil)
	req.AddCookie(accessCookie)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
