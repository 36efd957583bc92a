package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dinehub/restaurant-app/models"
	"github.com/dinehub/restaurant-app/router"
	"github.com/dinehub/restaurant-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// approvingGateway always authorizes, so the flow is deterministic.
type approvingGateway struct{}

func (approvingGateway) Authorize(_ *models.Payment) bool { return true }

// memPublisher collects published reservation events in memory.
type memPublisher struct {
	published int
}

func (p *memPublisher) Publish(_ context.Context, _, _ string, _ interface{}) error {
	p.published++
	return nil
}

// TestEndToEndIntegration walks the main flow:
// 0. Register a vendor and a customer
// 1. Vendor creates a restaurant and a discounted food
// 2. Customer fills the cart and materializes it into an order
// 3. Checkout attaches the delivery details
// 4. Fake payment: create, then verify -> success
// 5. Order is preparing; vendor walks it to delivered
// 6. A reservation lands on the notification channel
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB()
	publisher := &memPublisher{}
	r := router.SetupRouter(db, publisher, approvingGateway{})

	vendorToken := registerTest(t, r, "vendor@example.com", models.RoleVendor)
	customerToken := registerTest(t, r, "customer@example.com", models.RoleCustomer)

	restaurantID := createRestaurantTest(t, r, vendorToken)
	foodID := createFoodTest(t, r, vendorToken, restaurantID)

	orderUUID, orderID := fillCartAndOrderTest(t, r, customerToken, foodID)
	checkoutTest(t, r, customerToken, orderUUID)

	refCode := createPaymentTest(t, r, customerToken, orderID)
	verifyPaymentTest(t, r, refCode, orderUUID)

	orderLifecycleTest(t, r, vendorToken, orderID)

	reservationTest(t, r, publisher)
}

func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Food{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.PaymentLog{},
		&models.Reservation{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func request(t *testing.T, r *gin.Engine, method, url, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, url, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func responseData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return resp.Data
}

func registerTest(t *testing.T, r *gin.Engine, email, role string) string {
	w := request(t, r, http.MethodPost, "/register", "", gin.H{
		"name":     "Integration User",
		"email":    email,
		"password": "secret12345",
		"role":     role,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = request(t, r, http.MethodPost, "/login", "", gin.H{
		"email":    email,
		"password": "secret12345",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	return responseData(t, w)["access"].(string)
}

func createRestaurantTest(t *testing.T, r *gin.Engine, token string) uint {
	w := request(t, r, http.MethodPost, "/restaurants", token, gin.H{
		"name":        "Integration Diner",
		"description": "end to end kitchen",
		"address":     "42 Test Ave",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	return uint(responseData(t, w)["id"].(float64))
}

func createFoodTest(t *testing.T, r *gin.Engine, token string, restaurantID uint) uint {
	w := request(t, r, http.MethodPost, "/foods", token, gin.H{
		"restaurant_id":    restaurantID,
		"name":             "House Special",
		"price":            100.0,
		"discount_percent": 10,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	return uint(responseData(t, w)["id"].(float64))
}

func fillCartAndOrderTest(t *testing.T, r *gin.Engine, token string, foodID uint) (string, uint) {
	w := request(t, r, http.MethodPost, "/cart/items", token, gin.H{
		"food_id":  foodID,
		"quantity": 2,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// adding again merges into the same line
	w = request(t, r, http.MethodPost, "/cart/items", token, gin.H{
		"food_id":  foodID,
		"quantity": 1,
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 270.0, responseData(t, w)["total"].(float64), 0.001)

	w = request(t, r, http.MethodPost, "/cart/order", token, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
	data := responseData(t, w)
	assert.Equal(t, models.OrderStatusPending, data["status"])
	assert.InDelta(t, 270.0, data["total_price"].(float64), 0.001)

	// the cart is empty afterwards
	w = request(t, r, http.MethodGet, "/cart", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, responseData(t, w)["items"])

	return data["uuid"].(string), uint(data["id"].(float64))
}

func checkoutTest(t *testing.T, r *gin.Engine, token, orderUUID string) {
	w := request(t, r, http.MethodPost, "/orders/"+orderUUID+"/checkout", token, gin.H{
		"address": "42 Test Ave",
		"phone":   "555-0199",
		"note":    "leave at the door",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, orderUUID, responseData(t, w)["order_uuid"])
}

func createPaymentTest(t *testing.T, r *gin.Engine, token string, orderID uint) string {
	w := request(t, r, http.MethodPost, "/payments/create-fake", token, gin.H{
		"order_id": orderID,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	data := responseData(t, w)
	refCode := data["ref_code"].(string)
	assert.Len(t, refCode, 20)
	assert.InDelta(t, 270.0, data["amount"].(float64), 0.001)
	return refCode
}

func verifyPaymentTest(t *testing.T, r *gin.Engine, refCode, orderUUID string) {
	w := request(t, r, http.MethodPost, "/payments/verify-fake", "", gin.H{
		"ref_code":    refCode,
		"card_number": "4111111111111111",
		"cvv2":        "123",
		"otp":         "123456",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	data := responseData(t, w)
	assert.Equal(t, models.PaymentStatusSuccess, data["status"])
	assert.Equal(t, orderUUID, data["order_uuid"])

	// a second verify is rejected
	w = request(t, r, http.MethodPost, "/payments/verify-fake", "", gin.H{
		"ref_code":    refCode,
		"card_number": "4111111111111111",
		"cvv2":        "123",
		"otp":         "123456",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func orderLifecycleTest(t *testing.T, r *gin.Engine, vendorToken string, orderID uint) {
	statusURL := fmt.Sprintf("/orders/%d/status", orderID)

	// payment moved the order to preparing
	w := request(t, r, http.MethodGet, fmt.Sprintf("/orders/%d", orderID), vendorToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.OrderStatusPreparing, responseData(t, w)["status"])

	w = request(t, r, http.MethodPatch, statusURL, vendorToken, gin.H{"status": models.OrderStatusOnTheWay})
	assert.Equal(t, http.StatusOK, w.Code)

	w = request(t, r, http.MethodPatch, statusURL, vendorToken, gin.H{"status": models.OrderStatusDelivered})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.OrderStatusDelivered, responseData(t, w)["status"])
}

func reservationTest(t *testing.T, r *gin.Engine, publisher *memPublisher) {
	w := request(t, r, http.MethodPost, "/reservations", "", gin.H{
		"date":   "2026-10-01",
		"time":   "19:00",
		"guests": 2,
		"name":   "Walk In",
		"phone":  "555-0123",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, publisher.published)
}
