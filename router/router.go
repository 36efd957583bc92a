package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehub/restaurant-app/controllers"
	"github.com/dinehub/restaurant-app/middlewares"
	"github.com/dinehub/restaurant-app/models"
	"github.com/dinehub/restaurant-app/notifier"
	"github.com/dinehub/restaurant-app/services"
)

// SetupRouter wires all routes. The publisher feeds the reservations
// channel; the gateway decides payment outcomes (tests inject stubs for
// both).
func SetupRouter(db *gorm.DB, publisher notifier.Publisher, gateway services.Gateway) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	restaurantCtrl := controllers.NewRestaurantController(db)
	foodCtrl := controllers.NewFoodController(db)
	cartCtrl := controllers.NewCartController(db)
	orderCtrl := controllers.NewOrderController(db)
	paymentCtrl := controllers.NewPaymentController(db, gateway)
	reservationCtrl := controllers.NewReservationController(db, publisher)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.NewStrictRateLimiter())
	{
		auth.POST("/register", userCtrl.Register)
		auth.POST("/login", userCtrl.Login)
	}
	r.POST("/auth/refresh", userCtrl.Refresh)

	r.GET("/restaurants", restaurantCtrl.GetAllRestaurants)
	r.GET("/restaurants/:id", restaurantCtrl.GetRestaurant)
	r.GET("/foods", foodCtrl.GetAllFoods)
	r.GET("/foods/:id", foodCtrl.GetFood)

	r.POST("/reservations", reservationCtrl.CreateReservation)

	// The verify endpoint simulates a redirect-based gateway callback, so
	// it is unauthenticated and limited per IP.
	verifyLimiter := middlewares.NewKeyedRateLimiter(time.Minute/10, 10)
	r.GET("/payments/:ref_code", paymentCtrl.GetPaymentByRefCode)
	r.POST("/payments/verify-fake", verifyLimiter.PerIP(), paymentCtrl.VerifyFakePayment)

	// Staff dashboard websocket (reservation feed)
	r.GET("/ws/staff",
		middlewares.WebSocketAuthMiddleware(),
		middlewares.RequireRoles(models.RoleAdmin, models.RoleVendor),
		controllers.StaffWSHandler)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/logout", userCtrl.Logout)
		api.GET("/me", userCtrl.Me)

		api.GET("/cart", cartCtrl.GetCart)
		api.POST("/cart/items", cartCtrl.AddItem)
		api.POST("/cart/items/:food_id/decrement", cartCtrl.DecrementItem)
		api.DELETE("/cart/items/:food_id", cartCtrl.RemoveItem)
		// materializes the cart into a pending order
		api.POST("/cart/order", orderCtrl.CreateOrderFromCart)

		api.GET("/orders", orderCtrl.GetAllOrders)
		api.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		api.POST("/orders", orderCtrl.CreateOrder)
		api.POST("/orders/:uuid/checkout", orderCtrl.Checkout)

		vendor := api.Group("/")
		vendor.Use(middlewares.RequireRoles(models.RoleVendor, models.RoleAdmin))
		{
			vendor.POST("/restaurants", restaurantCtrl.CreateRestaurant)
			vendor.PATCH("/restaurants/:id", restaurantCtrl.UpdateRestaurant)
			vendor.DELETE("/restaurants/:id", restaurantCtrl.DeleteRestaurant)
			vendor.POST("/foods", foodCtrl.CreateFood)
			vendor.PATCH("/foods/:id", foodCtrl.UpdateFood)
			vendor.DELETE("/foods/:id", foodCtrl.DeleteFood)
			vendor.PATCH("/orders/:order_id/status", orderCtrl.UpdateStatus)
		}

		createLimiter := middlewares.NewKeyedRateLimiter(time.Minute/5, 5)
		api.POST("/payments/create-fake", createLimiter.PerUser(), paymentCtrl.CreateFakePayment)
	}

	return r
}
