package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/controllers"
	"github.com/sugoph/sugo-backend/middlewares"
	"github.com/sugoph/sugo-backend/services"
)

// SetupRouter wires every endpoint. The settlement config, fee table and
// notifier are built once at boot and injected here.
func SetupRouter(db *gorm.DB, cfg services.SettlementConfig, fees *services.FeeCalculator, notifier *services.VendorNotifier) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	driverCtrl := controllers.NewDriverController(db)
	orderCtrl := controllers.NewOrderController(db, cfg, fees, notifier)
	cartCtrl := controllers.NewCartController(db, cfg, fees)
	cashCtrl := controllers.NewCashController(db)
	earningsCtrl := controllers.NewEarningsController(db, cfg)
	payoutCtrl := controllers.NewPayoutController(db)
	restaurantCtrl := controllers.NewRestaurantController(db)
	customerCtrl := controllers.NewCustomerController(db)
	notificationCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter for login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
		public.POST("/driver/login", driverCtrl.DriverLogin)
	}

	// Customer-facing, no auth: browsing, cart checks and checkout
	r.GET("/restaurants", restaurantCtrl.GetAllRestaurants)
	r.GET("/restaurants/:slug", restaurantCtrl.GetRestaurantBySlug)
	r.POST("/cart/validate", cartCtrl.ValidateCartAdd)
	r.GET("/delivery-fee", cartCtrl.GetDeliveryFee)

	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	// Self-service edit/cancel, authorized by phone match within the window
	r.PATCH("/orders/:order_id/edit", orderCtrl.EditOrder)
	r.POST("/orders/:order_id/cancel", orderCtrl.CancelOrder)

	// ----------------------------------------------------------------
	//                      DRIVER ROUTES
	// ----------------------------------------------------------------
	driver := r.Group("/driver")
	driver.Use(middlewares.AuthMiddleware())
	{
		driver.GET("/orders", orderCtrl.GetDriverOrders)
		driver.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
		driver.PATCH("/orders/:order_id/cash-received", cashCtrl.ReportCashReceived)
		driver.GET("/earnings", earningsCtrl.GetOwnEarnings)
	}

	// ----------------------------------------------------------------
	//                      STAFF ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/admin")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", userCtrl.GetProfile)

	// ORDERS
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	auth.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	auth.PATCH("/orders/:order_id/payment-status", orderCtrl.UpdatePaymentStatus)
	auth.PATCH("/orders/:order_id/cash-turned-in", cashCtrl.RecordCashTurnedIn)
	auth.GET("/orders/:order_id/cash", cashCtrl.GetOrderReconciliation)

	// DRIVERS
	auth.POST("/drivers", driverCtrl.CreateDriver)
	auth.GET("/drivers", driverCtrl.GetAllDrivers)
	auth.PATCH("/drivers/:driver_id", driverCtrl.UpdateDriver)
	auth.GET("/drivers/:driver_id/earnings", earningsCtrl.GetDriverEarnings)

	// RESTAURANTS
	auth.POST("/restaurants", restaurantCtrl.UpsertRestaurant)
	auth.GET("/restaurants", restaurantCtrl.GetAllRestaurants)
	auth.GET("/restaurants/:slug", restaurantCtrl.GetRestaurantBySlug)
	auth.GET("/restaurants/:slug/earnings", earningsCtrl.GetRestaurantEarnings)

	// SETTLEMENT
	auth.GET("/reports/commission", earningsCtrl.GetCommissionIncome)
	auth.GET("/reports/cash-variance", cashCtrl.GetCashVariances)
	auth.POST("/payouts", payoutCtrl.CreatePayout)
	auth.GET("/payouts", payoutCtrl.ListPayouts)
	auth.PATCH("/payouts/:payout_id/pay", payoutCtrl.MarkPayoutPaid)

	// CUSTOMERS & NOTIFICATIONS
	auth.GET("/customers", customerCtrl.GetAllCustomers)
	auth.GET("/customers/:phone", customerCtrl.GetCustomerByPhone)
	auth.GET("/notifications", notificationCtrl.GetAllNotifications)

	return r
}
