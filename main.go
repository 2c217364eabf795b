package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/config"
	"github.com/sugoph/sugo-backend/database"
	"github.com/sugoph/sugo-backend/middlewares"
	"github.com/sugoph/sugo-backend/models"
	"github.com/sugoph/sugo-backend/router"
	"github.com/sugoph/sugo-backend/services"
	"github.com/sugoph/sugo-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found: %v", err)
	}

	utils.InitLogger()

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	if err := database.Seed(db); err != nil {
		utils.ErrorLogger.Printf("Seed failed: %v", err)
	}

	// Platform configuration is built once here and injected everywhere;
	// the engines themselves hold no ambient state.
	cfg := services.DefaultSettlementConfig()
	fees := services.NewFeeCalculator(services.DefaultZones(), services.DefaultServiceCeilingKm)
	notifier := services.NewVendorNotifier(db, config.TelegramToken())

	r := router.SetupRouter(db, cfg, fees, notifier)

	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Driver{},
		&models.RestaurantConfig{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payout{},
		&models.PayoutOrder{},
		&models.Notification{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
