package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/models"
	"github.com/sugoph/sugo-backend/services"
	"github.com/sugoph/sugo-backend/utils"
)

type RestaurantController struct {
	DB *gorm.DB
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

type restaurantReq struct {
	Slug                  string   `json:"slug"`
	Name                  string   `json:"name" binding:"required"`
	FoodCommissionPct     *float64 `json:"food_commission_pct" binding:"omitempty,gte=0"`
	DeliveryCommissionPct *float64 `json:"delivery_commission_pct" binding:"omitempty,gte=0"`
	IsGrocery             *bool    `json:"is_grocery"`
	PayoutMethod          string   `json:"payout_method"`
	GcashNumber           string   `json:"gcash_number"`
	CryptoAddress         string   `json:"crypto_address"`
	Lat                   *float64 `json:"lat"`
	Lng                   *float64 `json:"lng"`
	LogoURL               string   `json:"logo_url"`
	Description           string   `json:"description"`
	TelegramChatID        int64    `json:"telegram_chat_id"`
}

// UpsertRestaurant -> staff creates or updates a vendor config. The slug is
// derived from the name when not supplied.
func (rc *RestaurantController) UpsertRestaurant(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var req restaurantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	slugKey := req.Slug
	if slugKey == "" {
		slugKey = services.DeriveSlug(req.Name)
	}

	var cfg models.RestaurantConfig
	err := rc.DB.Where("slug = ?", slugKey).First(&cfg).Error
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !isNew {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}

	now := time.Now()
	if isNew {
		cfg = models.RestaurantConfig{Slug: slugKey, CreatedAt: now}
	}
	cfg.Name = req.Name
	cfg.FoodCommissionPct = req.FoodCommissionPct
	cfg.DeliveryCommissionPct = req.DeliveryCommissionPct
	if req.IsGrocery != nil {
		cfg.IsGrocery = *req.IsGrocery
	}
	if req.PayoutMethod != "" {
		cfg.PayoutMethod = req.PayoutMethod
	}
	cfg.GcashNumber = req.GcashNumber
	cfg.CryptoAddress = req.CryptoAddress
	cfg.Lat = req.Lat
	cfg.Lng = req.Lng
	cfg.LogoURL = req.LogoURL
	cfg.Description = req.Description
	cfg.TelegramChatID = req.TelegramChatID
	cfg.UpdatedAt = now

	if err := rc.DB.Save(&cfg).Error; err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}

	code := http.StatusOK
	message := "Restaurant updated"
	if isNew {
		code = http.StatusCreated
		message = "Restaurant created"
	}
	utils.RespondJSON(c, code, message, cfg)
}

// GetAllRestaurants -> vendor list (public, used by the cart UI).
func (rc *RestaurantController) GetAllRestaurants(c *gin.Context) {
	var configs []models.RestaurantConfig
	if err := rc.DB.Order("name asc").Find(&configs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of restaurants", configs)
}

// GetRestaurantBySlug -> one vendor config.
func (rc *RestaurantController) GetRestaurantBySlug(c *gin.Context) {
	var cfg models.RestaurantConfig
	if err := rc.DB.Where("slug = ?", c.Param("slug")).First(&cfg).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", cfg)
}
