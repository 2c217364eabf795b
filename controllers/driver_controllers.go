package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/models"
	"github.com/sugoph/sugo-backend/utils"
)

type DriverController struct {
	DB *gorm.DB
}

func NewDriverController(db *gorm.DB) *DriverController {
	return &DriverController{DB: db}
}

// CreateDriver -> staff registers a courier.
func (dc *DriverController) CreateDriver(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type reqBody struct {
		Name          string `json:"name" binding:"required"`
		Phone         string `json:"phone" binding:"required"`
		Password      string `json:"password" binding:"required,min=6"`
		PayoutMethod  string `json:"payout_method"`
		GcashNumber   string `json:"gcash_number"`
		CryptoAddress string `json:"crypto_address"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	driver := models.Driver{
		Name:          req.Name,
		Phone:         utils.NormalizePhone(req.Phone),
		Password:      string(hashed),
		PayoutMethod:  req.PayoutMethod,
		GcashNumber:   req.GcashNumber,
		CryptoAddress: req.CryptoAddress,
		Active:        true,
	}
	if err := dc.DB.Create(&driver).Error; err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}

	utils.InfoLogger.Printf("New driver registered: %s", driver.Phone)
	utils.RespondJSON(c, http.StatusCreated, "Driver created", gin.H{
		"driver_id": driver.ID,
	})
}

// GetAllDrivers -> staff list.
func (dc *DriverController) GetAllDrivers(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var drivers []models.Driver
	if err := dc.DB.Order("name asc").Find(&drivers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of drivers", drivers)
}

// UpdateDriver -> staff edits payout details or deactivates a courier.
func (dc *DriverController) UpdateDriver(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var driver models.Driver
	if err := dc.DB.First(&driver, c.Param("driver_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	type reqBody struct {
		Name          *string `json:"name"`
		PayoutMethod  *string `json:"payout_method"`
		GcashNumber   *string `json:"gcash_number"`
		CryptoAddress *string `json:"crypto_address"`
		Active        *bool   `json:"active"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		driver.Name = *req.Name
	}
	if req.PayoutMethod != nil {
		driver.PayoutMethod = *req.PayoutMethod
	}
	if req.GcashNumber != nil {
		driver.GcashNumber = *req.GcashNumber
	}
	if req.CryptoAddress != nil {
		driver.CryptoAddress = *req.CryptoAddress
	}
	if req.Active != nil {
		driver.Active = *req.Active
	}
	driver.UpdatedAt = time.Now()

	if err := dc.DB.Save(&driver).Error; err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Driver updated", driver)
}

// DriverLogin -> phone + password, returns a driver-role JWT.
func (dc *DriverController) DriverLogin(c *gin.Context) {
	var input struct {
		Phone    string `json:"phone" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var driver models.Driver
	err := dc.DB.Where("phone = ?", utils.NormalizePhone(input.Phone)).First(&driver).Error
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if !driver.Active {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(driver.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(driver.ID, "driver")
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":     token,
		"driver_id": driver.ID,
		"name":      driver.Name,
	})
}
