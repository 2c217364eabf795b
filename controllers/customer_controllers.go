package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/models"
	"github.com/sugoph/sugo-backend/utils"
)

// CustomerController serves the loyalty records accrued on delivery.
type CustomerController struct {
	DB *gorm.DB
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{DB: db}
}

// GetAllCustomers -> loyalty list for staff.
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var customers []models.Customer
	if err := cc.DB.Order("loyalty_points desc").Find(&customers).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

// GetCustomerByPhone -> one loyalty record.
func (cc *CustomerController) GetCustomerByPhone(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	phone := utils.NormalizePhone(c.Param("phone"))
	var customer models.Customer
	if err := cc.DB.Where("phone = ?", phone).First(&customer).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}
