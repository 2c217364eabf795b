package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/models"
	"github.com/sugoph/sugo-backend/services"
	"github.com/sugoph/sugo-backend/utils"
)

// CashController exposes the two cash-handling fields and the variance
// report. The fields are deliberately free of workflow rules: drivers and
// staff report amounts independently and reconciliation is derived.
type CashController struct {
	DB *gorm.DB
}

func NewCashController(db *gorm.DB) *CashController {
	return &CashController{DB: db}
}

// ReportCashReceived -> driver records the cash collected on delivery.
func (cc *CashController) ReportCashReceived(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "driver" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	// Pointer so a reported zero (fully online-paid order) passes "required".
	type reqBody struct {
		Amount *float64 `json:"amount" binding:"required,gte=0"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := cc.DB.First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return
	}

	actorID, _ := c.Get("actor_id")
	driverID, _ := actorID.(uint)
	if order.DriverID == nil || *order.DriverID != driverID {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return
	}

	err := cc.DB.Model(&order).Updates(map[string]interface{}{
		"cash_received_by_driver": *req.Amount,
		"updated_at":              time.Now(),
	}).Error
	if err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}

	order.CashReceivedByDriver = req.Amount
	utils.RespondJSON(c, http.StatusOK, "Cash received recorded", services.ReconcileCash(order))
}

// RecordCashTurnedIn -> staff records the hub drop-off amount, with an
// optional reason when it does not match.
func (cc *CashController) RecordCashTurnedIn(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type reqBody struct {
		Amount         *float64 `json:"amount" binding:"required,gte=0"`
		VarianceReason string   `json:"variance_reason"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := cc.DB.First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return
	}

	updates := map[string]interface{}{
		"cash_turned_in": *req.Amount,
		"updated_at":     time.Now(),
	}
	if req.VarianceReason != "" {
		updates["variance_reason"] = req.VarianceReason
	}
	if err := cc.DB.Model(&order).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}

	order.CashTurnedIn = req.Amount
	if req.VarianceReason != "" {
		order.VarianceReason = req.VarianceReason
	}
	utils.RespondJSON(c, http.StatusOK, "Cash turn-in recorded", services.ReconcileCash(order))
}

// GetCashVariances -> aggregate list of orders with mismatched cash.
func (cc *CashController) GetCashVariances(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	report, err := services.CashVariances(cc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cash variance report", report)
}

// GetOrderReconciliation -> the derived cash view for a single order.
func (cc *CashController) GetOrderReconciliation(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var order models.Order
	if err := cc.DB.First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cash reconciliation", services.ReconcileCash(order))
}
