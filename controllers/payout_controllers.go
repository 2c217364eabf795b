package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/models"
	"github.com/sugoph/sugo-backend/utils"
)

type PayoutController struct {
	DB *gorm.DB
}

func NewPayoutController(db *gorm.DB) *PayoutController {
	return &PayoutController{DB: db}
}

// CreatePayout -> staff marks a set of orders as settled for one recipient.
// Once created as paid, the record is append-only.
func (pc *PayoutController) CreatePayout(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type reqBody struct {
		RecipientType string  `json:"recipient_type" binding:"required,oneof=driver restaurant"`
		RecipientKey  string  `json:"recipient_key" binding:"required"`
		Amount        float64 `json:"amount" binding:"required,gt=0"`
		Method        string  `json:"method"`
		Notes         string  `json:"notes"`
		OrderIDs      []uint  `json:"order_ids" binding:"required,min=1"`
		MarkPaid      bool    `json:"mark_paid"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	now := time.Now()
	payout := models.Payout{
		Reference:     uuid.NewString(),
		RecipientType: req.RecipientType,
		RecipientKey:  req.RecipientKey,
		Amount:        utils.Round2(req.Amount),
		Status:        models.PayoutStatusPending,
		Method:        req.Method,
		Notes:         req.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.MarkPaid {
		payout.Status = models.PayoutStatusPaid
		payout.PaidAt = &now
	}

	tx := pc.DB.Begin()
	if err := tx.Create(&payout).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	links := make([]models.PayoutOrder, 0, len(req.OrderIDs))
	for _, orderID := range req.OrderIDs {
		links = append(links, models.PayoutOrder{PayoutID: payout.ID, OrderID: orderID})
	}
	if err := tx.Create(&links).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}

	payout.Orders = links
	utils.InfoLogger.Printf("Payout %s created for %s %s: %s",
		payout.Reference, payout.RecipientType, payout.RecipientKey,
		utils.FormatCurrencyPHP(payout.Amount))
	utils.RespondJSON(c, http.StatusCreated, "Payout created", payout)
}

// ListPayouts -> optionally filtered by recipient.
func (pc *PayoutController) ListPayouts(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	query := pc.DB.Preload("Orders").Order("created_at desc")
	if rt := c.Query("recipient_type"); rt != "" {
		query = query.Where("recipient_type = ?", rt)
	}
	if rk := c.Query("recipient_key"); rk != "" {
		query = query.Where("recipient_key = ?", rk)
	}

	var payouts []models.Payout
	if err := query.Find(&payouts).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of payouts", payouts)
}

// MarkPayoutPaid -> pending payout becomes paid and immutable.
func (pc *PayoutController) MarkPayoutPaid(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	var payout models.Payout
	if err := pc.DB.First(&payout, c.Param("payout_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if payout.Status == models.PayoutStatusPaid {
		utils.RespondError(c, http.StatusConflict, &CustomError{"payout is already paid"})
		return
	}

	now := time.Now()
	payout.Status = models.PayoutStatusPaid
	payout.PaidAt = &now
	payout.UpdatedAt = now
	if err := pc.DB.Save(&payout).Error; err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payout marked paid", payout)
}
