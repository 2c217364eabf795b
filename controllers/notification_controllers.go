package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/models"
	"github.com/sugoph/sugo-backend/utils"
)

// NotificationController lists the vendor notification audit trail.
type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetAllNotifications -> staff view, optionally by vendor slug.
func (nc *NotificationController) GetAllNotifications(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	query := nc.DB.Order("created_at desc").Limit(200)
	if slug := c.Query("vendor_slug"); slug != "" {
		query = query.Where("vendor_slug = ?", slug)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of notifications", notifications)
}
