package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/services"
	"github.com/sugoph/sugo-backend/utils"
)

// EarningsController serves the settlement engine's read-only aggregations:
// platform commission income, driver earnings and restaurant earnings.
type EarningsController struct {
	DB     *gorm.DB
	Engine *services.SettlementEngine
}

func NewEarningsController(db *gorm.DB, cfg services.SettlementConfig) *EarningsController {
	return &EarningsController{
		DB:     db,
		Engine: services.NewSettlementEngine(db, cfg),
	}
}

// GetCommissionIncome -> per-restaurant commission rows since a given time
// (?since=RFC3339); defaults to the start of the current month.
func (ec *EarningsController) GetCommissionIncome(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	loc := ec.Engine.Cfg.Location
	now := time.Now().In(loc)
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	if raw := c.Query("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		since = parsed
	}

	report, err := ec.Engine.CommissionIncome(since)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Commission income", report)
}

// GetDriverEarnings -> staff view of any driver's earnings.
func (ec *EarningsController) GetDriverEarnings(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	driverID, err := strconv.ParseUint(c.Param("driver_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	earnings, err := ec.Engine.GetDriverEarnings(uint(driverID), time.Now())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Driver earnings", earnings)
}

// GetOwnEarnings -> the authenticated driver's own earnings.
func (ec *EarningsController) GetOwnEarnings(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "driver" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}
	actorID, _ := c.Get("actor_id")
	driverID, _ := actorID.(uint)

	earnings, err := ec.Engine.GetDriverEarnings(driverID, time.Now())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Driver earnings", earnings)
}

// GetRestaurantEarnings -> pending and settled totals for one vendor.
// A vendor with no delivered orders gets zeros, not an error.
func (ec *EarningsController) GetRestaurantEarnings(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	earnings, err := ec.Engine.GetRestaurantEarnings(c.Param("slug"), time.Now())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant earnings", earnings)
}
