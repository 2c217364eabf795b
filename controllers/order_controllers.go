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

type OrderController struct {
	DB       *gorm.DB
	Cfg      services.SettlementConfig
	Fees     *services.FeeCalculator
	Resolver *services.VendorResolver
	Notifier *services.VendorNotifier
}

func NewOrderController(db *gorm.DB, cfg services.SettlementConfig, fees *services.FeeCalculator, notifier *services.VendorNotifier) *OrderController {
	return &OrderController{
		DB:       db,
		Cfg:      cfg,
		Fees:     fees,
		Resolver: services.NewVendorResolver(db, cfg),
		Notifier: notifier,
	}
}

type orderItemReq struct {
	RestaurantName string  `json:"restaurant_name" binding:"required"`
	VendorSlug     string  `json:"vendor_slug"`
	Name           string  `json:"name" binding:"required"`
	Price          float64 `json:"price" binding:"required,gt=0"`
	PriceDisplay   string  `json:"price_display"`
	Quantity       int     `json:"quantity"`
}

// buildItems resolves each line's vendor, freezes the commission-adjusted
// cost from current config and re-checks the composition invariant.
func (oc *OrderController) buildItems(reqs []orderItemReq) ([]models.OrderItem, float64, error) {
	if len(reqs) == 0 {
		return nil, 0, ErrEmptyItems
	}

	var refs []services.CartVendorRef
	items := make([]models.OrderItem, 0, len(reqs))
	var subtotal float64

	for _, req := range reqs {
		qty := req.Quantity
		if qty < 1 {
			qty = 1
		}
		res := oc.Resolver.Resolve(req.VendorSlug, req.RestaurantName)
		refs = append(refs, services.CartVendorRef{VendorSlug: res.Slug, IsGrocery: res.IsGrocery})

		items = append(items, models.OrderItem{
			RestaurantName: req.RestaurantName,
			VendorSlug:     res.Slug,
			Name:           req.Name,
			Price:          req.Price,
			PriceDisplay:   req.PriceDisplay,
			Cost:           services.CostFromPrice(req.Price, res.FoodCommissionPct),
			Quantity:       qty,
		})
		subtotal += req.Price * float64(qty)
	}

	if err := services.ValidateComposition(refs); err != nil {
		return nil, 0, err
	}
	return items, subtotal, nil
}

// CreateOrder -> checkout endpoint, order starts in "pending".
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type reqBody struct {
		CustomerName    string         `json:"customer_name" binding:"required"`
		CustomerPhone   string         `json:"customer_phone" binding:"required"`
		DeliveryAddress string         `json:"delivery_address"`
		Landmark        string         `json:"landmark" binding:"required"`
		Notes           string         `json:"notes"`
		Lat             *float64       `json:"lat"`
		Lng             *float64       `json:"lng"`
		DistanceKm      float64        `json:"distance_km" binding:"omitempty,gte=0"`
		Tip             float64        `json:"tip" binding:"omitempty,gte=0"`
		PriorityFee     float64        `json:"priority_fee" binding:"omitempty,gte=0"`
		Discount        float64        `json:"discount" binding:"omitempty,gte=0"`
		PaymentMethod   string         `json:"payment_method"`
		TimeWindow      string         `json:"time_window"`
		ScheduledFor    *time.Time     `json:"scheduled_for"`
		Items           []orderItemReq `json:"items"`
	}

	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !oc.Fees.WithinServiceArea(req.DistanceKm) {
		utils.RespondError(c, http.StatusUnprocessableEntity, ErrOutsideService)
		return
	}

	items, subtotal, err := oc.buildItems(req.Items)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	fee := oc.Fees.Compute(req.DistanceKm)

	now := time.Now()
	cutoff := now.Add(oc.Cfg.EditWindow)

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}
	timeWindow := req.TimeWindow
	if timeWindow == "" {
		timeWindow = "asap"
	}

	order := models.Order{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DeliveryAddress: req.DeliveryAddress,
		Landmark:        req.Landmark,
		Notes:           req.Notes,
		Lat:             req.Lat,
		Lng:             req.Lng,
		DistanceKm:      req.DistanceKm,
		ZoneName:        fee.ZoneName,
		Subtotal:        subtotal,
		DeliveryFee:     fee.FeePhp,
		Tip:             req.Tip,
		PriorityFee:     req.PriorityFee,
		Discount:        req.Discount,
		TimeWindow:      timeWindow,
		ScheduledFor:    req.ScheduledFor,
		Status:          models.StatusPending,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   "pending",
		CancelCutoffAt:  &cutoff,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	order.ComputeTotal()

	// Order row and its items commit or fail as one unit.
	tx := oc.DB.Begin()
	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	for i := range items {
		items[i].OrderID = order.ID
		items[i].CreatedAt = now
		items[i].UpdatedAt = now
	}
	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}

	// Vendor notification is fire-and-forget: it must never fail checkout.
	if oc.Notifier != nil {
		go oc.Notifier.NotifyNewOrder(order, items, oc.Resolver)
	}

	order.Items = items
	utils.RespondJSON(c, http.StatusCreated, "Order created", gin.H{
		"order_id":   order.ID,
		"created_at": order.CreatedAt,
		"order":      order,
	})
}

// GetAllOrders -> staff list, optionally filtered by status.
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	query := oc.DB.Preload("Items").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail of one order with items.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// GetDriverOrders -> the calling driver's assigned, undelivered orders.
func (oc *OrderController) GetDriverOrders(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "driver" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}
	driverID, _ := c.Get("actor_id")

	var orders []models.Order
	err := oc.DB.Preload("Items").
		Where("driver_id = ? AND status NOT IN ?", driverID,
			[]string{models.StatusDelivered, models.StatusCancelled}).
		Order("assigned_at asc").
		Find(&orders).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Assigned orders", orders)
}

// UpdateOrderStatus applies a status transition. Staff may move any order to
// any valid status (mistakes get corrected by setting the true status
// directly); drivers only touch orders assigned to them. The update is
// conditional on the status read in this request, so two concurrent callers
// cannot both win.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	role, _ := c.Get("role")
	if role != "staff" && role != "driver" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type reqBody struct {
		Status   string `json:"status" binding:"required"`
		DriverID *uint  `json:"driver_id"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !models.IsValidStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, ErrInvalidStatus)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return
	}

	if role == "driver" {
		actorID, _ := c.Get("actor_id")
		driverID, _ := actorID.(uint)
		// Masked as not-found so drivers cannot probe foreign orders.
		if order.DriverID == nil || *order.DriverID != driverID {
			utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
			return
		}
	}

	if models.IsTerminalStatus(order.Status) {
		utils.RespondError(c, http.StatusUnprocessableEntity, ErrOrderTerminal)
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     req.Status,
		"updated_at": now,
	}
	switch req.Status {
	case models.StatusConfirmed, models.StatusPreparing:
		if order.ConfirmedAt == nil {
			updates["confirmed_at"] = now
		}
	case models.StatusReady:
		if order.ReadyAt == nil {
			updates["ready_at"] = now
		}
	case models.StatusAssigned:
		if order.AssignedAt == nil {
			updates["assigned_at"] = now
		}
	case models.StatusPicked:
		if order.PickedAt == nil {
			updates["picked_at"] = now
		}
	case models.StatusDelivered:
		if order.DeliveredAt == nil {
			updates["delivered_at"] = now
		}
	}
	if role == "staff" && req.Status == models.StatusAssigned && req.DriverID != nil {
		updates["driver_id"] = *req.DriverID
	}

	tx := oc.DB.Begin()
	result := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Updates(updates)
	if result.Error != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusServiceUnavailable, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		utils.RespondError(c, http.StatusConflict, ErrStatusConflict)
		return
	}

	if req.Status == models.StatusDelivered {
		if err := services.AwardLoyalty(tx, &order, oc.Cfg.LoyaltyPointsPerDelivery); err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusServiceUnavailable, err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}

	utils.InfoLogger.Printf("Order #%d -> %s by %v", order.ID, req.Status, role)
	utils.RespondJSON(c, http.StatusOK, "Order status updated", gin.H{
		"order_id": order.ID,
		"status":   req.Status,
	})
}

// authorizeCustomerEdit loads the order and verifies both the phone match
// and the edit window. Phone mismatch reads as not-found.
func (oc *OrderController) authorizeCustomerEdit(c *gin.Context, phone string) (*models.Order, bool) {
	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, c.Param("order_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return nil, false
	}

	if !utils.PhoneMatches(order.CustomerPhone, phone) {
		utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		return nil, false
	}

	if order.Status != models.StatusPending && order.Status != models.StatusConfirmed {
		utils.RespondError(c, http.StatusUnprocessableEntity, ErrOrderNotEditable)
		return nil, false
	}

	cutoff := order.CreatedAt.Add(oc.Cfg.EditWindow)
	if order.CancelCutoffAt != nil {
		cutoff = *order.CancelCutoffAt
	}
	if time.Now().After(cutoff) {
		utils.RespondError(c, http.StatusUnprocessableEntity, ErrEditWindowExpired)
		return nil, false
	}
	return &order, true
}

// EditOrder -> customer self-service edit within the cancel/edit window.
// Items, when present, fully replace the existing set; each new item's cost
// is re-frozen from current commission config.
func (oc *OrderController) EditOrder(c *gin.Context) {
	type reqBody struct {
		Phone           string         `json:"phone" binding:"required"`
		Notes           *string        `json:"notes"`
		Landmark        *string        `json:"landmark"`
		DeliveryAddress *string        `json:"delivery_address"`
		Discount        *float64       `json:"discount"`
		Items           []orderItemReq `json:"items"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, ok := oc.authorizeCustomerEdit(c, req.Phone)
	if !ok {
		return
	}

	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	if req.Landmark != nil && *req.Landmark != "" {
		order.Landmark = *req.Landmark
	}
	if req.DeliveryAddress != nil {
		order.DeliveryAddress = *req.DeliveryAddress
	}
	if req.Discount != nil && *req.Discount >= 0 {
		order.Discount = *req.Discount
	}

	now := time.Now()
	order.UpdatedAt = now

	tx := oc.DB.Begin()

	var newItems []models.OrderItem
	if req.Items != nil {
		items, subtotal, err := oc.buildItems(req.Items)
		if err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusServiceUnavailable, err)
			return
		}
		for i := range items {
			items[i].OrderID = order.ID
			items[i].CreatedAt = now
			items[i].UpdatedAt = now
		}
		if err := tx.Create(&items).Error; err != nil {
			tx.Rollback()
			utils.RespondError(c, http.StatusServiceUnavailable, err)
			return
		}
		order.Subtotal = subtotal
		newItems = items
	}

	order.ComputeTotal()
	order.Items = nil
	if err := tx.Save(order).Error; err != nil {
		tx.Rollback()
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	if err := tx.Commit().Error; err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}

	if newItems != nil {
		order.Items = newItems
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// CancelOrder -> customer cancel, same authorization and window as edits.
func (oc *OrderController) CancelOrder(c *gin.Context) {
	type reqBody struct {
		Phone string `json:"phone" binding:"required"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, ok := oc.authorizeCustomerEdit(c, req.Phone)
	if !ok {
		return
	}

	result := oc.DB.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Updates(map[string]interface{}{
			"status":     models.StatusCancelled,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusConflict, ErrStatusConflict)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order cancelled", gin.H{
		"order_id": order.ID,
		"status":   models.StatusCancelled,
	})
}

// UpdatePaymentStatus -> staff correction; allowed even on terminal orders.
func (oc *OrderController) UpdatePaymentStatus(c *gin.Context) {
	if role, _ := c.Get("role"); role != "staff" {
		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		return
	}

	type reqBody struct {
		PaymentStatus string `json:"payment_status" binding:"required,oneof=pending paid failed refunded"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var order models.Order
	if err := oc.DB.First(&order, c.Param("order_id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		} else {
			utils.RespondError(c, http.StatusServiceUnavailable, err)
		}
		return
	}

	order.PaymentStatus = req.PaymentStatus
	order.UpdatedAt = time.Now()
	if err := oc.DB.Save(&order).Error; err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Payment status updated", gin.H{
		"order_id":       order.ID,
		"payment_status": order.PaymentStatus,
	})
}
