package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/services"
	"github.com/sugoph/sugo-backend/utils"
)

// CartController backs the client-side cart checks: the composition guard
// and the delivery fee quote. Both are also re-run server-side at checkout.
type CartController struct {
	DB       *gorm.DB
	Fees     *services.FeeCalculator
	Resolver *services.VendorResolver
}

func NewCartController(db *gorm.DB, cfg services.SettlementConfig, fees *services.FeeCalculator) *CartController {
	return &CartController{
		DB:       db,
		Fees:     fees,
		Resolver: services.NewVendorResolver(db, cfg),
	}
}

type cartLineReq struct {
	VendorSlug     string `json:"vendor_slug"`
	RestaurantName string `json:"restaurant_name"`
}

// ValidateCartAdd -> may this item join the cart? Responds 200 either way;
// the verdict is in the payload.
func (cc *CartController) ValidateCartAdd(c *gin.Context) {
	type reqBody struct {
		Cart []cartLineReq `json:"cart"`
		Item cartLineReq   `json:"item" binding:"required"`
	}
	var req reqBody
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	resolve := func(line cartLineReq) services.CartVendorRef {
		res := cc.Resolver.Resolve(line.VendorSlug, line.RestaurantName)
		return services.CartVendorRef{VendorSlug: res.Slug, IsGrocery: res.IsGrocery}
	}

	cart := make([]services.CartVendorRef, 0, len(req.Cart))
	for _, line := range req.Cart {
		cart = append(cart, resolve(line))
	}

	ok, reason := services.CanAddToCart(cart, resolve(req.Item))
	utils.RespondJSON(c, http.StatusOK, "Cart validated", gin.H{
		"ok":     ok,
		"reason": reason,
	})
}

// GetDeliveryFee -> fee tier for a road distance (?distance_km=). Distances
// past the service ceiling are refused here, at the calling layer.
func (cc *CartController) GetDeliveryFee(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Query("distance_km"), 64)
	if err != nil || distance < 0 {
		utils.RespondError(c, http.StatusBadRequest, &CustomError{"distance_km must be a non-negative number"})
		return
	}

	if !cc.Fees.WithinServiceArea(distance) {
		utils.RespondError(c, http.StatusUnprocessableEntity, ErrOutsideService)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Delivery fee", cc.Fees.Compute(distance))
}
