package services

import (
	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/models"
)

// VendorResolution distinguishes a real config lookup from a best-guess
// fallback. Unresolved vendors settle at the platform default commission
// under a slug derived from their display name.
type VendorResolution struct {
	Slug                  string
	Name                  string
	Resolved              bool
	IsGrocery             bool
	FoodCommissionPct     float64
	DeliveryCommissionPct float64
	TelegramChatID        int64
	Config                *models.RestaurantConfig
}

type VendorResolver struct {
	DB  *gorm.DB
	Cfg SettlementConfig
}

func NewVendorResolver(db *gorm.DB, cfg SettlementConfig) *VendorResolver {
	return &VendorResolver{DB: db, Cfg: cfg}
}

// DeriveSlug turns a display name into the slug form used as vendor key.
func DeriveSlug(name string) string {
	return slug.Make(name)
}

// Resolve looks a vendor up by slug, falling back to a slug derived from
// the display name. It never fails: an unknown vendor comes back with
// Resolved=false and default commissions.
func (r *VendorResolver) Resolve(vendorSlug, displayName string) VendorResolution {
	key := vendorSlug
	if key == "" {
		key = DeriveSlug(displayName)
	}

	var cfg models.RestaurantConfig
	err := r.DB.Where("slug = ?", key).First(&cfg).Error
	if err != nil && key != DeriveSlug(displayName) && displayName != "" {
		key = DeriveSlug(displayName)
		err = r.DB.Where("slug = ?", key).First(&cfg).Error
	}
	if err != nil {
		return VendorResolution{
			Slug:                  key,
			Name:                  displayName,
			Resolved:              false,
			FoodCommissionPct:     r.Cfg.DefaultFoodCommissionPct,
			DeliveryCommissionPct: r.Cfg.DefaultDeliveryCommissionPct,
		}
	}

	return VendorResolution{
		Slug:                  cfg.Slug,
		Name:                  cfg.Name,
		Resolved:              true,
		IsGrocery:             cfg.IsGrocery,
		FoodCommissionPct:     r.Cfg.FoodCommissionPctFor(cfg.FoodCommissionPct),
		DeliveryCommissionPct: r.Cfg.DeliveryCommissionPctFor(cfg.DeliveryCommissionPct),
		TelegramChatID:        cfg.TelegramChatID,
		Config:                &cfg,
	}
}

// CostFromPrice derives the vendor's net share from a commission-inclusive
// display price: price = cost * (1 + pct/100). The result is frozen onto the
// order item at creation/edit time.
func CostFromPrice(price, foodCommissionPct float64) float64 {
	if price <= 0 {
		return 0
	}
	cost := price / (1 + foodCommissionPct/100)
	if cost > price {
		cost = price
	}
	return cost
}
