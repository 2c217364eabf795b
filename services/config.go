package services

import (
	"time"
)

// SettlementConfig carries the platform-wide settlement knobs. It is built
// once at boot and injected into the engines; nothing in this package reads
// ambient globals.
type SettlementConfig struct {
	DefaultFoodCommissionPct     float64
	DefaultDeliveryCommissionPct float64
	// Delivered orders younger than this are excluded from restaurant
	// pending earnings so fresh deliveries can still be corrected.
	PayoutGrace time.Duration
	// Customer self-service edit/cancel window after order creation.
	EditWindow time.Duration
	// Loyalty points awarded once per delivered order.
	LoyaltyPointsPerDelivery int
	// Local business day boundary for "today" earnings.
	Location *time.Location
}

func DefaultSettlementConfig() SettlementConfig {
	loc, err := time.LoadLocation("Asia/Manila")
	if err != nil {
		loc = time.FixedZone("PHT", 8*60*60)
	}
	return SettlementConfig{
		DefaultFoodCommissionPct:     30,
		DefaultDeliveryCommissionPct: 30,
		PayoutGrace:                  2 * time.Hour,
		EditWindow:                   5 * time.Minute,
		LoyaltyPointsPerDelivery:     10,
		Location:                     loc,
	}
}

// FoodCommissionPctFor returns the effective food commission, falling back
// to the platform default when the vendor left it unset.
func (c SettlementConfig) FoodCommissionPctFor(pct *float64) float64 {
	if pct == nil {
		return c.DefaultFoodCommissionPct
	}
	if *pct < 0 {
		return 0
	}
	return *pct
}

// DeliveryCommissionPctFor mirrors FoodCommissionPctFor for the delivery fee.
func (c SettlementConfig) DeliveryCommissionPctFor(pct *float64) float64 {
	if pct == nil {
		return c.DefaultDeliveryCommissionPct
	}
	if *pct < 0 {
		return 0
	}
	return *pct
}
