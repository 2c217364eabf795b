package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/models"
)

func TestCostFromPrice(t *testing.T) {
	// 30% commission on top of cost: price 100 -> cost 100/1.3
	assert.InDelta(t, 76.92, CostFromPrice(100, 30), 0.01)
	assert.InDelta(t, 100, CostFromPrice(100, 0), 0.001)
	assert.Equal(t, 0.0, CostFromPrice(0, 30))
	assert.Equal(t, 0.0, CostFromPrice(-5, 30))

	// Cost never exceeds price
	assert.LessOrEqual(t, CostFromPrice(49.99, 12.5), 49.99)
}

func TestVendorResolver_Resolve(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.RestaurantConfig{}))

	pct := 20.0
	db.Create(&models.RestaurantConfig{
		Slug:                  "mang-kanor-grill",
		Name:                  "Mang Kanor Grill",
		FoodCommissionPct:     &pct,
		DeliveryCommissionPct: nil,
		IsGrocery:             false,
	})

	resolver := NewVendorResolver(db, DefaultSettlementConfig())

	t.Run("known slug resolves", func(t *testing.T) {
		res := resolver.Resolve("mang-kanor-grill", "")
		assert.True(t, res.Resolved)
		assert.Equal(t, 20.0, res.FoodCommissionPct)
		// Unset delivery commission falls back to the platform default
		assert.Equal(t, 30.0, res.DeliveryCommissionPct)
	})

	t.Run("display name resolves through derived slug", func(t *testing.T) {
		res := resolver.Resolve("", "Mang Kanor Grill")
		assert.True(t, res.Resolved)
		assert.Equal(t, "mang-kanor-grill", res.Slug)
	})

	t.Run("unknown vendor falls back without failing", func(t *testing.T) {
		res := resolver.Resolve("", "Aling Nena Carinderia")
		assert.False(t, res.Resolved)
		assert.Equal(t, "aling-nena-carinderia", res.Slug)
		assert.Equal(t, 30.0, res.FoodCommissionPct)
		assert.Equal(t, 30.0, res.DeliveryCommissionPct)
	})
}
