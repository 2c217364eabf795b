package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanAddToCart(t *testing.T) {
	restoA := CartVendorRef{VendorSlug: "mang-kanor-grill", IsGrocery: false}
	restoC := CartVendorRef{VendorSlug: "lutong-bahay", IsGrocery: false}
	groceryB := CartVendorRef{VendorSlug: "palengke-mart", IsGrocery: true}
	groceryD := CartVendorRef{VendorSlug: "mini-stop-sari-sari", IsGrocery: true}

	t.Run("empty cart accepts anything", func(t *testing.T) {
		ok, reason := CanAddToCart(nil, restoA)
		assert.True(t, ok)
		assert.Empty(t, reason)
	})

	t.Run("same vendor always merges", func(t *testing.T) {
		ok, _ := CanAddToCart([]CartVendorRef{restoA}, restoA)
		assert.True(t, ok)
	})

	t.Run("one restaurant plus one grocery is allowed", func(t *testing.T) {
		cart := []CartVendorRef{restoA, restoA}
		ok, _ := CanAddToCart(cart, groceryB)
		assert.True(t, ok)
	})

	t.Run("second restaurant is rejected", func(t *testing.T) {
		cart := []CartVendorRef{restoA, groceryB}
		ok, reason := CanAddToCart(cart, restoC)
		assert.False(t, ok)
		assert.Equal(t, ErrCompositionViolation.Error(), reason)
	})

	t.Run("second grocery is rejected", func(t *testing.T) {
		cart := []CartVendorRef{restoA, groceryB}
		ok, reason := CanAddToCart(cart, groceryD)
		assert.False(t, ok)
		assert.Equal(t, ErrCompositionViolation.Error(), reason)
	})
}

func TestValidateComposition(t *testing.T) {
	assert.NoError(t, ValidateComposition(nil))
	assert.NoError(t, ValidateComposition([]CartVendorRef{
		{VendorSlug: "mang-kanor-grill"},
		{VendorSlug: "mang-kanor-grill"},
		{VendorSlug: "palengke-mart", IsGrocery: true},
	}))

	err := ValidateComposition([]CartVendorRef{
		{VendorSlug: "mang-kanor-grill"},
		{VendorSlug: "lutong-bahay"},
	})
	assert.ErrorIs(t, err, ErrCompositionViolation)
}
