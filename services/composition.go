package services

import (
	"errors"
)

// ErrCompositionViolation is the fixed user-facing rule message shown both
// by the cart endpoint and at order submission.
var ErrCompositionViolation = errors.New("an order can include items from at most one restaurant and one grocery store")

// CartVendorRef is the vendor identity of one cart line, as seen by the
// composition guard.
type CartVendorRef struct {
	VendorSlug string `json:"vendor_slug"`
	IsGrocery  bool   `json:"is_grocery"`
}

// CanAddToCart reports whether an item may join the cart under the
// one-restaurant-plus-one-grocery rule. Adding more items from a vendor
// already in the cart always succeeds.
func CanAddToCart(cart []CartVendorRef, item CartVendorRef) (bool, string) {
	for _, line := range cart {
		if line.VendorSlug == item.VendorSlug {
			return true, ""
		}
	}
	// New vendor: its slot (grocery or restaurant) must be free.
	for _, line := range cart {
		if line.IsGrocery == item.IsGrocery {
			return false, ErrCompositionViolation.Error()
		}
	}
	return true, ""
}

// ValidateComposition is the authoritative re-check at order creation and
// edit time: at most one distinct restaurant and one distinct grocery slug.
func ValidateComposition(lines []CartVendorRef) error {
	restaurants := map[string]struct{}{}
	groceries := map[string]struct{}{}
	for _, line := range lines {
		if line.IsGrocery {
			groceries[line.VendorSlug] = struct{}{}
		} else {
			restaurants[line.VendorSlug] = struct{}{}
		}
	}
	if len(restaurants) > 1 || len(groceries) > 1 {
		return ErrCompositionViolation
	}
	return nil
}
