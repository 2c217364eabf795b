package models

import (
	"time"
)

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order field from JSON to avoid recursive nesting
	Order Order `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	RestaurantName string `gorm:"type:varchar(255);not null" json:"restaurant_name"`
	VendorSlug     string `gorm:"type:varchar(255);not null;index" json:"vendor_slug"`
	Name           string `gorm:"type:varchar(255);not null" json:"name"`
	PriceDisplay   string `gorm:"type:varchar(50)" json:"price_display"`
	Price          float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	// Cost is the vendor's net share after food commission, frozen at
	// order-creation/edit time. Later commission changes never touch it.
	Cost     float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"cost"`
	Quantity int     `gorm:"not null;default:1" json:"quantity"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
