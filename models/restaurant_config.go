package models

import (
	"time"
)

// RestaurantConfig is the per-vendor settlement configuration. Slug is the
// stable key every order item carries; commission percentages fall back to
// the platform default (30%) when unset. An explicit 0 means 0%.
type RestaurantConfig struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Slug string `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Name string `gorm:"type:varchar(255);not null" json:"name"`

	FoodCommissionPct     *float64 `gorm:"type:decimal(5,2)" json:"food_commission_pct,omitempty"`
	DeliveryCommissionPct *float64 `gorm:"type:decimal(5,2)" json:"delivery_commission_pct,omitempty"`

	IsGrocery bool `gorm:"not null;default:false" json:"is_grocery"`

	PayoutMethod  string `gorm:"type:varchar(20);default:'gcash'" json:"payout_method"`
	GcashNumber   string `gorm:"type:varchar(32)" json:"gcash_number,omitempty"`
	CryptoAddress string `gorm:"type:varchar(128)" json:"crypto_address,omitempty"`

	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`

	LogoURL        string `gorm:"type:varchar(255)" json:"logo_url,omitempty"`
	Description    string `gorm:"type:text" json:"description,omitempty"`
	TelegramChatID int64  `json:"telegram_chat_id,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
