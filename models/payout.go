package models

import "time"

const (
	PayoutRecipientDriver     = "driver"
	PayoutRecipientRestaurant = "restaurant"

	PayoutStatusPending = "pending"
	PayoutStatusPaid    = "paid"
)

// Payout is an append-only settlement record: once paid, its amount and the
// set of covered orders are immutable.
type Payout struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Reference     string `gorm:"type:varchar(64);uniqueIndex;not null" json:"reference"`
	RecipientType string `gorm:"type:varchar(20);not null;index" json:"recipient_type"`
	// Driver id (as string) or vendor slug, depending on RecipientType.
	RecipientKey string  `gorm:"type:varchar(255);not null;index" json:"recipient_key"`
	Amount       float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status       string  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Method       string  `gorm:"type:varchar(20)" json:"method,omitempty"`
	Notes        string  `gorm:"type:varchar(255)" json:"notes,omitempty"`

	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`

	Orders []PayoutOrder `gorm:"foreignKey:PayoutID" json:"orders"`
}

// PayoutOrder links a payout to one covered order.
type PayoutOrder struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	PayoutID uint `gorm:"not null;index" json:"payout_id"`
	OrderID  uint `gorm:"not null;index" json:"order_id"`
}
