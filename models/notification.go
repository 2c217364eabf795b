package models

import (
	"time"
)

// Notification is the audit trail of vendor notifications dispatched on
// order creation. Delivery is best-effort; Sent records the outcome.
type Notification struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	VendorSlug string    `gorm:"type:varchar(255);index" json:"vendor_slug"`
	OrderID    *uint     `gorm:"index" json:"order_id,omitempty"`
	Title      string    `gorm:"type:varchar(100)" json:"title"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	Priority   string    `gorm:"type:varchar(20);default:'normal'" json:"priority"`
	Sent       bool      `gorm:"not null;default:false" json:"sent"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}
