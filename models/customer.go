package models

import (
	"time"
)

// Customer is a loyalty record keyed by phone. Created lazily on first
// delivered order.
type Customer struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Phone         string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"phone"`
	Name          string    `gorm:"type:varchar(255)" json:"name"`
	LoyaltyPoints int       `gorm:"not null;default:0" json:"loyalty_points"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
