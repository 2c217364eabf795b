package models

import "time"

type Driver struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Phone    string `gorm:"type:varchar(32);uniqueIndex;not null" json:"phone"`
	Password string `gorm:"type:varchar(255);not null" json:"-"`

	PayoutMethod  string `gorm:"type:varchar(20);default:'gcash'" json:"payout_method"`
	GcashNumber   string `gorm:"type:varchar(32)" json:"gcash_number,omitempty"`
	CryptoAddress string `gorm:"type:varchar(128)" json:"crypto_address,omitempty"`

	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
