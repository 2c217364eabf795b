package models

import (
	"time"
)

// Order statuses. "cancelled" is reachable from any non-terminal status;
// "delivered" and "cancelled" are terminal.
const (
	StatusPending        = "pending"
	StatusConfirmed      = "confirmed"
	StatusPreparing      = "preparing"
	StatusReady          = "ready"
	StatusAssigned       = "assigned"
	StatusPicked         = "picked"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusCancelled      = "cancelled"
)

// ValidStatuses is the whitelist for transition targets.
var ValidStatuses = []string{
	StatusPending, StatusConfirmed, StatusPreparing, StatusReady,
	StatusAssigned, StatusPicked, StatusOutForDelivery,
	StatusDelivered, StatusCancelled,
}

func IsValidStatus(status string) bool {
	for _, s := range ValidStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsTerminalStatus(status string) bool {
	return status == StatusDelivered || status == StatusCancelled
}

type Order struct {
	ID              uint     `gorm:"primaryKey" json:"id"`
	CustomerName    string   `gorm:"type:varchar(255);not null" json:"customer_name"`
	CustomerPhone   string   `gorm:"type:varchar(32);not null;index" json:"customer_phone"`
	DeliveryAddress string   `gorm:"type:text" json:"delivery_address"`
	Landmark        string   `gorm:"type:varchar(255);not null" json:"landmark"`
	Notes           string   `gorm:"type:text" json:"notes"`
	Lat             *float64 `json:"lat,omitempty"`
	Lng             *float64 `json:"lng,omitempty"`
	ZoneName        string   `gorm:"type:varchar(50)" json:"zone_name"`
	DistanceKm      float64  `gorm:"type:decimal(6,2);default:0" json:"distance_km"`

	Subtotal    float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"subtotal"`
	DeliveryFee float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"delivery_fee"`
	Tip         float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"tip"`
	PriorityFee float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"priority_fee"`
	Discount    float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"discount"`
	Total       float64 `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`

	TimeWindow   string     `gorm:"type:varchar(20);not null;default:'asap'" json:"time_window"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`

	Status   string  `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	DriverID *uint   `gorm:"index" json:"driver_id,omitempty"`
	Driver   *Driver `gorm:"foreignKey:DriverID" json:"driver,omitempty"`

	PaymentMethod string `gorm:"type:varchar(20);not null;default:'cash'" json:"payment_method"`
	PaymentStatus string `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`

	// Cash reconciliation: two independently-settable amounts, compared by
	// the reconciliation service. Nil means "not reported yet".
	CashReceivedByDriver *float64 `gorm:"type:decimal(10,2)" json:"cash_received_by_driver,omitempty"`
	CashTurnedIn         *float64 `gorm:"type:decimal(10,2)" json:"cash_turned_in,omitempty"`
	VarianceReason       string   `gorm:"type:varchar(255)" json:"variance_reason,omitempty"`

	LoyaltyAwarded bool `gorm:"not null;default:false" json:"loyalty_awarded"`

	// Status timestamps are set once when the matching status is first
	// reached and never revert. CancelCutoffAt is fixed at creation.
	ConfirmedAt    *time.Time `json:"confirmed_at,omitempty"`
	ReadyAt        *time.Time `json:"ready_at,omitempty"`
	AssignedAt     *time.Time `json:"assigned_at,omitempty"`
	PickedAt       *time.Time `json:"picked_at,omitempty"`
	DeliveredAt    *time.Time `json:"delivered_at,omitempty"`
	CancelCutoffAt *time.Time `json:"cancel_cutoff_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}

// StampStatusTime sets the timestamp matching a newly applied status.
// Timestamps already set are left alone so a re-applied status cannot
// rewrite history.
func (o *Order) StampStatusTime(status string, now time.Time) {
	switch status {
	case StatusConfirmed, StatusPreparing:
		if o.ConfirmedAt == nil {
			o.ConfirmedAt = &now
		}
	case StatusReady:
		if o.ReadyAt == nil {
			o.ReadyAt = &now
		}
	case StatusAssigned:
		if o.AssignedAt == nil {
			o.AssignedAt = &now
		}
	case StatusPicked:
		if o.PickedAt == nil {
			o.PickedAt = &now
		}
	case StatusDelivered:
		if o.DeliveredAt == nil {
			o.DeliveredAt = &now
		}
	}
}

// ComputeTotal derives the order total from its monetary parts. Discount is
// clamped to the subtotal and the result never goes below zero.
func (o *Order) ComputeTotal() {
	if o.Discount > o.Subtotal {
		o.Discount = o.Subtotal
	}
	total := o.Subtotal - o.Discount + o.DeliveryFee + o.Tip + o.PriorityFee
	if total < 0 {
		total = 0
	}
	o.Total = total
}
