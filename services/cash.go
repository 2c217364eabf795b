package services

import (
	"math"

	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/models"
)

// Amounts closer than this are treated as matching (centavo tolerance).
const CashVarianceThreshold = 0.01

// CashReconciliation is a derived view over the two independently-set cash
// fields on an order. It holds no state of its own.
type CashReconciliation struct {
	OrderID        uint     `json:"order_id"`
	Received       *float64 `json:"cash_received_by_driver,omitempty"`
	TurnedIn       *float64 `json:"cash_turned_in,omitempty"`
	Variance       float64  `json:"variance"`
	HasVariance    bool     `json:"has_variance"`
	VarianceReason string   `json:"variance_reason,omitempty"`
}

// ReconcileCash derives the variance view for one order. A variance exists
// only once both amounts are reported and they differ beyond the threshold.
func ReconcileCash(order models.Order) CashReconciliation {
	rec := CashReconciliation{
		OrderID:        order.ID,
		Received:       order.CashReceivedByDriver,
		TurnedIn:       order.CashTurnedIn,
		VarianceReason: order.VarianceReason,
	}
	if order.CashReceivedByDriver != nil && order.CashTurnedIn != nil {
		diff := *order.CashReceivedByDriver - *order.CashTurnedIn
		rec.Variance = diff
		rec.HasVariance = math.Abs(diff) > CashVarianceThreshold
	}
	return rec
}

type CashVarianceReport struct {
	Count  int                  `json:"count"`
	Orders []CashReconciliation `json:"orders"`
}

// CashVariances lists every order whose reported and turned-in cash
// disagree, for staff review.
func CashVariances(db *gorm.DB) (*CashVarianceReport, error) {
	var orders []models.Order
	err := db.Where("cash_received_by_driver IS NOT NULL AND cash_turned_in IS NOT NULL").
		Order("updated_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	report := &CashVarianceReport{Orders: []CashReconciliation{}}
	for _, order := range orders {
		rec := ReconcileCash(order)
		if rec.HasVariance {
			report.Orders = append(report.Orders, rec)
		}
	}
	report.Count = len(report.Orders)
	return report, nil
}
