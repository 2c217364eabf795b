package services

import (
	"sort"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/models"
	"github.com/sugoph/sugo-backend/utils"
)

// SettlementEngine computes the three derived money streams over delivered
// orders: platform commission income, restaurant earnings and driver
// earnings. All queries are read-only aggregations; payout rows are written
// by the payout controller.
type SettlementEngine struct {
	DB       *gorm.DB
	Cfg      SettlementConfig
	Resolver *VendorResolver
}

func NewSettlementEngine(db *gorm.DB, cfg SettlementConfig) *SettlementEngine {
	return &SettlementEngine{
		DB:       db,
		Cfg:      cfg,
		Resolver: NewVendorResolver(db, cfg),
	}
}

type RestaurantCommission struct {
	Slug               string  `json:"slug"`
	Name               string  `json:"name"`
	Orders             int     `json:"orders"`
	FoodCommission     float64 `json:"food_commission"`
	DeliveryCommission float64 `json:"delivery_commission"`
	Total              float64 `json:"total"`
}

type CommissionReport struct {
	Since         time.Time              `json:"since"`
	ByRestaurant  []RestaurantCommission `json:"by_restaurant"`
	FoodTotal     float64                `json:"food_total"`
	DeliveryTotal float64                `json:"delivery_total"`
	Total         float64                `json:"total"`
}

type DriverEarnings struct {
	DriverID     uint            `json:"driver_id"`
	TodayPhp     float64         `json:"today_php"`
	AllTimePhp   float64         `json:"all_time_php"`
	PendingPhp   float64         `json:"pending_php"`
	PaidTotalPhp float64         `json:"paid_total_php"`
	Payouts      []models.Payout `json:"payouts"`
}

type RestaurantEarnings struct {
	Slug         string          `json:"slug"`
	PendingPhp   float64         `json:"pending_php"`
	PaidTotalPhp float64         `json:"paid_total_php"`
	Payouts      []models.Payout `json:"payouts"`
}

// DriverRecipientKey is the payout recipient key for a driver id.
func DriverRecipientKey(driverID uint) string {
	return strconv.FormatUint(uint64(driverID), 10)
}

// itemCost returns the frozen vendor share for an item. Items created before
// cost-freezing carry zero cost; for those the share is back-derived from the
// display price at the vendor's current food commission.
func (e *SettlementEngine) itemCost(item models.OrderItem, res VendorResolution) float64 {
	if item.Cost > 0 {
		return item.Cost
	}
	return CostFromPrice(item.Price, res.FoodCommissionPct)
}

// resolveCached avoids one config lookup per item on large reports.
func (e *SettlementEngine) resolveCached(cache map[string]VendorResolution, vendorSlug, name string) VendorResolution {
	key := vendorSlug
	if key == "" {
		key = DeriveSlug(name)
	}
	if res, ok := cache[key]; ok {
		return res
	}
	res := e.Resolver.Resolve(vendorSlug, name)
	cache[key] = res
	return res
}

// CommissionIncome aggregates platform income from delivered orders since
// the given time. Food commission comes from the frozen per-item cost;
// delivery commission is recomputed from the current config of the vendor
// that owns the order's first item line.
func (e *SettlementEngine) CommissionIncome(since time.Time) (*CommissionReport, error) {
	var orders []models.Order
	err := e.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id asc")
	}).
		Where("status = ? AND delivered_at >= ?", models.StatusDelivered, since).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	cache := map[string]VendorResolution{}
	type acc struct {
		name     string
		orders   map[uint]struct{}
		food     float64
		delivery float64
	}
	byVendor := map[string]*acc{}

	get := func(res VendorResolution) *acc {
		a, ok := byVendor[res.Slug]
		if !ok {
			a = &acc{name: res.Name, orders: map[uint]struct{}{}}
			if a.name == "" {
				a.name = res.Slug
			}
			byVendor[res.Slug] = a
		}
		return a
	}

	for _, order := range orders {
		for i, item := range order.Items {
			res := e.resolveCached(cache, item.VendorSlug, item.RestaurantName)
			a := get(res)
			a.orders[order.ID] = struct{}{}

			cost := e.itemCost(item, res)
			a.food += (item.Price - cost) * float64(item.Quantity)

			// The first line's vendor is attributed the delivery fee.
			if i == 0 {
				a.delivery += order.DeliveryFee * res.DeliveryCommissionPct / 100
			}
		}
	}

	// Stable row order for reports.
	slugs := make([]string, 0, len(byVendor))
	for slugKey := range byVendor {
		slugs = append(slugs, slugKey)
	}
	sort.Strings(slugs)

	report := &CommissionReport{Since: since}
	for _, slugKey := range slugs {
		a := byVendor[slugKey]
		row := RestaurantCommission{
			Slug:               slugKey,
			Name:               a.name,
			Orders:             len(a.orders),
			FoodCommission:     utils.Round2(a.food),
			DeliveryCommission: utils.Round2(a.delivery),
		}
		row.Total = utils.Round2(a.food + a.delivery)
		report.ByRestaurant = append(report.ByRestaurant, row)
		report.FoodTotal += a.food
		report.DeliveryTotal += a.delivery
	}
	report.FoodTotal = utils.Round2(report.FoodTotal)
	report.DeliveryTotal = utils.Round2(report.DeliveryTotal)
	report.Total = utils.Round2(report.FoodTotal + report.DeliveryTotal)
	return report, nil
}

// paidOrderIDs collects order ids already covered by a paid payout for the
// given recipient, so pending queries never double-count settled orders.
func (e *SettlementEngine) paidOrderIDs(recipientType, recipientKey string) (map[uint]struct{}, error) {
	var ids []uint
	err := e.DB.Model(&models.PayoutOrder{}).
		Joins("JOIN payouts ON payouts.id = payout_orders.payout_id").
		Where("payouts.recipient_type = ? AND payouts.recipient_key = ? AND payouts.status = ?",
			recipientType, recipientKey, models.PayoutStatusPaid).
		Pluck("payout_orders.order_id", &ids).Error
	if err != nil {
		return nil, err
	}
	covered := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		covered[id] = struct{}{}
	}
	return covered, nil
}

// driverShare is the driver's cut of one delivered order: the delivery fee
// net of the attributed vendor's current delivery commission, plus the tip.
func (e *SettlementEngine) driverShare(order models.Order, cache map[string]VendorResolution) float64 {
	pct := e.Cfg.DefaultDeliveryCommissionPct
	if len(order.Items) > 0 {
		first := order.Items[0]
		res := e.resolveCached(cache, first.VendorSlug, first.RestaurantName)
		pct = res.DeliveryCommissionPct
	}
	return (1-pct/100)*order.DeliveryFee + order.Tip
}

// GetDriverEarnings reports a driver's today window (local business day),
// all-time and pending totals plus payout history.
func (e *SettlementEngine) GetDriverEarnings(driverID uint, now time.Time) (*DriverEarnings, error) {
	var orders []models.Order
	err := e.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id asc")
	}).
		Where("driver_id = ? AND status = ?", driverID, models.StatusDelivered).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	recipientKey := DriverRecipientKey(driverID)
	covered, err := e.paidOrderIDs(models.PayoutRecipientDriver, recipientKey)
	if err != nil {
		return nil, err
	}

	local := now.In(e.Cfg.Location)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, e.Cfg.Location)

	cache := map[string]VendorResolution{}
	earnings := &DriverEarnings{DriverID: driverID}
	var today, allTime, pending float64
	for _, order := range orders {
		share := e.driverShare(order, cache)
		allTime += share
		if order.DeliveredAt != nil && !order.DeliveredAt.Before(midnight) {
			today += share
		}
		if _, ok := covered[order.ID]; !ok {
			pending += share
		}
	}
	earnings.TodayPhp = utils.Round2(today)
	earnings.AllTimePhp = utils.Round2(allTime)
	earnings.PendingPhp = utils.Round2(pending)

	paidTotal, payouts, err := e.payoutHistory(models.PayoutRecipientDriver, recipientKey)
	if err != nil {
		return nil, err
	}
	earnings.PaidTotalPhp = paidTotal
	earnings.Payouts = payouts
	return earnings, nil
}

// GetRestaurantEarnings reports a vendor's pending and settled totals.
// Pending covers delivered orders older than the payout grace period that
// no paid payout has claimed yet. A vendor with no delivered orders gets a
// zero-filled result, not an error.
func (e *SettlementEngine) GetRestaurantEarnings(slug string, now time.Time) (*RestaurantEarnings, error) {
	cutoff := now.Add(-e.Cfg.PayoutGrace)

	var orders []models.Order
	err := e.DB.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_items.id asc")
	}).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.status = ? AND orders.delivered_at <= ? AND order_items.vendor_slug = ?",
			models.StatusDelivered, cutoff, slug).
		Group("orders.id").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	covered, err := e.paidOrderIDs(models.PayoutRecipientRestaurant, slug)
	if err != nil {
		return nil, err
	}

	cache := map[string]VendorResolution{}
	var pending float64
	for _, order := range orders {
		if _, ok := covered[order.ID]; ok {
			continue
		}
		for _, item := range order.Items {
			if item.VendorSlug != slug {
				continue
			}
			res := e.resolveCached(cache, item.VendorSlug, item.RestaurantName)
			pending += e.itemCost(item, res) * float64(item.Quantity)
		}
	}

	paidTotal, payouts, err := e.payoutHistory(models.PayoutRecipientRestaurant, slug)
	if err != nil {
		return nil, err
	}

	return &RestaurantEarnings{
		Slug:         slug,
		PendingPhp:   utils.Round2(pending),
		PaidTotalPhp: paidTotal,
		Payouts:      payouts,
	}, nil
}

func (e *SettlementEngine) payoutHistory(recipientType, recipientKey string) (float64, []models.Payout, error) {
	var payouts []models.Payout
	err := e.DB.Preload("Orders").
		Where("recipient_type = ? AND recipient_key = ?", recipientType, recipientKey).
		Order("created_at desc").
		Find(&payouts).Error
	if err != nil {
		return 0, nil, err
	}
	var paid float64
	for _, p := range payouts {
		if p.Status == models.PayoutStatusPaid {
			paid += p.Amount
		}
	}
	return utils.Round2(paid), payouts, nil
}
