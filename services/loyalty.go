package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/models"
	"github.com/sugoph/sugo-backend/utils"
)

// AwardLoyalty credits the customer's loyalty balance for a delivered order.
// It is idempotent per order: the loyalty_awarded flag on the order row is
// checked and set inside the caller's transaction, so repeated delivered
// transitions cannot double-award points.
func AwardLoyalty(tx *gorm.DB, order *models.Order, points int) error {
	if order.LoyaltyAwarded {
		return nil
	}

	phone := utils.NormalizePhone(order.CustomerPhone)
	if phone == "" {
		return nil
	}

	var customer models.Customer
	err := tx.Where("phone = ?", phone).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{
			Phone: phone,
			Name:  order.CustomerName,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	if err := tx.Model(&customer).
		UpdateColumn("loyalty_points", gorm.Expr("loyalty_points + ?", points)).Error; err != nil {
		return err
	}

	order.LoyaltyAwarded = true
	return tx.Model(order).UpdateColumn("loyalty_awarded", true).Error
}
