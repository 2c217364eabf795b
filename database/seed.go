package database

import (
	"errors"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sugoph/sugo-backend/models"
	"github.com/sugoph/sugo-backend/utils"
)

// Seed creates the bootstrap staff account when none exists. Credentials
// come from SEED_STAFF_EMAIL / SEED_STAFF_PASSWORD; skipped when unset.
func Seed(db *gorm.DB) error {
	email := os.Getenv("SEED_STAFF_EMAIL")
	password := os.Getenv("SEED_STAFF_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Name:     "Operations",
		Email:    email,
		Password: string(hashed),
		Role:     "staff",
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	utils.InfoLogger.Printf("Seeded staff account %s", email)
	return nil
}
