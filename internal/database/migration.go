package database

import (
	"fmt"

	"github.com/igorvsx/WalletControlAPI/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Category{},
		&models.Transaction{},
		&models.FinancialGoal{},
		&models.Budget{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
