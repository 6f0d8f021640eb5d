package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account holds a running balance for one user.
// Balance always equals the sum of the account's signed transaction
// amounts (income positive, expense negative); only the ledger service
// writes it after creation.
type Account struct {
	ID        uint            `gorm:"primaryKey"`
	Name      string          `gorm:"size:64;not null"`
	Balance   decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	UserID    uint            `gorm:"index;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
