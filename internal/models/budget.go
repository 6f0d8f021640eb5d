package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a spending limit over a period. Wasted is a stored field
// written by the caller, not derived from transactions.
type Budget struct {
	ID         uint            `gorm:"primaryKey"`
	Name       string          `gorm:"size:64;not null"`
	Amount     decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Wasted     decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Date       string          `gorm:"size:10"`
	TargetDate string          `gorm:"size:10"`
	UserID     uint            `gorm:"index;not null"`
	AccountID  uint            `gorm:"index;not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User    User    `gorm:"constraint:OnDelete:CASCADE"`
	Account Account `gorm:"constraint:OnDelete:CASCADE"`
}
