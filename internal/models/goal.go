package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialGoal is a savings target owned by a user. IsDone is set by the
// caller; reaching TargetAmount does not flip it automatically.
type FinancialGoal struct {
	ID           uint            `gorm:"primaryKey"`
	Name         string          `gorm:"size:64;not null"`
	Description  string          `gorm:"type:text"`
	Amount       decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	TargetAmount decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	TargetDate   string          `gorm:"size:10"`
	IsDone       bool            `gorm:"index;not null"`
	UserID       uint            `gorm:"index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
