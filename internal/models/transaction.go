package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction records a dated, signed monetary event against an account.
// Amount is a non-negative magnitude; Income carries the sign.
// Date is stored as text in YYYY-MM-DD form.
//
// CategoryID deliberately has no foreign key constraint: deleting a
// category leaves its transactions in place, matching the declared schema.
type Transaction struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:64;not null"`
	Description string          `gorm:"type:text"`
	Amount      decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Date        string          `gorm:"size:10;index;not null"`
	Income      bool            `gorm:"index;not null"`
	AccountID   uint            `gorm:"index;not null"`
	CategoryID  uint            `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Account Account `gorm:"constraint:OnDelete:CASCADE"`
}
