package models

import "time"

// Category names a group of transactions.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:64;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
