package models

import "time"

// User represents application user.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:64;not null"`
	Login        string `gorm:"size:64;uniqueIndex;not null"`
	Email        string `gorm:"size:128;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Code         string `gorm:"size:8"` // 4-digit password reset code
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
