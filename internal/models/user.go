package models

import "time"

// User is an operator account for the web interface.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	DisplayName  string `gorm:"size:64"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	FailedLoginAttempts int        `gorm:"default:0"` // consecutive failures
	LockedUntil         *time.Time `gorm:"index"`     // lockout expiry
	LastLoginAt         *time.Time
	LastLoginIP         string `gorm:"size:64"`
}
