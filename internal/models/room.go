package models

import "time"

// Room groups tenants; capacity is the number of beds (1-4).
// Occupancy is not stored, it is counted from active tenants.
type Room struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:50;uniqueIndex;not null"`
	Capacity    int    `gorm:"not null;default:4"`
	Description string `gorm:"size:200"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
