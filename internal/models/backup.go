package models

import "time"

// Backup tracks a JSON snapshot file of the whole register.
type Backup struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"` // operator who created it
	FileName  string `gorm:"size:255;not null"`
	FilePath  string `gorm:"size:512;not null"`
	Size      int64
	CreatedAt time.Time
}
