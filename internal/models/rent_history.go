package models

import "time"

// RentHistory is one interval during which a fixed rent applied to a
// tenant. ValidTo set to nil marks the open interval carrying the
// current rent; at most one open interval may exist per tenant.
// A rent change closes the open interval and appends a new one in the
// same transaction, so a half-applied change is never visible.
type RentHistory struct {
	ID         uint       `gorm:"primaryKey"`
	TenantID   uint       `gorm:"index;not null"`
	AmountCent int64      `gorm:"not null"`
	ValidFrom  time.Time  `gorm:"index;not null"`
	ValidTo    *time.Time
	ChangedAt  time.Time
	ChangedBy  string     `gorm:"size:100"`
}
