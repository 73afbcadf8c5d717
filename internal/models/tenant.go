package models

import "time"

// Tenant is one boarding-house tenant. RentCent always holds the
// latest monthly rent; the full change history lives in RentHistory.
// Soft delete is a single nullable timestamp: nil means active, set
// means deleted but restorable.
type Tenant struct {
	ID        uint       `gorm:"primaryKey"`
	Name      string     `gorm:"size:100;not null"`
	BI        string     `gorm:"size:20;uniqueIndex;not null"` // identity document number
	Email     string     `gorm:"size:100"`
	Phone     string     `gorm:"size:20"`
	Address   string     `gorm:"size:200"`
	BirthDate time.Time  `gorm:"not null"`
	EntryDate time.Time  `gorm:"not null"` // first day rent is owed
	RoomID    uint       `gorm:"index;not null"`
	RentCent  int64      `gorm:"not null"` // current monthly rent in cents
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`

	Room             Room              `gorm:"constraint:OnDelete:RESTRICT"`
	EmergencyContact *EmergencyContact `gorm:"constraint:OnDelete:CASCADE"`
	RentHistory      []RentHistory     `gorm:"constraint:OnDelete:CASCADE"`
	Payments         []Payment         `gorm:"constraint:OnDelete:CASCADE"`
}

// IsActive reports whether the tenant has not been soft-deleted.
func (t *Tenant) IsActive() bool { return t.DeletedAt == nil }

// EmergencyContact is the person to call about a tenant.
type EmergencyContact struct {
	ID       uint   `gorm:"primaryKey"`
	TenantID uint   `gorm:"index;not null"`
	Name     string `gorm:"size:100"`
	Phone    string `gorm:"size:20"`
	Email    string `gorm:"size:100"`
}
