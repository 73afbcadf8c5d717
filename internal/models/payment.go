package models

import "time"

// PaymentType classifies what a payment was for.
type PaymentType string

const (
	PaymentTypeRent    PaymentType = "rent"
	PaymentTypeDeposit PaymentType = "deposit"
	PaymentTypeFine    PaymentType = "fine"
	PaymentTypeOther   PaymentType = "other"
)

// Valid reports whether t is one of the known payment types.
func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeRent, PaymentTypeDeposit, PaymentTypeFine, PaymentTypeOther:
		return true
	}
	return false
}

// PaymentStatus is the settlement state of a payment. Only completed
// payments reduce a tenant's balance.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusCancelled, PaymentStatusRefunded:
		return true
	}
	return false
}

// Payment is one monetary event. ReferenceMonth is the first day of
// the calendar month the payment is attributed to, independent of
// PaymentDate. Payments are never edited after creation.
type Payment struct {
	ID             uint          `gorm:"primaryKey"`
	TenantID       uint          `gorm:"index;not null"`
	AmountCent     int64         `gorm:"not null"`
	PaymentDate    time.Time     `gorm:"index;not null"`
	PaymentType    PaymentType   `gorm:"size:16;not null"`
	Status         PaymentStatus `gorm:"size:16;index;not null"`
	ReferenceMonth time.Time     `gorm:"index;not null"`
	Description    string        `gorm:"size:255"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
