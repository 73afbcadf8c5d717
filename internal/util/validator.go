package util

import (
	"fmt"
	"time"
)

// amounts above this are almost certainly typos
const maxAmountCent = 10_000_000_00

// ValidatePaymentAmount checks a payment amount in cents: payments
// must be positive and below the sanity cap.
func ValidatePaymentAmount(cent int64) error {
	if cent <= 0 {
		return fmt.Errorf("payment amount must be positive, got %d cents", cent)
	}
	if cent >= maxAmountCent {
		return fmt.Errorf("payment amount too large, got %d cents", cent)
	}
	return nil
}

// ValidateRentAmount checks a monthly rent in cents. Zero is a valid
// rent (a genuinely free month still gets billed as a period);
// negative is not.
func ValidateRentAmount(cent int64) error {
	if cent < 0 {
		return fmt.Errorf("rent must not be negative, got %d cents", cent)
	}
	if cent >= maxAmountCent {
		return fmt.Errorf("rent too large, got %d cents", cent)
	}
	return nil
}

// ValidateDate checks a YYYY-MM-DD string and returns the parsed day.
func ValidateDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %w", err)
	}
	return t, nil
}

// ValidateRoomCapacity checks the bed count of a room.
func ValidateRoomCapacity(capacity int) error {
	if capacity < 1 || capacity > 4 {
		return fmt.Errorf("room capacity must be between 1 and 4, got %d", capacity)
	}
	return nil
}
