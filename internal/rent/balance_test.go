package rent

import (
	"testing"

	"github.com/zsbati/tenants/internal/models"
)

// scenario: entry 2023-01-01, rent 500, no history, no payments
func TestBalanceNoHistoryNoPayments(t *testing.T) {
	got := Balance(date(2023, 1, 1), 50000, nil, nil, date(2023, 4, 1))
	if got != 200000 {
		t.Errorf("balance = %d, want 200000 (4 months x 500)", got)
	}
}

func TestBalanceWithPayment(t *testing.T) {
	payments := []models.Payment{
		{ID: 1, AmountCent: 50000, PaymentDate: date(2023, 2, 15), Status: models.PaymentStatusCompleted},
	}

	got := Balance(date(2023, 1, 1), 50000, nil, payments, date(2023, 4, 1))
	if got != 150000 {
		t.Errorf("balance = %d, want 150000", got)
	}
}

func TestBalanceAfterRentChange(t *testing.T) {
	history := []models.RentHistory{
		{ID: 1, AmountCent: 50000, ValidFrom: date(2023, 1, 1), ValidTo: ptr(date(2023, 3, 1))},
		{ID: 2, AmountCent: 60000, ValidFrom: date(2023, 3, 1)},
	}

	got := Balance(date(2023, 1, 1), 60000, history, nil, date(2023, 4, 1))
	if got != 220000 {
		t.Errorf("balance = %d, want 220000 (500+500+600+600)", got)
	}

	payments := []models.Payment{
		{ID: 1, AmountCent: 120000, PaymentDate: date(2023, 4, 1), Status: models.PaymentStatusCompleted},
	}
	got = Balance(date(2023, 1, 1), 60000, history, payments, date(2023, 4, 1))
	if got != 100000 {
		t.Errorf("balance = %d, want 100000", got)
	}
}

func TestBalanceBeforeEntryIsZero(t *testing.T) {
	got := Balance(date(2023, 1, 1), 50000, nil, nil, date(2022, 12, 31))
	if got != 0 {
		t.Errorf("balance = %d, want 0 (no obligation before entry)", got)
	}
}

func TestBalanceIgnoresNonCompletedPayments(t *testing.T) {
	payments := []models.Payment{
		{ID: 1, AmountCent: 50000, PaymentDate: date(2023, 1, 10), Status: models.PaymentStatusPending},
		{ID: 2, AmountCent: 50000, PaymentDate: date(2023, 1, 11), Status: models.PaymentStatusCancelled},
		{ID: 3, AmountCent: 50000, PaymentDate: date(2023, 1, 12), Status: models.PaymentStatusRefunded},
		{ID: 4, AmountCent: 50000, PaymentDate: date(2023, 1, 13), Status: models.PaymentStatusCompleted},
	}

	got := Balance(date(2023, 1, 1), 50000, nil, payments, date(2023, 1, 31))
	if got != 0 {
		t.Errorf("balance = %d, want 0 (only the completed payment counts)", got)
	}
}

func TestBalanceIgnoresPaymentsAfterAsOf(t *testing.T) {
	payments := []models.Payment{
		{ID: 1, AmountCent: 50000, PaymentDate: date(2023, 3, 2), Status: models.PaymentStatusCompleted},
	}

	got := Balance(date(2023, 3, 1), 50000, nil, payments, date(2023, 3, 1))
	if got != 50000 {
		t.Errorf("balance = %d, want 50000 (payment is after as-of date)", got)
	}
}

func TestBalanceOverpaymentIsCredit(t *testing.T) {
	payments := []models.Payment{
		{ID: 1, AmountCent: 150000, PaymentDate: date(2023, 1, 5), Status: models.PaymentStatusCompleted},
	}

	got := Balance(date(2023, 1, 1), 50000, nil, payments, date(2023, 1, 31))
	if got != -100000 {
		t.Errorf("balance = %d, want -100000 (credit)", got)
	}
}

func TestBalanceIdempotent(t *testing.T) {
	history := []models.RentHistory{
		{ID: 1, AmountCent: 45000, ValidFrom: date(2022, 6, 1)},
	}
	payments := []models.Payment{
		{ID: 1, AmountCent: 90000, PaymentDate: date(2022, 8, 3), Status: models.PaymentStatusCompleted},
	}

	first := Balance(date(2022, 6, 1), 45000, history, payments, date(2023, 1, 15))
	second := Balance(date(2022, 6, 1), 45000, history, payments, date(2023, 1, 15))
	if first != second {
		t.Errorf("balance not idempotent: %d then %d", first, second)
	}
}
