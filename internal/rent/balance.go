package rent

import (
	"time"

	"github.com/zsbati/tenants/internal/models"
)

// Balance returns the signed amount owed as of asOf, in cents: billed
// periods through asOf's month minus completed payments dated on or
// before asOf. Positive means the tenant owes money, negative means
// credit. The month containing asOf is billed in full.
func Balance(entryDate time.Time, currentRentCent int64, history []models.RentHistory, payments []models.Payment, asOf time.Time) int64 {
	var due int64
	for _, p := range Reconstruct(entryDate, currentRentCent, history, asOf) {
		due += p.AmountCent
	}

	cut := DateOnly(asOf)
	var paid int64
	for _, pay := range payments {
		if pay.Status != models.PaymentStatusCompleted {
			continue
		}
		if !DateOnly(pay.PaymentDate).After(cut) {
			paid += pay.AmountCent
		}
	}
	return due - paid
}
