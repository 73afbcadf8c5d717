package rent

import (
	"sort"
	"time"

	"github.com/zsbati/tenants/internal/models"
)

// LineKind distinguishes the two statement line variants: monthly
// charges are synthesized from rent periods, payments are real
// recorded rows. They are never mixed into one payment-shaped type.
type LineKind string

const (
	KindRentCharge LineKind = "rent_charge"
	KindPayment    LineKind = "payment"
)

// LineItem is one row of a statement. AmountCent is positive for both
// kinds; Kind decides whether it raises or lowers the running balance.
type LineItem struct {
	Date        time.Time
	Kind        LineKind
	Description string
	AmountCent  int64
	BalanceCent int64 // running balance after this line
	PaymentID   uint  // zero for rent charges
}

// Statement is a chronological ledger of charges and payments over a
// date range with a running balance.
type Statement struct {
	Start              time.Time
	End                time.Time
	OpeningBalanceCent int64
	Lines              []LineItem
	ClosingBalanceCent int64
	TotalRentDueCent   int64
	TotalPaymentsCent  int64
}

// BuildStatement assembles the statement for [start, end]. The
// opening balance is taken as of the day before start; window charges
// are exactly the reconstructed months the opening did not already
// bill, so the closing balance always reconciles with
// Balance(..., end) and no month is counted twice, whatever day of
// the month the window starts on.
func BuildStatement(entryDate time.Time, currentRentCent int64, history []models.RentHistory, payments []models.Payment, start, end time.Time) Statement {
	startD := DateOnly(start)
	endD := DateOnly(end)
	st := Statement{Start: startD, End: endD}
	if startD.After(endD) {
		return st
	}

	openCut := startD.AddDate(0, 0, -1)
	st.OpeningBalanceCent = Balance(entryDate, currentRentCent, history, payments, openCut)

	// months already billed by the opening balance end at openCut's
	// month, unless the tenant entered after openCut (opening billed
	// nothing then)
	covered := MonthStart(openCut)
	openingBilled := !DateOnly(entryDate).After(openCut)

	var lines []LineItem
	for _, p := range Reconstruct(entryDate, currentRentCent, history, endD) {
		if openingBilled && !p.Month.After(covered) {
			continue
		}
		lines = append(lines, LineItem{
			Date:        p.Month,
			Kind:        KindRentCharge,
			Description: "Rent " + p.Month.Format("01/2006"),
			AmountCent:  p.AmountCent,
		})
		st.TotalRentDueCent += p.AmountCent
	}

	for _, pay := range payments {
		if pay.Status != models.PaymentStatusCompleted {
			continue
		}
		d := DateOnly(pay.PaymentDate)
		if d.Before(startD) || d.After(endD) {
			continue
		}
		desc := pay.Description
		if desc == "" {
			desc = string(pay.PaymentType)
		}
		lines = append(lines, LineItem{
			Date:        d,
			Kind:        KindPayment,
			Description: desc,
			AmountCent:  pay.AmountCent,
			PaymentID:   pay.ID,
		})
		st.TotalPaymentsCent += pay.AmountCent
	}

	// charges apply before payments on the same date, keeping the
	// running balance sequence reproducible
	sort.SliceStable(lines, func(i, j int) bool {
		if lines[i].Date.Equal(lines[j].Date) {
			return lines[i].Kind == KindRentCharge && lines[j].Kind == KindPayment
		}
		return lines[i].Date.Before(lines[j].Date)
	})

	bal := st.OpeningBalanceCent
	for i := range lines {
		if lines[i].Kind == KindRentCharge {
			bal += lines[i].AmountCent
		} else {
			bal -= lines[i].AmountCent
		}
		lines[i].BalanceCent = bal
	}
	st.Lines = lines
	st.ClosingBalanceCent = bal
	return st
}
