package rent

import (
	"testing"

	"github.com/zsbati/tenants/internal/models"
)

func TestStatementClosingMatchesBalance(t *testing.T) {
	history := []models.RentHistory{
		{ID: 1, AmountCent: 50000, ValidFrom: date(2023, 1, 1), ValidTo: ptr(date(2023, 3, 1))},
		{ID: 2, AmountCent: 60000, ValidFrom: date(2023, 3, 1)},
	}
	payments := []models.Payment{
		{ID: 1, AmountCent: 50000, PaymentDate: date(2023, 2, 15), Status: models.PaymentStatusCompleted},
		{ID: 2, AmountCent: 60000, PaymentDate: date(2023, 4, 10), Status: models.PaymentStatusCompleted},
	}
	entry := date(2023, 1, 1)

	st := BuildStatement(entry, 60000, history, payments, date(2023, 3, 1), date(2023, 4, 30))

	wantClosing := Balance(entry, 60000, history, payments, date(2023, 4, 30))
	if st.ClosingBalanceCent != wantClosing {
		t.Errorf("closing %d, want %d (must reconcile with point-in-time balance)", st.ClosingBalanceCent, wantClosing)
	}

	wantOpening := Balance(entry, 60000, history, payments, date(2023, 2, 28))
	if st.OpeningBalanceCent != wantOpening {
		t.Errorf("opening %d, want %d", st.OpeningBalanceCent, wantOpening)
	}
}

func TestStatementMidMonthStartStillReconciles(t *testing.T) {
	payments := []models.Payment{
		{ID: 1, AmountCent: 30000, PaymentDate: date(2023, 2, 20), Status: models.PaymentStatusCompleted},
	}
	entry := date(2023, 1, 1)

	st := BuildStatement(entry, 50000, nil, payments, date(2023, 2, 15), date(2023, 5, 31))

	want := Balance(entry, 50000, nil, payments, date(2023, 5, 31))
	if st.ClosingBalanceCent != want {
		t.Errorf("closing %d, want %d", st.ClosingBalanceCent, want)
	}
	// February was billed by the opening balance, so the window must
	// only charge March through May
	charges := 0
	for _, l := range st.Lines {
		if l.Kind == KindRentCharge {
			charges++
		}
	}
	if charges != 3 {
		t.Errorf("window charges %d, want 3", charges)
	}
}

func TestStatementEntryInsideWindow(t *testing.T) {
	entry := date(2023, 3, 20)

	st := BuildStatement(entry, 50000, nil, nil, date(2023, 3, 15), date(2023, 4, 30))

	if st.OpeningBalanceCent != 0 {
		t.Errorf("opening %d, want 0", st.OpeningBalanceCent)
	}
	if len(st.Lines) != 2 {
		t.Fatalf("lines %d, want 2 (march and april charges)", len(st.Lines))
	}
	want := Balance(entry, 50000, nil, nil, date(2023, 4, 30))
	if st.ClosingBalanceCent != want {
		t.Errorf("closing %d, want %d", st.ClosingBalanceCent, want)
	}
}

func TestStatementChargeBeforePaymentOnSameDate(t *testing.T) {
	payments := []models.Payment{
		{ID: 1, AmountCent: 50000, PaymentDate: date(2023, 2, 1), Status: models.PaymentStatusCompleted},
	}
	entry := date(2023, 1, 1)

	st := BuildStatement(entry, 50000, nil, payments, date(2023, 2, 1), date(2023, 2, 28))

	if len(st.Lines) != 2 {
		t.Fatalf("lines %d, want 2", len(st.Lines))
	}
	if st.Lines[0].Kind != KindRentCharge || st.Lines[1].Kind != KindPayment {
		t.Errorf("same-date order wrong: %s then %s", st.Lines[0].Kind, st.Lines[1].Kind)
	}
	// opening carries january's unpaid 500; february charge then the
	// payment: 500 -> 1000 -> 500
	if st.Lines[0].BalanceCent != 100000 {
		t.Errorf("running balance after charge %d, want 100000", st.Lines[0].BalanceCent)
	}
	if st.Lines[1].BalanceCent != 50000 {
		t.Errorf("running balance after payment %d, want 50000", st.Lines[1].BalanceCent)
	}
}

func TestStatementTotalsConsistentWithLines(t *testing.T) {
	payments := []models.Payment{
		{ID: 1, AmountCent: 40000, PaymentDate: date(2023, 1, 10), Status: models.PaymentStatusCompleted},
		{ID: 2, AmountCent: 10000, PaymentDate: date(2023, 2, 10), Status: models.PaymentStatusCompleted},
		{ID: 3, AmountCent: 99900, PaymentDate: date(2023, 2, 11), Status: models.PaymentStatusPending},
	}
	entry := date(2023, 1, 1)

	st := BuildStatement(entry, 50000, nil, payments, date(2023, 1, 1), date(2023, 2, 28))

	var rentSum, paySum int64
	for _, l := range st.Lines {
		switch l.Kind {
		case KindRentCharge:
			rentSum += l.AmountCent
		case KindPayment:
			paySum += l.AmountCent
		}
	}
	if st.TotalRentDueCent != rentSum {
		t.Errorf("total rent due %d, lines sum %d", st.TotalRentDueCent, rentSum)
	}
	if st.TotalPaymentsCent != paySum {
		t.Errorf("total payments %d, lines sum %d", st.TotalPaymentsCent, paySum)
	}
	if st.TotalPaymentsCent != 50000 {
		t.Errorf("total payments %d, want 50000 (pending excluded)", st.TotalPaymentsCent)
	}
	if got := st.OpeningBalanceCent + rentSum - paySum; got != st.ClosingBalanceCent {
		t.Errorf("opening+charges-payments = %d, closing %d", got, st.ClosingBalanceCent)
	}
}

func TestStatementEmptyWindow(t *testing.T) {
	entry := date(2023, 1, 1)

	st := BuildStatement(entry, 50000, nil, nil, date(2022, 6, 1), date(2022, 6, 30))

	if len(st.Lines) != 0 {
		t.Fatalf("lines %d, want 0", len(st.Lines))
	}
	if st.ClosingBalanceCent != st.OpeningBalanceCent {
		t.Errorf("closing %d must equal opening %d with no lines", st.ClosingBalanceCent, st.OpeningBalanceCent)
	}
}

func TestStatementInvertedRangeIsEmpty(t *testing.T) {
	st := BuildStatement(date(2023, 1, 1), 50000, nil, nil, date(2023, 5, 1), date(2023, 4, 1))
	if len(st.Lines) != 0 || st.OpeningBalanceCent != 0 {
		t.Errorf("inverted range should produce an empty statement, got %+v", st)
	}
}

func TestStatementPaymentKeepsReferenceToRow(t *testing.T) {
	payments := []models.Payment{
		{ID: 42, AmountCent: 50000, PaymentDate: date(2023, 1, 20), Status: models.PaymentStatusCompleted, Description: "January rent"},
	}

	st := BuildStatement(date(2023, 1, 1), 50000, nil, payments, date(2023, 1, 1), date(2023, 1, 31))

	var payLine *LineItem
	for i := range st.Lines {
		if st.Lines[i].Kind == KindPayment {
			payLine = &st.Lines[i]
		}
	}
	if payLine == nil {
		t.Fatal("payment line missing")
	}
	if payLine.PaymentID != 42 {
		t.Errorf("payment id %d, want 42", payLine.PaymentID)
	}
	if payLine.Description != "January rent" {
		t.Errorf("description %q", payLine.Description)
	}
}
