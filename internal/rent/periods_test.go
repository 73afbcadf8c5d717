package rent

import (
	"testing"
	"time"

	"github.com/zsbati/tenants/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestReconstructNoHistory(t *testing.T) {
	periods := Reconstruct(date(2023, 1, 1), 50000, nil, date(2023, 4, 1))

	if len(periods) != 4 {
		t.Fatalf("expected 4 periods, got %d", len(periods))
	}
	for i, p := range periods {
		want := date(2023, time.Month(i+1), 1)
		if !p.Month.Equal(want) {
			t.Errorf("period %d: month %v, want %v", i, p.Month, want)
		}
		if p.AmountCent != 50000 {
			t.Errorf("period %d: amount %d, want 50000", i, p.AmountCent)
		}
	}
}

func TestReconstructRentChange(t *testing.T) {
	// rent went from 500 to 600 on 2023-03-01
	history := []models.RentHistory{
		{ID: 1, AmountCent: 50000, ValidFrom: date(2023, 1, 1), ValidTo: ptr(date(2023, 3, 1))},
		{ID: 2, AmountCent: 60000, ValidFrom: date(2023, 3, 1)},
	}

	periods := Reconstruct(date(2023, 1, 1), 60000, history, date(2023, 4, 1))
	if len(periods) != 4 {
		t.Fatalf("expected 4 periods, got %d", len(periods))
	}

	want := []int64{50000, 50000, 60000, 60000}
	for i, p := range periods {
		if p.AmountCent != want[i] {
			t.Errorf("period %d (%v): amount %d, want %d", i, p.Month, p.AmountCent, want[i])
		}
	}
}

func TestReconstructUnsortedHistory(t *testing.T) {
	// same change as above but records arrive out of order
	history := []models.RentHistory{
		{ID: 2, AmountCent: 60000, ValidFrom: date(2023, 3, 1)},
		{ID: 1, AmountCent: 50000, ValidFrom: date(2023, 1, 1), ValidTo: ptr(date(2023, 3, 1))},
	}

	periods := Reconstruct(date(2023, 1, 1), 60000, history, date(2023, 4, 1))
	if periods[0].AmountCent != 50000 || periods[3].AmountCent != 60000 {
		t.Errorf("unsorted history not normalized: %+v", periods)
	}
}

func TestReconstructDecemberRollover(t *testing.T) {
	periods := Reconstruct(date(2022, 11, 15), 40000, nil, date(2023, 2, 10))

	months := []time.Time{
		date(2022, 11, 1), date(2022, 12, 1), date(2023, 1, 1), date(2023, 2, 1),
	}
	if len(periods) != len(months) {
		t.Fatalf("expected %d periods, got %d", len(months), len(periods))
	}
	for i, p := range periods {
		if !p.Month.Equal(months[i]) {
			t.Errorf("period %d: month %v, want %v", i, p.Month, months[i])
		}
	}
}

func TestReconstructEntryAfterCutoff(t *testing.T) {
	periods := Reconstruct(date(2024, 5, 1), 50000, nil, date(2024, 1, 1))
	if len(periods) != 0 {
		t.Errorf("expected no periods, got %d", len(periods))
	}
}

func TestReconstructZeroRentMonthsKept(t *testing.T) {
	// a free month is still a period, it just contributes nothing
	history := []models.RentHistory{
		{ID: 1, AmountCent: 50000, ValidFrom: date(2023, 1, 1), ValidTo: ptr(date(2023, 2, 1))},
		{ID: 2, AmountCent: 0, ValidFrom: date(2023, 2, 1), ValidTo: ptr(date(2023, 3, 1))},
		{ID: 3, AmountCent: 50000, ValidFrom: date(2023, 3, 1)},
	}

	periods := Reconstruct(date(2023, 1, 1), 50000, history, date(2023, 3, 31))
	if len(periods) != 3 {
		t.Fatalf("expected 3 periods, got %d", len(periods))
	}
	if periods[1].AmountCent != 0 {
		t.Errorf("february: amount %d, want 0", periods[1].AmountCent)
	}
}

func TestReconstructDayGranularity(t *testing.T) {
	// a valid_from carrying a time-of-day still covers its own day
	history := []models.RentHistory{
		{ID: 1, AmountCent: 70000, ValidFrom: time.Date(2023, 2, 1, 18, 30, 0, 0, time.UTC)},
	}

	periods := Reconstruct(date(2023, 2, 1), 50000, history, date(2023, 2, 1))
	if len(periods) != 1 {
		t.Fatalf("expected 1 period, got %d", len(periods))
	}
	if periods[0].AmountCent != 70000 {
		t.Errorf("amount %d, want 70000 (time-of-day must be ignored)", periods[0].AmountCent)
	}
}

func TestReconstructTieOnValidFrom(t *testing.T) {
	// two records sharing valid_from: the later-inserted one wins
	history := []models.RentHistory{
		{ID: 7, AmountCent: 55000, ValidFrom: date(2023, 1, 1)},
		{ID: 3, AmountCent: 50000, ValidFrom: date(2023, 1, 1), ValidTo: ptr(date(2023, 6, 1))},
	}

	periods := Reconstruct(date(2023, 1, 1), 55000, history, date(2023, 1, 1))
	if periods[0].AmountCent != 55000 {
		t.Errorf("amount %d, want 55000 (id order should break the tie)", periods[0].AmountCent)
	}
}

func TestReconstructMultipleOpenIntervals(t *testing.T) {
	// corrupt data: two open intervals; the most recently opened wins
	history := []models.RentHistory{
		{ID: 1, AmountCent: 50000, ValidFrom: date(2023, 1, 1)},
		{ID: 2, AmountCent: 65000, ValidFrom: date(2023, 3, 1)},
	}

	if n := OpenIntervals(history); n != 2 {
		t.Errorf("OpenIntervals = %d, want 2", n)
	}

	periods := Reconstruct(date(2023, 1, 1), 65000, history, date(2023, 4, 1))
	if periods[1].AmountCent != 50000 {
		t.Errorf("february: amount %d, want 50000", periods[1].AmountCent)
	}
	if periods[2].AmountCent != 65000 {
		t.Errorf("march: amount %d, want 65000", periods[2].AmountCent)
	}
}

func TestReconstructMidMonthEntryKeepsOriginalRate(t *testing.T) {
	// entry on the 15th, rent raised on March 10: the entry month's
	// interval starts at the entry day, not the month's day 1, and
	// must still bill January at the old rate
	history := []models.RentHistory{
		{ID: 1, AmountCent: 50000, ValidFrom: date(2023, 1, 15), ValidTo: ptr(date(2023, 3, 10))},
		{ID: 2, AmountCent: 60000, ValidFrom: date(2023, 3, 10)},
	}

	periods := Reconstruct(date(2023, 1, 15), 60000, history, date(2023, 4, 1))
	if len(periods) != 4 {
		t.Fatalf("expected 4 periods, got %d", len(periods))
	}

	want := []int64{50000, 50000, 50000, 60000}
	for i, p := range periods {
		if p.AmountCent != want[i] {
			t.Errorf("period %d (%v): amount %d, want %d", i, p.Month, p.AmountCent, want[i])
		}
	}
}

func TestDateOnlyConvertsToUTC(t *testing.T) {
	// half past midnight in UTC+1 is still the previous day in UTC
	loc := time.FixedZone("CET", 3600)
	got := DateOnly(time.Date(2025, 12, 3, 0, 30, 0, 0, loc))
	if !got.Equal(date(2025, 12, 2)) {
		t.Errorf("DateOnly = %v, want %v", got, date(2025, 12, 2))
	}
}

func TestReconstructSumEqualsMonthsTimesRent(t *testing.T) {
	// with no history changes the total must be months x rent
	periods := Reconstruct(date(2021, 7, 1), 35000, nil, date(2023, 6, 30))

	var sum int64
	for _, p := range periods {
		sum += p.AmountCent
	}
	if len(periods) != 24 {
		t.Fatalf("expected 24 periods, got %d", len(periods))
	}
	if sum != 24*35000 {
		t.Errorf("sum %d, want %d", sum, 24*35000)
	}
}
