// Package rent re-derives month-by-month rent obligations from a
// tenant's rent-change history and nets them against completed
// payments. It is pure computation over records the caller has
// already loaded; nothing here touches the database.
package rent

import (
	"sort"
	"time"

	"github.com/zsbati/tenants/internal/models"
)

// Period is the rent billed for one calendar month. Month is always
// the first day of the month at 00:00 UTC.
type Period struct {
	Month      time.Time
	AmountCent int64
}

// DateOnly truncates t to its calendar date in UTC, converting zoned
// values first so an offset cannot shift the day. History rows have
// drifted between DATE and DATETIME columns over the life of the
// schema; comparing at finer than day granularity gives off-by-one
// results at interval boundaries.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of t's month.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Reconstruct produces one Period per calendar month from entryDate's
// month through cutoff's month inclusive. For each month the last
// history record covering the month's reference day wins; months not
// covered by any record bill at currentRentCent, so an empty history
// bills every month at the current rent. An entry date past the
// cutoff produces no periods.
//
// The reference day is the month's first day, except for the entry
// month where it is the entry day itself: a tenant entering mid-month
// has no interval reaching back to day 1, and without the clamp the
// entry month would fall through to the current rent and get rebilled
// by every later rent change.
//
// The walk is pinned to day 1 throughout, which keeps December
// rollover and short months out of trouble.
func Reconstruct(entryDate time.Time, currentRentCent int64, history []models.RentHistory, cutoff time.Time) []Period {
	entry := DateOnly(entryDate)
	end := DateOnly(cutoff)
	if entry.After(end) {
		return nil
	}

	sorted := make([]models.RentHistory, len(history))
	copy(sorted, history)
	// ties on valid_from keep insertion order (id ascending); the
	// last-match scan below then favors the later-inserted record
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := DateOnly(sorted[i].ValidFrom), DateOnly(sorted[j].ValidFrom)
		if a.Equal(b) {
			return sorted[i].ID < sorted[j].ID
		}
		return a.Before(b)
	})

	endMonth := MonthStart(end)
	var periods []Period
	for cur := MonthStart(entry); !cur.After(endMonth); cur = cur.AddDate(0, 1, 0) {
		ref := cur
		if ref.Before(entry) {
			ref = entry
		}
		amount := currentRentCent
		for _, h := range sorted {
			if DateOnly(h.ValidFrom).After(ref) {
				break
			}
			if h.ValidTo == nil || !DateOnly(*h.ValidTo).Before(ref) {
				amount = h.AmountCent
			}
		}
		periods = append(periods, Period{Month: cur, AmountCent: amount})
	}
	return periods
}

// OpenIntervals counts history records with no valid_to. More than
// one means the history is corrupt; Reconstruct still resolves it
// (the most recently opened record wins), but callers should log the
// anomaly rather than trust the data silently.
func OpenIntervals(history []models.RentHistory) int {
	n := 0
	for _, h := range history {
		if h.ValidTo == nil {
			n++
		}
	}
	return n
}
