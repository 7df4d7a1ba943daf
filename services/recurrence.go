package services

import (
	"iter"
	"time"

	"keeper/models"
)

// Occurrences expands a recurrence definition into the concrete start
// times between start and until (both inclusive). The sequence is lazy,
// finite and restartable; the first element is always start.
//
// Month and year steps are anchored to start rather than chained from
// the previous occurrence: occurrence i lands i*interval units from
// start, with the day-of-month clamped to the last valid day of the
// target month. A monthly series anchored on Jan 31 therefore yields
// Jan 31, Feb 29 (leap year), Mar 31, Apr 30 instead of drifting to the
// 29th for the rest of its life after February.
//
// Degenerate input produces an empty sequence, never an error: the
// caller is responsible for rejecting interval <= 0 and for treating a
// recurrence that yields no occurrences as invalid.
func Occurrences(freq models.Frequency, interval int, start, until time.Time) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if interval <= 0 {
			return
		}
		for i := 0; ; i++ {
			t := advance(start, freq, i*interval)
			if t.After(until) {
				return
			}
			if !yield(t) {
				return
			}
		}
	}
}

// advance moves t forward n units of freq, clamping day-of-month for
// month and year steps.
func advance(t time.Time, freq models.Frequency, n int) time.Time {
	if n == 0 {
		return t
	}
	switch freq {
	case models.FrequencyDay:
		return t.AddDate(0, 0, n)
	case models.FrequencyWeek:
		return t.AddDate(0, 0, 7*n)
	case models.FrequencyMonth:
		return addMonthsClamped(t, n)
	case models.FrequencyYear:
		return addMonthsClamped(t, 12*n)
	default:
		// Unknown frequency is filtered out before generation.
		return t.AddDate(0, 0, n)
	}
}

// addMonthsClamped adds n calendar months, clamping the day to the
// target month's last valid day. time.AddDate is not used here because
// it normalizes overflow into the following month (Jan 31 + 1 month
// becomes Mar 2/3).
func addMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	// Normalize the target year/month.
	month := int(m) - 1 + n
	y += month / 12
	month %= 12
	if month < 0 {
		month += 12
		y--
	}
	target := time.Month(month + 1)

	if last := daysIn(y, target); d > last {
		d = last
	}

	h, min, sec := t.Clock()
	return time.Date(y, target, d, h, min, sec, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
