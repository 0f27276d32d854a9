package metrics

import (
	"math"
	"time"
)

// DaysUntilPayment returns the number of whole calendar days from today to
// the next occurrence of paymentDay, the debt's day-of-month. The candidate
// is placed in the current month; if that date has already passed it rolls
// to the following month. The result is never negative and is 0 on the
// payment day itself. Partial days count as a full day remaining.
//
// Day-of-month overflow (paymentDay 31 in a 30-day month) clamps to the last
// day of the target month, the same rule the monthly schedule check uses.
func DaysUntilPayment(paymentDay int, today time.Time) int {
	if paymentDay < 1 {
		return 0
	}

	year, month, day := today.Date()
	loc := today.Location()
	base := time.Date(year, month, day, 0, 0, 0, 0, loc)

	candidate := paymentDate(year, month, paymentDay, loc)
	if candidate.Before(base) {
		candidate = paymentDate(year, month+1, paymentDay, loc)
	}

	// Ceil keeps the count stable across DST transitions, where the span
	// between midnights is not an exact multiple of 24h.
	days := int(math.Ceil(candidate.Sub(base).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// paymentDate builds the candidate date, clamping day to the last day of
// the month. month may be 13 for January of the next year; time.Date
// normalizes it.
func paymentDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
