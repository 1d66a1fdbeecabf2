// Package pricing computes rental totals. Both boundary days are billed, so
// a same-day rental counts as one day.
package pricing

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// InclusiveDays returns the number of billed calendar days between two
// dates, counting both boundaries. Order of the arguments does not matter;
// a partial day rounds up before the boundary day is added.
func InclusiveDays(start, end time.Time) int {
	if start.IsZero() || end.IsZero() {
		return 0
	}
	span := end.Sub(start)
	if span < 0 {
		span = -span
	}
	between := int(math.Ceil(float64(span) / float64(day)))
	return between + 1
}

// Total is the derived rental price: daily rate times the inclusive day
// count. Zero until both dates are set.
func Total(dailyRate float64, start, end time.Time) float64 {
	days := InclusiveDays(start, end)
	if days == 0 {
		return 0
	}
	return dailyRate * float64(days)
}
