//go:build unit

package pricing_test

import (
	"testing"
	"time"

	"spellbudex/internal/pricing"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestInclusiveDays(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  int
	}{
		{"same day bills one day", "2025-06-01", "2025-06-01", 1},
		{"adjacent days bill two", "2025-06-01", "2025-06-02", 2},
		{"two-night rental bills three days", "2025-06-01", "2025-06-03", 3},
		{"month boundary", "2025-05-30", "2025-06-02", 4},
		{"reversed arguments give the same count", "2025-06-03", "2025-06-01", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pricing.InclusiveDays(date(tt.start), date(tt.end)))
		})
	}
}

func TestInclusiveDays_PartialDayRoundsUp(t *testing.T) {
	start := date("2025-06-01").Add(10 * time.Hour)
	end := date("2025-06-02").Add(15 * time.Hour) // 29h apart
	assert.Equal(t, 3, pricing.InclusiveDays(start, end))
}

func TestInclusiveDays_UnsetDateYieldsZero(t *testing.T) {
	assert.Zero(t, pricing.InclusiveDays(time.Time{}, date("2025-06-01")))
	assert.Zero(t, pricing.InclusiveDays(date("2025-06-01"), time.Time{}))
}

func TestTotal(t *testing.T) {
	// Daily rate 850, June 1st through June 3rd: three billed days.
	assert.Equal(t, 2550.0, pricing.Total(850, date("2025-06-01"), date("2025-06-03")))

	assert.Equal(t, 850.0, pricing.Total(850, date("2025-06-01"), date("2025-06-01")))
	assert.Zero(t, pricing.Total(850, time.Time{}, date("2025-06-01")))
	assert.Zero(t, pricing.Total(0, date("2025-06-01"), date("2025-06-03")))
}
