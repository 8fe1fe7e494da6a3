// Package demand computes the time-dependent demand factor D_t.
// The factor is a pure function of the timestamp and the schedule:
// same input, same output, with no hidden clock reads.
package demand

import (
	"time"

	"broadbandx-pricing/core/types"
)

// DefaultSchedule mirrors evening broadband usage: peak 6 PM - 10 PM,
// with a flat weekend uplift.
func DefaultSchedule() types.DemandSchedule {
	return types.DemandSchedule{
		PeakStartHour:     18,
		PeakEndHour:       22,
		PeakMultiplier:    0.15,
		OffpeakMultiplier: -0.10,
		WeekendMultiplier: 0.05,
	}
}

// Factor returns the demand factor for ts under the given schedule.
// Peak window bounds are inclusive on both ends. The weekend multiplier
// is additive, so weekend peak = peak + weekend.
func Factor(schedule types.DemandSchedule, ts time.Time) float64 {
	hour := ts.Hour()

	factor := schedule.OffpeakMultiplier
	if hour >= schedule.PeakStartHour && hour <= schedule.PeakEndHour {
		factor = schedule.PeakMultiplier
	}

	switch ts.Weekday() {
	case time.Saturday, time.Sunday:
		factor += schedule.WeekendMultiplier
	}

	return types.Round4(factor)
}
