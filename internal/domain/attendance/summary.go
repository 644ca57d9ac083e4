package attendance

import (
	"math"
	"time"
)

func isWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// Weekdays counts Monday to Friday dates in the month.
func Weekdays(year, month int) int {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	n := 0
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		if isWeekday(d) {
			n++
		}
	}
	return n
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// BuildSummary computes the attendance factor for one month. Each span is
// clipped to the month and contributes its weight for every weekday it covers.
// Overlapping spans are counted independently.
func BuildSummary(year, month int, spans []LeaveSpan) Summary {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)
	weekdays := Weekdays(year, month)

	unpaid := 0.0
	for _, span := range spans {
		if span.Weight <= 0 {
			continue
		}
		from := civilDate(span.Start)
		to := civilDate(span.End)
		if from.Before(monthStart) {
			from = monthStart
		}
		if to.After(monthEnd) {
			to = monthEnd
		}
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			if isWeekday(d) {
				unpaid += span.Weight
			}
		}
	}

	factor := 1.0
	if weekdays > 0 {
		factor = math.Max(float64(weekdays)-unpaid, 0) / float64(weekdays)
	}
	return Summary{
		Year:            year,
		Month:           month,
		Weekdays:        weekdays,
		UnpaidLeaveDays: unpaid,
		Factor:          factor,
	}
}
