package attendance

import (
	"fmt"
	"strings"
	"time"
)

// ParseClock reads HH:MM:SS, falling back to HH:MM, and returns seconds since midnight.
func ParseClock(value string) (int, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.Hour()*3600 + t.Minute()*60 + t.Second(), true
		}
	}
	return 0, false
}

// NormalizeClockTime returns value as HH:MM:SS. HH:MM input gets ":00" appended.
func NormalizeClockTime(value string) (string, error) {
	secs, ok := ParseClock(value)
	if !ok {
		return "", ErrInvalidTime
	}
	return formatClock(secs), nil
}

func formatClock(secs int) string {
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60)
}

// ClockInStatus classifies a clock-in at now against the workday start. Arrivals
// at or before the start are recorded as the start time itself.
func ClockInStatus(now time.Time, workdayStart string) (status, recorded string) {
	start, ok := ParseClock(workdayStart)
	if !ok {
		start, _ = ParseClock(DefaultWorkdayStart)
	}
	secs := now.Hour()*3600 + now.Minute()*60 + now.Second()
	if secs > start {
		return StatusLate, formatClock(secs)
	}
	return StatusNormal, formatClock(start)
}

// WorkDuration is the time between clock-in and clock-out minus the lunch break
// when at least four hours were spent. A clock-out earlier than the clock-in
// is taken as the next day.
func WorkDuration(clockIn, clockOut string) (time.Duration, bool) {
	in, ok := ParseClock(clockIn)
	if !ok {
		return 0, false
	}
	out, ok := ParseClock(clockOut)
	if !ok {
		return 0, false
	}
	if out < in {
		out += 24 * 3600
	}
	d := time.Duration(out-in) * time.Second
	if d >= lunchThresholdHours*time.Hour {
		d -= LunchBreakMinutes * time.Minute
	}
	if d < 0 {
		d = 0
	}
	return d, true
}

func FormatDuration(d time.Duration) string {
	total := int(d / time.Minute)
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

func durationLabel(clockIn, clockOut string) string {
	if clockIn == "" || clockOut == "" {
		return ""
	}
	d, ok := WorkDuration(clockIn, clockOut)
	if !ok {
		return ""
	}
	return FormatDuration(d)
}

// MonthRange returns [first day of month, first day of next month) in loc.
func MonthRange(year, month int, loc *time.Location) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0), nil
}
