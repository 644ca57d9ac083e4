package shared

import (
	"errors"
	"net/http"
	"strconv"
	"time"
)

var ErrInvalidPeriod = errors.New("year and month are required")

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// ParsePeriod reads ?year=&month=. When both are absent the current month in loc is used.
func ParsePeriod(r *http.Request, now time.Time) (int, int, error) {
	q := r.URL.Query()
	rawYear, rawMonth := q.Get("year"), q.Get("month")
	if rawYear == "" && rawMonth == "" {
		return now.Year(), int(now.Month()), nil
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return 0, 0, ErrInvalidPeriod
	}
	month, err := strconv.Atoi(rawMonth)
	if err != nil || month < 1 || month > 12 {
		return 0, 0, ErrInvalidPeriod
	}
	return year, month, nil
}
