package leave

import (
	"strings"
	"time"
)

// CalculateDays returns the inclusive calendar day count between start and end.
func CalculateDays(start, end time.Time) (float64, error) {
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return end.Sub(start).Hours()/24 + 1, nil
}

// Normalize validates a request and fills defaults: a missing end date means a
// single day, and only work requests keep a destination.
func Normalize(in NewRequest) (NewRequest, error) {
	in.Type = strings.TrimSpace(in.Type)
	in.Destination = strings.TrimSpace(in.Destination)
	in.Reason = strings.TrimSpace(in.Reason)
	if !ValidType(in.Type) {
		return in, ErrInvalidType
	}
	if in.EndDate.IsZero() {
		in.EndDate = in.StartDate
	}
	if in.EndDate.Before(in.StartDate) {
		return in, ErrInvalidRange
	}
	if IsWorkType(in.Type) {
		if in.Destination == "" {
			return in, ErrDestinationNeeded
		}
	} else {
		in.Destination = ""
	}
	return in, nil
}
