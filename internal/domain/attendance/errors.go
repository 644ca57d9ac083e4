package attendance

import "errors"

var (
	ErrAlreadyClockedOut = errors.New("already clocked out today")
	ErrInvalidTime       = errors.New("time must be HH:MM or HH:MM:SS")
	ErrInvalidMonth      = errors.New("month must be between 1 and 12")
	ErrRecordNotFound    = errors.New("attendance record not found")
)
