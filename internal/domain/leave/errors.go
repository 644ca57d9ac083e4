package leave

import "errors"

var (
	ErrRequestNotFound   = errors.New("request not found")
	ErrRequestNotPending = errors.New("request already decided")
	ErrInvalidType       = errors.New("unknown request type")
	ErrInvalidRange      = errors.New("end date before start date")
	ErrDestinationNeeded = errors.New("destination required for work requests")
	ErrForbidden         = errors.New("forbidden")
)
