package core

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrPositionNotFound     = errors.New("position not found")
	ErrEmailDomainNotFound  = errors.New("email domain not found")
	ErrDuplicateDepartment  = errors.New("department name or code already exists")
	ErrDuplicatePosition    = errors.New("position already exists")
	ErrDuplicateEmailDomain = errors.New("email domain already exists")
	ErrDepartmentInUse      = errors.New("department still has active employees")
	ErrPositionInUse        = errors.New("position still has active employees")
	ErrUnknownDepartment    = errors.New("unknown department")
	ErrUnknownPosition      = errors.New("unknown position")
	ErrInvalidEmployeeID    = errors.New("invalid employee id")
	ErrSequenceExhausted    = errors.New("employee id sequence exhausted")
	ErrAlreadyTerminated    = errors.New("employee already terminated")
	ErrAlreadyActive        = errors.New("employee already active")
	ErrInvalidRole          = errors.New("role must be admin or user")
)

// LookupError reports a department or position name that does not exist,
// with the closest known name when one is similar enough.
type LookupError struct {
	Field      string
	Value      string
	Suggestion string
	kind       error
}

func (e *LookupError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%s %q not found, did you mean %q?", e.Field, e.Value, e.Suggestion)
	}
	return fmt.Sprintf("%s %q not found", e.Field, e.Value)
}

func (e *LookupError) Unwrap() error {
	return e.kind
}
