package domain

import "errors"

// Failure taxonomy shared by the services and mapped to HTTP reason codes in
// the api package. Ownership failures are deliberately reported as
// ErrNotFound so callers cannot probe which applications exist.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("administrator access required")
	ErrNotFound        = errors.New("application not found")
	ErrInvalidState    = errors.New("operation not allowed in current status")
	ErrSlotUnavailable = errors.New("slot is not available")
	ErrSlotBooked      = errors.New("slot is currently booked")
)

// ValidationError reports missing or malformed input. No mutation is
// attempted once one is raised.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
