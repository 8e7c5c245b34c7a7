package workflow

import (
	"errors"
	"fmt"
)

// Sentinel errors for workflow violations. Handlers map these to HTTP
// status codes: ErrPermissionDenied -> 403, ErrInvalidTransition -> 409,
// ErrReadOnlyField -> 400.
var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrReadOnlyField     = errors.New("field is read-only in the current state")
)

func permissionDenied(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrPermissionDenied, fmt.Sprintf(format, args...))
}

func invalidTransition(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidTransition, fmt.Sprintf(format, args...))
}

func readOnlyField(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrReadOnlyField, fmt.Sprintf(format, args...))
}
