package dimension

import (
	"errors"
	"fmt"
)

// Validation errors, raised by the strict parsers.
var (
	ErrInvalidUnit            = errors.New("invalid unit")
	ErrInvalidDimensionString = errors.New("invalid dimension")
)

// Arithmetic errors, raised by the strict algebra.
var (
	ErrInvalidOperation   = errors.New("invalid operation")
	ErrIncompatibleUnits  = errors.New("incompatible units")
	ErrUnresolvedFraction = errors.New("unresolved fraction")
)

// ValidationError reports a stored or typed value that failed validation.
// Err is one of the package sentinels so callers can match with errors.Is.
type ValidationError struct {
	Err    error
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v '%s': %s", e.Err, e.Value, e.Reason)
	}
	return fmt.Sprintf("%v '%s'", e.Err, e.Value)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(err error, value, reason string) error {
	return &ValidationError{Err: err, Value: value, Reason: reason}
}
