package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain error conditions.
// Use errors.Is() for matching - never compare error strings.
var (
	// ErrOutOfRange is returned when a calendar field value falls outside
	// its declared [min, max] bounds. The wrapped message names the field,
	// the offending value, and the violated bound. Non-recoverable at the
	// point of construction - the caller must supply a corrected value.
	ErrOutOfRange = errors.New("field value out of range")

	// ErrInvalidOperation is returned by subtraction when the minuend is
	// ordered before the subtrahend. Negative durations are not
	// representable; this signals a logic error at the call site, not a
	// recoverable runtime condition.
	ErrInvalidOperation = errors.New("invalid time operation")
)

// outOfRange builds the RangeViolation error for a field, preserving the
// violated bound in the message.
func outOfRange(f Field, value float64) error {
	min, max := FieldBounds(f)
	return fmt.Errorf("%s %g out of range [%g, %g]: %w", f, value, min, max, ErrOutOfRange)
}
