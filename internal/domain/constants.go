// Package domain contains the pure game-time logic and types.
// No I/O, no logging, no external dependencies - every operation is a
// total function of its inputs except where documented as fallible.
package domain

// Unit bounds, inclusive on both ends. Note the upper bounds equal the
// next unit's rollover point: second == 60 and minute == 60 are both
// valid, so "60 minutes of hour N" and "0 minutes of hour N+1" are
// independently constructible values that do not compare equal until
// the carry is performed. This is an inherited boundary quirk of the
// calendar design, kept as-is.
const (
	MinSecond float64 = 0
	MaxSecond float64 = 60

	MinMinute, MaxMinute = 0, 60
	MinHour, MaxHour     = 0, 24
	MinDay, MaxDay       = 0, 30
	MinMonth, MaxMonth   = 0, 12
	MinYear, MaxYear     = 0, 1000
)

// Seconds-per-unit multipliers, derived from the fixed non-Gregorian
// unit sizes (60/60/24/30/12). If the bounds above ever become
// configurable, these must be recomputed together, never independently.
const (
	SecondsPerMinute float64 = 60
	SecondsPerHour           = SecondsPerMinute * 60
	SecondsPerDay            = SecondsPerHour * 24
	SecondsPerMonth          = SecondsPerDay * 30
	SecondsPerYear           = SecondsPerMonth * 12
)

// Tolerance is the maximum absolute difference between two absolute-time
// scalars for them to be considered equal (one millisecond).
const Tolerance = 1e-3

// Field identifies one of the six calendar fields of a TimeData.
type Field string

const (
	FieldSecond Field = "second"
	FieldMinute Field = "minute"
	FieldHour   Field = "hour"
	FieldDay    Field = "day"
	FieldMonth  Field = "month"
	FieldYear   Field = "year"
)

// FieldBounds returns the inclusive [min, max] range for a field.
// Field is a closed set; an unknown value is a programming error and
// panics rather than masquerading as a degenerate [0, 0] bound.
func FieldBounds(f Field) (min, max float64) {
	switch f {
	case FieldSecond:
		return MinSecond, MaxSecond
	case FieldMinute:
		return float64(MinMinute), float64(MaxMinute)
	case FieldHour:
		return float64(MinHour), float64(MaxHour)
	case FieldDay:
		return float64(MinDay), float64(MaxDay)
	case FieldMonth:
		return float64(MinMonth), float64(MaxMonth)
	case FieldYear:
		return float64(MinYear), float64(MaxYear)
	default:
		panic("unknown calendar field: " + string(f))
	}
}
