package domain

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"
)

// TimeData is a value object representing a structured game time: a
// fractional second plus integral minute, hour, day, month, and year,
// each within its declared bounds. Always valid in memory - construct
// via New, FromAbsoluteTime, or the With* setters. The zero value is
// valid (all fields at their minimums) and projects to absolute time 0.
//
// TimeData has no identity beyond its six fields and is freely copyable.
// Two values are conceptually equal iff their absolute-time projections
// differ by less than Tolerance, not iff their fields match exactly; see
// Equal.
type TimeData struct {
	second float64
	minute int
	hour   int
	day    int
	month  int
	year   int
}

// New creates a TimeData from six field values, validating each in order
// second, minute, hour, day, month, year and failing on the first field
// outside its bounds.
func New(second float64, minute, hour, day, month, year int) (TimeData, error) {
	var t TimeData
	var err error
	if t, err = t.WithSecond(second); err != nil {
		return TimeData{}, err
	}
	if t, err = t.WithMinute(minute); err != nil {
		return TimeData{}, err
	}
	if t, err = t.WithHour(hour); err != nil {
		return TimeData{}, err
	}
	if t, err = t.WithDay(day); err != nil {
		return TimeData{}, err
	}
	if t, err = t.WithMonth(month); err != nil {
		return TimeData{}, err
	}
	if t, err = t.WithYear(year); err != nil {
		return TimeData{}, err
	}
	return t, nil
}

// Must creates a TimeData, panicking on invalid input. Use only in tests.
func Must(second float64, minute, hour, day, month, year int) TimeData {
	t, err := New(second, minute, hour, day, month, year)
	if err != nil {
		panic(err)
	}
	return t
}

// FromAbsoluteTime decomposes a non-negative absolute-time scalar
// (seconds) into a structured TimeData: successive truncate-toward-zero
// divisions against seconds-per-year down to seconds-per-minute, largest
// unit first, with the final remainder becoming the fractional second.
//
// Derived values route through the validated setters, so a scalar whose
// year exceeds MaxYear fails with ErrOutOfRange rather than clamping or
// wrapping; the same holds for a negative scalar, whose remainder ends
// up below MinSecond.
func FromAbsoluteTime(scalar float64) (TimeData, error) {
	rem := scalar
	year := math.Trunc(rem / SecondsPerYear)
	rem -= year * SecondsPerYear
	month := math.Trunc(rem / SecondsPerMonth)
	rem -= month * SecondsPerMonth
	day := math.Trunc(rem / SecondsPerDay)
	rem -= day * SecondsPerDay
	hour := math.Trunc(rem / SecondsPerHour)
	rem -= hour * SecondsPerHour
	minute := math.Trunc(rem / SecondsPerMinute)
	rem -= minute * SecondsPerMinute
	return New(rem, int(minute), int(hour), int(day), int(month), int(year))
}

// AbsoluteTime projects the structured value back onto the flat
// absolute-time scalar. Exact algebraic inverse of FromAbsoluteTime up
// to floating-point rounding: round-tripping stays within Tolerance.
func (t TimeData) AbsoluteTime() float64 {
	return t.second +
		float64(t.minute)*SecondsPerMinute +
		float64(t.hour)*SecondsPerHour +
		float64(t.day)*SecondsPerDay +
		float64(t.month)*SecondsPerMonth +
		float64(t.year)*SecondsPerYear
}

// Field accessors.

func (t TimeData) Second() float64 { return t.second }
func (t TimeData) Minute() int     { return t.minute }
func (t TimeData) Hour() int       { return t.hour }
func (t TimeData) Day() int        { return t.day }
func (t TimeData) Month() int      { return t.month }
func (t TimeData) Year() int       { return t.year }

// WithSecond returns a copy with the second replaced, or ErrOutOfRange
// if v is outside [MinSecond, MaxSecond]; the receiver is never mutated.
// The other With* setters follow the same contract for their field.
func (t TimeData) WithSecond(v float64) (TimeData, error) {
	if v < MinSecond || v > MaxSecond {
		return t, outOfRange(FieldSecond, v)
	}
	t.second = v
	return t, nil
}

func (t TimeData) WithMinute(v int) (TimeData, error) {
	if v < MinMinute || v > MaxMinute {
		return t, outOfRange(FieldMinute, float64(v))
	}
	t.minute = v
	return t, nil
}

func (t TimeData) WithHour(v int) (TimeData, error) {
	if v < MinHour || v > MaxHour {
		return t, outOfRange(FieldHour, float64(v))
	}
	t.hour = v
	return t, nil
}

func (t TimeData) WithDay(v int) (TimeData, error) {
	if v < MinDay || v > MaxDay {
		return t, outOfRange(FieldDay, float64(v))
	}
	t.day = v
	return t, nil
}

func (t TimeData) WithMonth(v int) (TimeData, error) {
	if v < MinMonth || v > MaxMonth {
		return t, outOfRange(FieldMonth, float64(v))
	}
	t.month = v
	return t, nil
}

func (t TimeData) WithYear(v int) (TimeData, error) {
	if v < MinYear || v > MaxYear {
		return t, outOfRange(FieldYear, float64(v))
	}
	t.year = v
	return t, nil
}

// Equal reports whether the two values' absolute-time projections differ
// by less than Tolerance.
//
// Equality is tolerance-aware but the ordering methods below are not:
// two values within Tolerance of each other but not bit-identical will
// satisfy Equal while one of Less/Greater also holds on the tiny scalar
// difference. This asymmetry is part of the contract; callers that need
// "strictly before and not equal" must check both.
func (t TimeData) Equal(o TimeData) bool {
	return math.Abs(t.AbsoluteTime()-o.AbsoluteTime()) < Tolerance
}

// Less reports whether t's projection is strictly below o's. Plain scalar
// comparison, no tolerance; see Equal.
func (t TimeData) Less(o TimeData) bool {
	return t.AbsoluteTime() < o.AbsoluteTime()
}

// LessOrEqual reports t <= o on the absolute-time projections.
func (t TimeData) LessOrEqual(o TimeData) bool {
	return t.AbsoluteTime() <= o.AbsoluteTime()
}

// Greater reports t > o on the absolute-time projections.
func (t TimeData) Greater(o TimeData) bool {
	return t.AbsoluteTime() > o.AbsoluteTime()
}

// GreaterOrEqual reports t >= o on the absolute-time projections.
func (t TimeData) GreaterOrEqual(o TimeData) bool {
	return t.AbsoluteTime() >= o.AbsoluteTime()
}

// Compare returns 0 when the values are Equal (within Tolerance), -1
// when t projects strictly below o, and +1 otherwise.
func (t TimeData) Compare(o TimeData) int {
	switch {
	case t.Equal(o):
		return 0
	case t.Less(o):
		return -1
	default:
		return 1
	}
}

// Fingerprint returns a hash that agrees with Equal: the second field is
// quantized by Tolerance (divide and truncate) before being combined
// with the five integral fields, so values within Tolerance of each
// other hash identically whenever they land in the same quantization
// bucket. Values straddling a bucket boundary may compare Equal yet hash
// differently; this is a known limitation of the bucketing scheme.
func (t TimeData) Fingerprint() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	write := func(v uint64) {
		binary.BigEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	write(uint64(int64(t.second / Tolerance)))
	write(uint64(t.minute))
	write(uint64(t.hour))
	write(uint64(t.day))
	write(uint64(t.month))
	write(uint64(t.year))
	return h.Sum64()
}

// Add returns the sum of the two values' projections, decomposed back
// into a structured time. Fails only when the resulting scalar
// decomposes to an out-of-bounds field (ErrOutOfRange propagates).
func (t TimeData) Add(o TimeData) (TimeData, error) {
	return FromAbsoluteTime(t.AbsoluteTime() + o.AbsoluteTime())
}

// Sub returns the difference of the two values' projections. Requires
// t >= o under the plain scalar ordering; a negative duration is not
// representable and fails with ErrInvalidOperation.
func (t TimeData) Sub(o TimeData) (TimeData, error) {
	if t.Less(o) {
		return TimeData{}, fmt.Errorf("cannot subtract a larger time from a smaller one: %w", ErrInvalidOperation)
	}
	return FromAbsoluteTime(t.AbsoluteTime() - o.AbsoluteTime())
}

// String renders the canonical fixed-width display form
// "YYYY-MM-DD HH:MM:SS.ss". Display only; there is no inverse parser.
func (t TimeData) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%05.2f",
		t.year, t.month, t.day, t.hour, t.minute, t.second)
}
