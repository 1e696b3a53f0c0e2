package domain

import "time"

// Clock provides wall-clock time to the layers that drive the game
// clock forward. The domain defines the interface; the driver injects an
// implementation, real in production and deterministic in tests. The
// core conversion logic never reads a Clock.
type Clock interface {
	// Now returns the current wall-clock time.
	Now() time.Time
	// Since returns the elapsed wall-clock time since t.
	Since(t time.Time) time.Duration
}

// RealClock implements Clock using the system clock.
// Zero-allocation implementation (empty struct).
type RealClock struct{}

func (RealClock) Now() time.Time                   { return time.Now() }
func (RealClock) Since(t time.Time) time.Duration { return time.Since(t) }

// Ensure RealClock implements Clock at compile time.
var _ Clock = RealClock{}
