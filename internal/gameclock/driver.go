// Package gameclock drives the in-game absolute-time scalar forward
// over wall-clock ticks. It owns the only mutable, time-varying state in
// the system: a non-negative seconds counter advanced once per tick,
// scaled by a clamped rate factor and gated by a pause flag. Conversion
// to and from the structured calendar form is delegated entirely to the
// domain package.
package gameclock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/r4nd0lph-c/Playground2D/internal/domain"
)

// Scale factor clamp range. A scale of 0 freezes game time without
// pausing the tick loop; 144 compresses a full game day into ten wall
// minutes at one tick per second.
const (
	MinScale float64 = 0
	MaxScale float64 = 144
)

// ErrNegativeStart is returned by New when the initial absolute time is
// below zero; absolute time is non-negative by definition.
var ErrNegativeStart = errors.New("initial absolute time must be non-negative")

// Options configures a Driver.
type Options struct {
	// Clock supplies wall time. Defaults to domain.RealClock.
	Clock domain.Clock
	// Logger receives driver lifecycle events. Defaults to slog.Default().
	Logger *slog.Logger
	// Scale is the initial rate factor, clamped to [MinScale, MaxScale].
	Scale float64
	// Paused starts the driver with time advancement gated off.
	Paused bool
	// Start is the initial absolute time in seconds. Must be >= 0.
	Start float64
}

// Driver accumulates the process-wide absolute-time scalar. All state is
// guarded by a single RWMutex: every reader within a tick observes one
// consistent value, never a mid-update intermediate.
type Driver struct {
	clock  domain.Clock
	logger *slog.Logger

	mu       sync.RWMutex
	absolute float64
	scale    float64
	paused   bool
	anchored bool
	anchor   time.Time

	metrics driverMetrics
}

// New creates a Driver from opts.
func New(opts Options) (*Driver, error) {
	if opts.Start < 0 {
		return nil, fmt.Errorf("start %g: %w", opts.Start, ErrNegativeStart)
	}
	clock := opts.Clock
	if clock == nil {
		clock = domain.RealClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	d := &Driver{
		clock:    clock,
		logger:   logger,
		absolute: opts.Start,
		scale:    clampScale(opts.Scale),
		paused:   opts.Paused,
	}
	if err := d.metrics.init(d); err != nil {
		return nil, fmt.Errorf("register gameclock metrics: %w", err)
	}
	return d, nil
}

// Tick advances absolute time by the wall-clock seconds elapsed since
// the previous tick, multiplied by the current scale. The first tick
// only anchors the wall-clock reference. While paused the scalar is left
// untouched but the anchor is still moved forward, so resuming continues
// from the paused value without a jump.
func (d *Driver) Tick() {
	now := d.clock.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.anchored {
		d.anchor = now
		d.anchored = true
		return
	}

	elapsed := now.Sub(d.anchor).Seconds()
	d.anchor = now

	if d.paused {
		return
	}
	d.absolute += elapsed * d.scale
	d.metrics.recordTick()
}

// Run ticks the driver on the given interval until ctx is cancelled.
func (d *Driver) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.logger.Info("game clock running",
		slog.Duration("tick_interval", interval),
		slog.Float64("scale", d.Scale()),
		slog.Bool("paused", d.IsPaused()),
	)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("game clock stopped",
				slog.Float64("absolute_seconds", d.Absolute()),
			)
			return nil
		case <-ticker.C:
			d.Tick()
		}
	}
}

// Absolute returns the current absolute time in seconds.
func (d *Driver) Absolute() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.absolute
}

// Current converts the current absolute time to its structured form.
// Fails with domain.ErrOutOfRange once the accumulated time exceeds the
// calendar's declared year bound.
func (d *Driver) Current() (domain.TimeData, error) {
	return domain.FromAbsoluteTime(d.Absolute())
}

// Pause gates time advancement off. Idempotent.
func (d *Driver) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.paused {
		d.paused = true
		d.logger.Info("game clock paused", slog.Float64("absolute_seconds", d.absolute))
	}
}

// Resume gates time advancement back on. Idempotent.
func (d *Driver) Resume() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.paused {
		d.paused = false
		d.logger.Info("game clock resumed", slog.Float64("absolute_seconds", d.absolute))
	}
}

// IsPaused reports whether advancement is currently gated off.
func (d *Driver) IsPaused() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.paused
}

// SetScale sets the rate factor, clamping it to [MinScale, MaxScale],
// and returns the applied value.
func (d *Driver) SetScale(s float64) float64 {
	clamped := clampScale(s)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scale = clamped
	return clamped
}

// Scale returns the current rate factor.
func (d *Driver) Scale() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.scale
}

func clampScale(s float64) float64 {
	if s < MinScale {
		return MinScale
	}
	if s > MaxScale {
		return MaxScale
	}
	return s
}
