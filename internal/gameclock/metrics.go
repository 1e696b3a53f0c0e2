package gameclock

import (
	"context"

	"go.opentelemetry.io/otel/metric"

	"github.com/r4nd0lph-c/Playground2D/internal/observability"
)

// driverMetrics holds the driver's OTel instruments: a counter of
// advancing ticks and an observable gauge of the absolute-time scalar.
type driverMetrics struct {
	ticks metric.Int64Counter
}

func (m *driverMetrics) init(d *Driver) error {
	meter := observability.Meter("gameclock")

	ticks, err := meter.Int64Counter("gameclock.ticks",
		metric.WithDescription("Number of ticks that advanced game time"),
	)
	if err != nil {
		return err
	}
	m.ticks = ticks

	_, err = meter.Float64ObservableGauge("gameclock.absolute_seconds",
		metric.WithDescription("Current absolute game time in seconds"),
		metric.WithUnit("s"),
		metric.WithFloat64Callback(func(_ context.Context, o metric.Float64Observer) error {
			o.Observe(d.Absolute())
			return nil
		}),
	)
	return err
}

// recordTick is called with the driver lock held; the counter add does
// not read driver state.
func (m *driverMetrics) recordTick() {
	m.ticks.Add(context.Background(), 1)
}
