package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/r4nd0lph-c/Playground2D/internal/domain"
	"github.com/r4nd0lph-c/Playground2D/internal/domain/domaintest"
)

func TestRealClock(t *testing.T) {
	t.Run("returns current time", func(t *testing.T) {
		clock := domain.RealClock{}
		before := time.Now()
		got := clock.Now()
		after := time.Now()

		assert.False(t, got.Before(before), "clock.Now() should not be before reference time")
		assert.False(t, got.After(after), "clock.Now() should not be after reference time")
	})

	t.Run("since measures elapsed time", func(t *testing.T) {
		clock := domain.RealClock{}
		start := clock.Now()
		assert.GreaterOrEqual(t, clock.Since(start), time.Duration(0))
	})
}

func TestFakeClock(t *testing.T) {
	fixedTime := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	t.Run("returns fixed time", func(t *testing.T) {
		clock := domaintest.NewFakeClock(fixedTime)
		assert.True(t, clock.Now().Equal(fixedTime))
	})

	t.Run("advance moves time forward", func(t *testing.T) {
		clock := domaintest.NewFakeClock(fixedTime)
		clock.Advance(90 * time.Second)

		expected := fixedTime.Add(90 * time.Second)
		assert.True(t, clock.Now().Equal(expected))
	})

	t.Run("set changes time", func(t *testing.T) {
		clock := domaintest.NewFakeClock(fixedTime)
		newTime := time.Date(2026, 12, 24, 18, 0, 0, 0, time.UTC)
		clock.Set(newTime)

		assert.True(t, clock.Now().Equal(newTime))
	})

	t.Run("since measures against fake time", func(t *testing.T) {
		clock := domaintest.NewFakeClock(fixedTime)
		start := clock.Now()
		clock.Advance(3 * time.Second)

		assert.Equal(t, 3*time.Second, clock.Since(start))
	})
}
