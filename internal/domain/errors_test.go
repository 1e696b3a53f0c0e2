package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/r4nd0lph-c/Playground2D/internal/domain"
)

func TestSentinelsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(domain.ErrOutOfRange, domain.ErrInvalidOperation))
	assert.False(t, errors.Is(domain.ErrInvalidOperation, domain.ErrOutOfRange))
}

func TestRangeViolationWrapsSentinel(t *testing.T) {
	_, err := domain.New(0, 0, 25, 0, 0, 0)
	require.Error(t, err)

	// errors.Is matching through the wrapped message, never string
	// comparison at call sites.
	assert.ErrorIs(t, err, domain.ErrOutOfRange)
	assert.NotErrorIs(t, err, domain.ErrInvalidOperation)
	assert.ErrorContains(t, err, "hour 25 out of range [0, 24]")
}

func TestInvalidOperationWrapsSentinel(t *testing.T) {
	smaller := domain.Must(0, 0, 0, 0, 0, 1)
	larger := domain.Must(0, 0, 0, 0, 0, 2)

	_, err := smaller.Sub(larger)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidOperation)
	assert.NotErrorIs(t, err, domain.ErrOutOfRange)
	assert.ErrorContains(t, err, "cannot subtract a larger time from a smaller one")
}
