package resilience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})

	for i := 0; i < 2; i++ {
		require.NoError(t, b.Allow())
		b.RecordFailure()
	}
	require.Equal(t, CircuitStateClosed, b.State())

	require.NoError(t, b.Allow())
	b.RecordFailure()

	require.Equal(t, CircuitStateOpen, b.State())
	require.ErrorIs(t, b.Allow(), ErrCircuitOpen)
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})
	current := time.Now()
	b.now = func() time.Time { return current }

	require.NoError(t, b.Allow())
	b.RecordFailure()
	require.ErrorIs(t, b.Allow(), ErrCircuitOpen)

	current = current.Add(2 * time.Minute)
	require.NoError(t, b.Allow())
	b.RecordSuccess()
	require.Equal(t, CircuitStateClosed, b.State())
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	t.Parallel()

	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, OpenTimeout: time.Minute, HalfOpenMaxReq: 1})

	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	require.Equal(t, CircuitStateClosed, b.State())
}
