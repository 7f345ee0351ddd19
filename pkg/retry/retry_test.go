package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/swimstore/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func TestDo(t *testing.T) {
	cfg := func(attempts int) retry.Config {
		return retry.Config{
			MaxAttempts: attempts,
			Backoff:     retry.ConstantBackoff(time.Millisecond),
		}
	}

	t.Run("SucceedsAfterRetries", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(), cfg(3), func() error {
			calls++
			if calls < 3 {
				return errTransient
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		var calls int
		err := retry.Do(t.Context(), cfg(3), func() error {
			calls++
			return errTransient
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errTransient)
		assert.Equal(t, 3, calls)
	})

	t.Run("NonRetryableStopsEarly", func(t *testing.T) {
		permanent := errors.New("permanent")
		c := cfg(5)
		c.ShouldRetry = func(err error) bool {
			return !errors.Is(err, permanent)
		}

		var calls int
		err := retry.Do(t.Context(), c, func() error {
			calls++
			return permanent
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := retry.Do(ctx, cfg(3), func() error { return nil })
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDoWithResult(t *testing.T) {
	t.Run("ReturnsResult", func(t *testing.T) {
		got, err := retry.DoWithResult(
			t.Context(),
			retry.Config{MaxAttempts: 1},
			func() (int, error) { return 42, nil },
		)
		require.NoError(t, err)
		assert.Equal(t, 42, got)
	})
}
