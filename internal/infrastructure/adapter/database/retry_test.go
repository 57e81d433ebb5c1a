package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/logger"
)

var errFlaky = errors.New("flaky")

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxRetries:    attempts,
		RetryInterval: time.Millisecond,
		MaxInterval:   2 * time.Millisecond,
	}
}

func isFlaky(err error) bool { return errors.Is(err, errFlaky) }

func TestRetryOnTransientError(t *testing.T) {
	log := logger.NewNoopLogger()

	t.Run("should retry until success", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetry(4), func() error {
			calls++
			if calls < 3 {
				return errFlaky
			}
			return nil
		}, isFlaky, log)

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("should not retry permanent errors", func(t *testing.T) {
		permanent := errors.New("permanent")
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetry(4), func() error {
			calls++
			return permanent
		}, isFlaky, log)

		assert.ErrorIs(t, err, permanent)
		assert.Equal(t, 1, calls)
	})

	t.Run("should return the last error after exhausting attempts", func(t *testing.T) {
		calls := 0
		err := RetryOnTransientError(context.Background(), fastRetry(3), func() error {
			calls++
			return errFlaky
		}, isFlaky, log)

		assert.ErrorIs(t, err, errFlaky)
		assert.Equal(t, 3, calls)
	})

	t.Run("should stop when context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		err := RetryOnTransientError(ctx, RetryConfig{MaxRetries: 5, RetryInterval: time.Second}, func() error {
			calls++
			cancel()
			return errFlaky
		}, isFlaky, log)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	config := RetryConfig{RetryInterval: 10 * time.Millisecond, MaxInterval: 50 * time.Millisecond}

	assert.Equal(t, 10*time.Millisecond, calculateBackoffWithJitter(0, config))
	assert.Equal(t, 40*time.Millisecond, calculateBackoffWithJitter(2, config))
	assert.Equal(t, 50*time.Millisecond, calculateBackoffWithJitter(6, config))

	config.JitterFactor = 0.5
	backoff := calculateBackoffWithJitter(0, config)
	assert.GreaterOrEqual(t, backoff, 10*time.Millisecond)
	assert.LessOrEqual(t, backoff, 15*time.Millisecond)
}
