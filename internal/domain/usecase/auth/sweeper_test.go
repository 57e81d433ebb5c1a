package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/bank-portal/mocks/port/core"
	"github.com/amirhossein-jamali/bank-portal/mocks/port/persistence"
)

func TestSessionSweeper(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*SessionSweeper, *persistence.MockSessionRepository, *core.MockLogger) {
		sessions := persistence.NewMockSessionRepository(t)
		tp := core.NewMockTimeProvider(t)
		tp.EXPECT().Now().Return(now).Maybe()
		logger := core.NewMockLogger(t)
		logger.On("Info", mock.Anything, mock.Anything).Maybe()
		logger.On("Error", mock.Anything, mock.Anything).Maybe()
		return NewSessionSweeper(sessions, tp, logger), sessions, logger
	}

	t.Run("should delete sessions expired before now", func(t *testing.T) {
		sweeper, sessions, _ := setup(t)
		sessions.On("DeleteExpired", mock.Anything, now).Return(int64(3), nil).Once()

		removed, err := sweeper.SweepOnce(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(3), removed)
	})

	t.Run("should keep running after a failed sweep and stop on cancel", func(t *testing.T) {
		sweeper, sessions, logger := setup(t)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		swept := make(chan struct{}, 4)
		sessions.On("DeleteExpired", mock.Anything, now).
			Return(int64(0), errors.New("db down")).
			Run(func(mock.Arguments) {
				select {
				case swept <- struct{}{}:
				default:
				}
			})

		done := make(chan error, 1)
		go func() { done <- sweeper.Run(ctx, 5*time.Millisecond) }()

		<-swept
		<-swept
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(time.Second):
			t.Fatal("sweeper did not stop")
		}
		logger.AssertCalled(t, "Error", "Session sweep failed", mock.Anything)
	})
}
