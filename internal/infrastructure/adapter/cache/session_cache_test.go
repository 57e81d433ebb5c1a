package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/logger"
	persistencemocks "github.com/amirhossein-jamali/bank-portal/mocks/port/persistence"
)

func newTestCache(t *testing.T, next *persistencemocks.MockSessionRepository) *SessionCache {
	t.Helper()
	c, err := NewSessionCache(context.Background(), next, time.Minute, logger.NewNoopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func testSession() *entity.Session {
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	session := entity.NewSession("user-1", "token-1", created, 24*time.Hour)
	session.User = &entity.User{ID: "user-1", Email: "jane@example.com", Role: entity.RoleCustomer, IsActive: true}
	return session
}

func TestSessionCache_FindByToken(t *testing.T) {
	ctx := context.Background()

	t.Run("should hit the repository once per token", func(t *testing.T) {
		next := persistencemocks.NewMockSessionRepository(t)
		c := newTestCache(t, next)
		session := testSession()
		next.On("FindByToken", mock.Anything, "token-1").Return(session, nil).Once()

		first, err := c.FindByToken(ctx, "token-1")
		require.NoError(t, err)
		second, err := c.FindByToken(ctx, "token-1")
		require.NoError(t, err)

		assert.Equal(t, session.UserID, second.UserID)
		assert.True(t, second.ExpiresAt.Equal(first.ExpiresAt))
		require.NotNil(t, second.User)
		assert.Equal(t, entity.RoleCustomer, second.User.Role)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("should not cache misses", func(t *testing.T) {
		next := persistencemocks.NewMockSessionRepository(t)
		c := newTestCache(t, next)
		next.On("FindByToken", mock.Anything, "missing").Return(nil, errs.ErrSessionNotFound).Twice()

		for i := 0; i < 2; i++ {
			_, err := c.FindByToken(ctx, "missing")
			assert.ErrorIs(t, err, errs.ErrSessionNotFound)
		}
		assert.Equal(t, 0, c.Len())
	})
}

func TestSessionCache_Invalidation(t *testing.T) {
	ctx := context.Background()

	t.Run("should evict on delete", func(t *testing.T) {
		next := persistencemocks.NewMockSessionRepository(t)
		c := newTestCache(t, next)
		next.On("FindByToken", mock.Anything, "token-1").Return(testSession(), nil).Once()
		next.On("Delete", mock.Anything, "token-1").Return(nil).Once()
		next.On("FindByToken", mock.Anything, "token-1").Return(nil, errs.ErrSessionNotFound).Once()

		_, err := c.FindByToken(ctx, "token-1")
		require.NoError(t, err)
		require.NoError(t, c.Delete(ctx, "token-1"))

		_, err = c.FindByToken(ctx, "token-1")
		assert.ErrorIs(t, err, errs.ErrSessionNotFound)
	})

	t.Run("should not store a load that overlaps a delete", func(t *testing.T) {
		next := persistencemocks.NewMockSessionRepository(t)
		c := newTestCache(t, next)
		loading := make(chan struct{})
		release := make(chan struct{})
		next.On("FindByToken", mock.Anything, "token-1").
			Run(func(mock.Arguments) {
				close(loading)
				<-release
			}).
			Return(testSession(), nil).Once()
		next.On("Delete", mock.Anything, "token-1").Return(nil).Once()
		next.On("FindByToken", mock.Anything, "token-1").Return(nil, errs.ErrSessionNotFound).Once()

		done := make(chan error, 1)
		go func() {
			_, err := c.FindByToken(ctx, "token-1")
			done <- err
		}()

		<-loading
		require.NoError(t, c.Delete(ctx, "token-1"))
		close(release)
		require.NoError(t, <-done)

		assert.Equal(t, 0, c.Len())
		_, err := c.FindByToken(ctx, "token-1")
		assert.ErrorIs(t, err, errs.ErrSessionNotFound)
	})

	t.Run("should reset on delete all and propagate errors", func(t *testing.T) {
		next := persistencemocks.NewMockSessionRepository(t)
		c := newTestCache(t, next)
		next.On("FindByToken", mock.Anything, "token-1").Return(testSession(), nil).Once()
		next.On("DeleteAllForUser", mock.Anything, "user-1").Return(int64(0), errors.New("db down")).Once()

		_, err := c.FindByToken(ctx, "token-1")
		require.NoError(t, err)

		_, err = c.DeleteAllForUser(ctx, "user-1")
		assert.Error(t, err)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("should pass creates and sweeps through", func(t *testing.T) {
		next := persistencemocks.NewMockSessionRepository(t)
		c := newTestCache(t, next)
		session := testSession()
		now := time.Now()
		next.On("Create", mock.Anything, session).Return(nil).Once()
		next.On("DeleteExpired", mock.Anything, now).Return(int64(3), nil).Once()

		require.NoError(t, c.Create(ctx, session))
		removed, err := c.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(3), removed)
	})
}
