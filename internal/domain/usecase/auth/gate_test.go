package auth

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
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/bank-portal/mocks/port/core"
	"github.com/amirhossein-jamali/bank-portal/mocks/port/persistence"
	"github.com/amirhossein-jamali/bank-portal/mocks/port/security"
)

type gateMocks struct {
	signer       *security.MockSessionTokenSigner
	sessions     *persistence.MockSessionRepository
	timeProvider *core.MockTimeProvider
	logger       *core.MockLogger
}

var gateNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newGate(t *testing.T) (*Gate, *gateMocks) {
	m := &gateMocks{
		signer:       security.NewMockSessionTokenSigner(t),
		sessions:     persistence.NewMockSessionRepository(t),
		timeProvider: core.NewMockTimeProvider(t),
		logger:       core.NewMockLogger(t),
	}
	m.timeProvider.EXPECT().Now().Return(gateNow).Maybe()
	m.logger.On("Debug", mock.Anything, mock.Anything).Maybe()
	m.logger.On("Warn", mock.Anything, mock.Anything).Maybe()
	return NewGate(m.signer, m.sessions, m.timeProvider, m.logger), m
}

func liveSession(user *entity.User, expiresAt time.Time) *entity.Session {
	return &entity.Session{Token: "tok", UserID: user.ID, ExpiresAt: expiresAt, User: user}
}

func TestGate_Authenticate(t *testing.T) {
	ctx := context.Background()
	alice := &entity.User{ID: "u-1", Email: "alice@example.com", Role: entity.RoleCustomer, IsActive: true}

	t.Run("should accept a valid signed token without touching sessions", func(t *testing.T) {
		gate, m := newGate(t)
		want := alice.Principal()
		m.signer.On("Verify", "signed").Return(&want, nil).Once()

		got, err := gate.Authenticate(ctx, usecase.Credentials{SignedToken: "signed", AccessToken: "tok"})

		require.NoError(t, err)
		assert.Equal(t, want, *got)
		m.sessions.AssertNotCalled(t, "FindByToken", mock.Anything, mock.Anything)
	})

	t.Run("should fall back to the bearer token when the cookie is bad", func(t *testing.T) {
		gate, m := newGate(t)
		m.signer.On("Verify", "forged").Return(nil, errs.ErrInvalidToken).Once()
		m.sessions.On("FindByToken", ctx, "tok").Return(liveSession(alice, gateNow.Add(time.Hour)), nil).Once()

		got, err := gate.Authenticate(ctx, usecase.Credentials{SignedToken: "forged", AccessToken: " tok "})

		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.UserID)
	})

	t.Run("should report a missing token", func(t *testing.T) {
		gate, _ := newGate(t)

		_, err := gate.Authenticate(ctx, usecase.Credentials{})

		assert.ErrorIs(t, err, errs.ErrNoAuthToken)
	})

	t.Run("should report a bad cookie with no bearer as missing", func(t *testing.T) {
		gate, m := newGate(t)
		m.signer.On("Verify", "forged").Return(nil, errs.ErrInvalidToken).Once()

		_, err := gate.Authenticate(ctx, usecase.Credentials{SignedToken: "forged"})

		assert.ErrorIs(t, err, errs.ErrNoAuthToken)
	})

	t.Run("should reject unknown access tokens", func(t *testing.T) {
		gate, m := newGate(t)
		m.sessions.On("FindByToken", ctx, "tok").Return(nil, errs.ErrSessionNotFound).Once()

		_, err := gate.Authenticate(ctx, usecase.Credentials{AccessToken: "tok"})

		assert.ErrorIs(t, err, errs.ErrInvalidAccessToken)
		assert.Equal(t, "invalid access token", err.Error())
	})

	t.Run("should delete expired sessions", func(t *testing.T) {
		gate, m := newGate(t)
		m.sessions.On("FindByToken", ctx, "tok").Return(liveSession(alice, gateNow.Add(-time.Second)), nil).Once()
		m.sessions.On("Delete", ctx, "tok").Return(nil).Once()

		_, err := gate.Authenticate(ctx, usecase.Credentials{AccessToken: "tok"})

		assert.ErrorIs(t, err, errs.ErrAccessTokenExpired)
	})

	t.Run("should not surface a failed cleanup of an expired session", func(t *testing.T) {
		gate, m := newGate(t)
		m.sessions.On("FindByToken", ctx, "tok").Return(liveSession(alice, gateNow.Add(-time.Second)), nil).Once()
		m.sessions.On("Delete", ctx, "tok").Return(errors.New("db down")).Once()

		_, err := gate.Authenticate(ctx, usecase.Credentials{AccessToken: "tok"})

		assert.ErrorIs(t, err, errs.ErrAccessTokenExpired)
		m.logger.AssertCalled(t, "Warn", "Failed to delete expired session", mock.Anything)
	})

	t.Run("should reject sessions of deactivated users with 401", func(t *testing.T) {
		gate, m := newGate(t)
		inactive := *alice
		inactive.IsActive = false
		m.sessions.On("FindByToken", ctx, "tok").Return(liveSession(&inactive, gateNow.Add(time.Hour)), nil).Once()

		_, err := gate.Authenticate(ctx, usecase.Credentials{AccessToken: "tok"})

		assert.ErrorIs(t, err, errs.ErrSessionDeactivated)
		assert.Equal(t, 401, errs.HTTPStatus(err))
	})

	t.Run("should pass through infrastructure errors", func(t *testing.T) {
		gate, m := newGate(t)
		m.sessions.On("FindByToken", ctx, "tok").Return(nil, errs.ErrDatabaseConnection).Once()

		_, err := gate.Authenticate(ctx, usecase.Credentials{AccessToken: "tok"})

		assert.ErrorIs(t, err, errs.ErrDatabaseConnection)
	})
}
