package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	"github.com/amirhossein-jamali/bank-portal/mocks/port/core"
	"github.com/amirhossein-jamali/bank-portal/mocks/port/persistence"
	"github.com/amirhossein-jamali/bank-portal/mocks/port/security"
)

func TestService_openSession(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	user := &entity.User{ID: "u-1", Email: "bob@example.com", Role: entity.RoleBanker, IsActive: true}

	setup := func(t *testing.T) (*Service, *persistence.MockSessionRepository, *security.MockAccessTokenGenerator, *security.MockSessionTokenSigner) {
		sessions := persistence.NewMockSessionRepository(t)
		tokens := security.NewMockAccessTokenGenerator(t)
		signer := security.NewMockSessionTokenSigner(t)
		tp := core.NewMockTimeProvider(t)
		tp.EXPECT().Now().Return(now).Maybe()
		logger := core.NewMockLogger(t)
		logger.On("Info", mock.Anything, mock.Anything).Maybe()
		logger.On("Warn", mock.Anything, mock.Anything).Maybe()

		svc := NewAuthService(persistence.NewMockUnitOfWork(t), sessions, security.NewMockPasswordHasher(t), signer, tokens, Settings{}, tp, logger)
		return svc, sessions, tokens, signer
	}

	t.Run("should regenerate the token on collision", func(t *testing.T) {
		svc, sessions, tokens, signer := setup(t)
		tokens.On("Generate").Return("taken", nil).Once()
		tokens.On("Generate").Return("fresh", nil).Once()
		sessions.On("Create", ctx, mock.MatchedBy(func(s *entity.Session) bool { return s.Token == "taken" })).Return(errs.ErrDuplicateKey).Once()
		sessions.On("Create", ctx, mock.MatchedBy(func(s *entity.Session) bool { return s.Token == "fresh" })).Return(nil).Once()
		signer.On("Issue", user.Principal()).Return("jwt", now.Add(7*24*time.Hour), nil).Once()

		result, err := svc.openSession(ctx, user)

		require.NoError(t, err)
		assert.Equal(t, "fresh", result.Tokens.AccessToken)
		assert.Equal(t, now.Add(DefaultAccessTokenTTL), result.Tokens.ExpiresAt)
	})

	t.Run("should stop after three collisions", func(t *testing.T) {
		svc, sessions, tokens, _ := setup(t)
		tokens.On("Generate").Return("taken", nil).Times(maxSessionTokenAttempts)
		sessions.On("Create", ctx, mock.Anything).Return(errs.ErrDuplicateKey).Times(maxSessionTokenAttempts)

		_, err := svc.openSession(ctx, user)

		assert.ErrorIs(t, err, errs.ErrDuplicateKey)
	})
}
