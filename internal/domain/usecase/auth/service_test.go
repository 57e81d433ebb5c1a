package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/bank-portal/mocks/port/core"
	"github.com/amirhossein-jamali/bank-portal/mocks/port/persistence"
	"github.com/amirhossein-jamali/bank-portal/mocks/port/security"
)

type serviceMocks struct {
	uow      *persistence.MockUnitOfWork
	users    *persistence.MockUserRepository
	accounts *persistence.MockAccountRepository
	sessions *persistence.MockSessionRepository
	hasher   *security.MockPasswordHasher
}

func newMockedService(t *testing.T) (*Service, serviceMocks) {
	m := serviceMocks{
		uow:      persistence.NewMockUnitOfWork(t),
		users:    persistence.NewMockUserRepository(t),
		accounts: persistence.NewMockAccountRepository(t),
		sessions: persistence.NewMockSessionRepository(t),
		hasher:   security.NewMockPasswordHasher(t),
	}
	m.uow.On("GetUserRepository", mock.Anything).Return(m.users).Maybe()
	m.uow.On("GetAccountRepository", mock.Anything).Return(m.accounts).Maybe()

	tp := core.NewMockTimeProvider(t)
	tp.EXPECT().Now().Return(time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)).Maybe()
	logger := core.NewMockLogger(t)
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	logger.On("Warn", mock.Anything, mock.Anything).Maybe()

	svc := NewAuthService(m.uow, m.sessions, m.hasher, security.NewMockSessionTokenSigner(t),
		security.NewMockAccessTokenGenerator(t), Settings{}, tp, logger)
	return svc, m
}

func TestService_Register_InsertRace(t *testing.T) {
	ctx := context.Background()
	req := usecase.RegisterRequest{
		Email:     "Alice@Example.com",
		Username:  "alice",
		Password:  "Password1",
		FirstName: "Alice",
		LastName:  "Smith",
	}

	t.Run("should report the email when a concurrent insert took it", func(t *testing.T) {
		svc, m := newMockedService(t)
		m.users.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil).Once()
		m.users.On("ExistsByUsername", ctx, "alice").Return(false, nil).Once()
		m.hasher.On("Hash", "Password1").Return("hashed", nil).Once()
		m.uow.On("Execute", ctx, mock.Anything).Return(errs.ErrDuplicateKey).Once()
		m.users.On("ExistsByEmail", ctx, "alice@example.com").Return(true, nil).Once()

		user, err := svc.Register(ctx, req)

		assert.Nil(t, user)
		assert.ErrorIs(t, err, errs.ErrEmailTaken)
	})

	t.Run("should report the username when the email is still free", func(t *testing.T) {
		svc, m := newMockedService(t)
		m.users.On("ExistsByEmail", ctx, "alice@example.com").Return(false, nil).Twice()
		m.users.On("ExistsByUsername", ctx, "alice").Return(false, nil).Once()
		m.hasher.On("Hash", "Password1").Return("hashed", nil).Once()
		m.uow.On("Execute", ctx, mock.Anything).Return(errs.ErrDuplicateKey).Once()

		_, err := svc.Register(ctx, req)

		assert.ErrorIs(t, err, errs.ErrUsernameTaken)
	})
}

func TestService_Login_AccountFailure(t *testing.T) {
	ctx := context.Background()

	t.Run("should not open a session when the account cannot be created", func(t *testing.T) {
		svc, m := newMockedService(t)
		customer := &entity.User{ID: "u-1", Email: "alice@example.com", PasswordHash: "hashed", Role: entity.RoleCustomer, IsActive: true}
		m.users.On("GetByEmail", ctx, "alice@example.com").Return(customer, nil).Once()
		m.hasher.On("Verify", "Password1", "hashed").Return(true).Once()
		m.accounts.On("ListByUser", ctx, "u-1").Return(nil, nil).Once()
		m.uow.On("Execute", ctx, mock.Anything).Return(errors.New("db down")).Once()

		result, err := svc.Login(ctx, usecase.LoginRequest{Email: "alice@example.com", Password: "Password1"})

		assert.Nil(t, result)
		assert.EqualError(t, err, "db down")
		m.sessions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}
