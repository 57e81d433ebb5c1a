package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/security"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/usecase"
)

// maxSessionTokenAttempts bounds regeneration when a fresh access token collides
const maxSessionTokenAttempts = 3

// DefaultAccessTokenTTL is the lifetime of an opaque session
const DefaultAccessTokenTTL = 24 * time.Hour

// Settings are the tunables of the auth service
type Settings struct {
	AccessTokenTTL         time.Duration
	AllowStaffRegistration bool
}

// Service implements registration, login and logout
type Service struct {
	uow          persistence.UnitOfWork
	sessions     persistence.SessionRepository
	hasher       security.PasswordHasher
	signer       security.SessionTokenSigner
	tokens       security.AccessTokenGenerator
	numbers      *AccountNumberGenerator
	validator    *CredentialValidator
	settings     Settings
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAuthService creates a new auth service. sessions may be a cached decorator;
// writes that must commit with other rows go through uow instead.
func NewAuthService(
	uow persistence.UnitOfWork,
	sessions persistence.SessionRepository,
	hasher security.PasswordHasher,
	signer security.SessionTokenSigner,
	tokens security.AccessTokenGenerator,
	settings Settings,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	if settings.AccessTokenTTL <= 0 {
		settings.AccessTokenTTL = DefaultAccessTokenTTL
	}
	return &Service{
		uow:          uow,
		sessions:     sessions,
		hasher:       hasher,
		signer:       signer,
		tokens:       tokens,
		numbers:      NewAccountNumberGenerator(),
		validator:    NewCredentialValidator(),
		settings:     settings,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.AuthUseCase = (*Service)(nil)

// Register creates a user and, for customers, a CHECKING account in the same transaction
func (s *Service) Register(ctx context.Context, req usecase.RegisterRequest) (*entity.User, error) {
	if err := s.validator.ValidateRegistration(req); err != nil {
		return nil, err
	}

	role := entity.RoleCustomer
	if strings.TrimSpace(req.Role) != "" {
		parsed, err := entity.ParseRole(req.Role)
		if err != nil {
			return nil, err
		}
		role = parsed
	}
	if role.IsStaff() && !s.settings.AllowStaffRegistration {
		return nil, errs.WithMessage(errs.ErrAccessDenied, "staff accounts cannot be self-registered")
	}

	users := s.uow.GetUserRepository(ctx)
	email := entity.NormalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)

	taken, err := users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.ErrEmailTaken
	}
	if username != "" {
		taken, err = users.ExistsByUsername(ctx, username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, errs.ErrUsernameTaken
		}
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", map[string]any{"error": err.Error()})
		return nil, errs.ErrInternalServer
	}

	user, err := entity.NewUser(email, username, hash, req.FirstName, req.LastName, role, s.timeProvider)
	if err != nil {
		return nil, err
	}

	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		if err := s.uow.GetUserRepository(txCtx).Create(txCtx, user); err != nil {
			return err
		}
		if role == entity.RoleCustomer {
			_, err := s.openAccount(txCtx, user.ID)
			return err
		}
		return nil
	})
	if err != nil {
		// A concurrent registration won the race between the existence check and the insert
		if errs.IsDuplicateKeyError(err) {
			return nil, s.duplicateCause(ctx, email)
		}
		return nil, err
	}

	s.logger.Info("User registered", map[string]any{
		"user_id": user.ID,
		"role":    string(user.Role),
	})
	return user, nil
}

func (s *Service) duplicateCause(ctx context.Context, email string) error {
	if taken, err := s.uow.GetUserRepository(ctx).ExistsByEmail(ctx, email); err == nil && taken {
		return errs.ErrEmailTaken
	}
	return errs.ErrUsernameTaken
}

// openAccount creates a CHECKING account with a fresh number using repositories bound to ctx
func (s *Service) openAccount(ctx context.Context, userID string) (*entity.Account, error) {
	accounts := s.uow.GetAccountRepository(ctx)

	number, err := s.numbers.Next(ctx, accounts)
	if err != nil {
		return nil, err
	}
	account, err := entity.NewAccount(userID, number, entity.AccountTypeChecking, s.timeProvider)
	if err != nil {
		return nil, err
	}
	if err := accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("Account opened", map[string]any{
		"user_id":        userID,
		"account_id":     account.ID,
		"account_number": account.AccountNumber,
	})
	return account, nil
}

// Login authenticates any role. A requested role other than CUSTOMER must match the user's role.
func (s *Service) Login(ctx context.Context, req usecase.LoginRequest) (*usecase.LoginResult, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	if requested := strings.TrimSpace(req.Role); requested != "" {
		role, err := entity.ParseRole(requested)
		if err != nil {
			return nil, err
		}
		if role != entity.RoleCustomer && role != user.Role {
			s.logger.Warn("Login role mismatch", map[string]any{"user_id": user.ID, "requested_role": string(role)})
			return nil, errs.WithMessage(errs.ErrAccessDenied, "access denied for the requested role")
		}
	}

	var accounts []entity.Account
	if user.Role == entity.RoleCustomer {
		if accounts, err = s.ensureAccount(ctx, user.ID); err != nil {
			return nil, err
		}
	}

	result, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}
	result.Accounts = accounts
	return result, nil
}

// BankerLogin authenticates staff only
func (s *Service) BankerLogin(ctx context.Context, req usecase.LoginRequest) (*usecase.LoginResult, error) {
	user, err := s.authenticate(ctx, req)
	if err != nil {
		return nil, err
	}
	if !user.Role.IsStaff() {
		s.logger.Warn("Non-staff banker login attempt", map[string]any{"user_id": user.ID})
		return nil, errs.ErrStaffOnly
	}
	return s.openSession(ctx, user)
}

// authenticate verifies credentials. Unknown email and wrong password are indistinguishable,
// and account state is only revealed after the password matches.
func (s *Service) authenticate(ctx context.Context, req usecase.LoginRequest) (*entity.User, error) {
	if err := s.validator.ValidateLogin(req); err != nil {
		return nil, err
	}

	user, err := s.uow.GetUserRepository(ctx).GetByEmail(ctx, entity.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		s.logger.Info("Failed login", map[string]any{"user_id": user.ID})
		return nil, errs.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, errs.ErrAccountDeactivated
	}
	return user, nil
}

// openSession persists an opaque session and signs a session token
func (s *Service) openSession(ctx context.Context, user *entity.User) (*usecase.LoginResult, error) {
	var session *entity.Session
	for attempt := 1; ; attempt++ {
		token, err := s.tokens.Generate()
		if err != nil {
			s.logger.Error("Failed to generate access token", map[string]any{"error": err.Error()})
			return nil, errs.ErrInternalServer
		}

		session = entity.NewSession(user.ID, token, s.timeProvider.Now(), s.settings.AccessTokenTTL)
		err = s.sessions.Create(ctx, session)
		if err == nil {
			break
		}
		if !errs.IsDuplicateKeyError(err) || attempt >= maxSessionTokenAttempts {
			return nil, err
		}
		s.logger.Warn("Access token collision, regenerating", map[string]any{"attempt": attempt})
	}

	jwt, jwtExpiresAt, err := s.signer.Issue(user.Principal())
	if err != nil {
		s.logger.Error("Failed to sign session token", map[string]any{"user_id": user.ID, "error": err.Error()})
		return nil, errs.ErrInternalServer
	}

	s.logger.Info("User logged in", map[string]any{
		"user_id":    user.ID,
		"role":       string(user.Role),
		"expires_at": session.ExpiresAt,
	})
	return &usecase.LoginResult{
		User: user,
		Tokens: usecase.AuthTokens{
			JWT:          jwt,
			JWTExpiresAt: jwtExpiresAt,
			AccessToken:  session.Token,
			ExpiresAt:    session.ExpiresAt,
		},
	}, nil
}

// ensureAccount returns the customer's accounts, opening one if there are none
func (s *Service) ensureAccount(ctx context.Context, userID string) ([]entity.Account, error) {
	accounts, err := s.uow.GetAccountRepository(ctx).ListByUser(ctx, userID)
	if err != nil || len(accounts) > 0 {
		return accounts, err
	}

	err = s.uow.Execute(ctx, func(txCtx context.Context) error {
		account, err := s.openAccount(txCtx, userID)
		if err != nil {
			return err
		}
		accounts = []entity.Account{*account}
		return nil
	})
	return accounts, err
}

// Logout deletes the session behind accessToken. Failures are logged and swallowed.
func (s *Service) Logout(ctx context.Context, accessToken string) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return
	}
	if err := s.sessions.Delete(ctx, accessToken); err != nil {
		s.logger.Warn("Failed to delete session on logout", map[string]any{"error": err.Error()})
	}
}

// LogoutAll revokes every opaque session of the principal. Signed tokens stay valid until they expire.
func (s *Service) LogoutAll(ctx context.Context, principal entity.Principal) (int64, error) {
	revoked, err := s.sessions.DeleteAllForUser(ctx, principal.UserID)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Sessions revoked", map[string]any{"user_id": principal.UserID, "revoked": revoked})
	return revoked, nil
}

func (s *Service) CurrentUser(ctx context.Context, principal entity.Principal) (*entity.User, error) {
	return s.uow.GetUserRepository(ctx).GetByID(ctx, principal.UserID)
}
