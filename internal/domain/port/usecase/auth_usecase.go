package usecase

import (
	"context"
	"time"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
)

// RegisterRequest carries registration input. Role defaults to CUSTOMER.
type RegisterRequest struct {
	Email     string
	Username  string
	Password  string
	FirstName string
	LastName  string
	Role      string
}

// LoginRequest carries login input. Role, when set and not CUSTOMER, must match the user's role.
type LoginRequest struct {
	Email    string
	Password string
	Role     string
}

// AuthTokens are the two credentials handed out at login
type AuthTokens struct {
	JWT          string
	JWTExpiresAt time.Time
	AccessToken  string
	ExpiresAt    time.Time
}

// LoginResult is returned by a successful login
type LoginResult struct {
	User     *entity.User
	Tokens   AuthTokens
	Accounts []entity.Account
}

// Credentials are the raw tokens extracted from a request
type Credentials struct {
	// SignedToken comes from the auth-token or banker-auth-token cookie
	SignedToken string
	// AccessToken comes from the Authorization: Bearer header
	AccessToken string
}

// AuthUseCase covers registration, login and logout
type AuthUseCase interface {
	// Register creates a user and, for customers, their first account
	Register(ctx context.Context, req RegisterRequest) (*entity.User, error)

	// Login authenticates a user of any role and opens a session
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)

	// BankerLogin authenticates BANKER or ADMIN users only
	BankerLogin(ctx context.Context, req LoginRequest) (*LoginResult, error)

	// Logout deletes the session for accessToken. It never fails.
	Logout(ctx context.Context, accessToken string)

	// LogoutAll deletes every session of the principal
	LogoutAll(ctx context.Context, principal entity.Principal) (int64, error)

	// CurrentUser loads the user behind a principal
	CurrentUser(ctx context.Context, principal entity.Principal) (*entity.User, error)
}

// Authenticator resolves request credentials into a principal
type Authenticator interface {
	Authenticate(ctx context.Context, creds Credentials) (*entity.Principal, error)
}
