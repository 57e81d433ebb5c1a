package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/security"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/usecase"
)

// Gate resolves request credentials into a principal. The signed cookie token wins;
// the bearer session is consulted only when the cookie is absent or fails verification.
type Gate struct {
	signer       security.SessionTokenSigner
	sessions     persistence.SessionRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

func NewGate(
	signer security.SessionTokenSigner,
	sessions persistence.SessionRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Gate {
	return &Gate{
		signer:       signer,
		sessions:     sessions,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.Authenticator = (*Gate)(nil)

func (g *Gate) Authenticate(ctx context.Context, creds usecase.Credentials) (*entity.Principal, error) {
	if signed := strings.TrimSpace(creds.SignedToken); signed != "" {
		principal, err := g.signer.Verify(signed)
		if err == nil {
			return principal, nil
		}
		g.logger.Debug("Signed token rejected, trying bearer token", map[string]any{"error": err.Error()})
	}

	token := strings.TrimSpace(creds.AccessToken)
	if token == "" {
		return nil, errs.ErrNoAuthToken
	}
	return g.authenticateSession(ctx, token)
}

func (g *Gate) authenticateSession(ctx context.Context, token string) (*entity.Principal, error) {
	session, err := g.sessions.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, errs.ErrSessionNotFound) {
			return nil, errs.ErrInvalidAccessToken
		}
		return nil, err
	}

	if session.IsExpired(g.timeProvider.Now()) {
		if err := g.sessions.Delete(ctx, token); err != nil {
			g.logger.Warn("Failed to delete expired session", map[string]any{
				"user_id": session.UserID,
				"error":   err.Error(),
			})
		}
		return nil, errs.ErrAccessTokenExpired
	}

	if session.User == nil || !session.User.IsActive {
		return nil, errs.ErrSessionDeactivated
	}

	principal := session.User.Principal()
	return &principal, nil
}
