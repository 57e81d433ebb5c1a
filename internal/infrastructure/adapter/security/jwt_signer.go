package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	securityport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/security"
)

// JWT defaults
const (
	DefaultIssuer   = "banking-portal"
	DefaultAudience = "banking-users"
	DefaultTokenTTL = 7 * 24 * time.Hour
)

// JWTConfig holds signing parameters for session tokens
type JWTConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

type sessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// JWTSigner issues and verifies HS256 session tokens
type JWTSigner struct {
	secret       []byte
	issuer       string
	audience     string
	ttl          time.Duration
	timeProvider core.TimeProvider
	parser       *jwt.Parser
}

// NewJWTSigner creates a signer. An empty secret is rejected.
func NewJWTSigner(cfg JWTConfig, timeProvider core.TimeProvider) (securityport.SessionTokenSigner, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt secret must not be empty")
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	if cfg.Audience == "" {
		cfg.Audience = DefaultAudience
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTokenTTL
	}

	return &JWTSigner{
		secret:       []byte(cfg.Secret),
		issuer:       cfg.Issuer,
		audience:     cfg.Audience,
		ttl:          cfg.TTL,
		timeProvider: timeProvider,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithAudience(cfg.Audience),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(timeProvider.Now),
		),
	}, nil
}

// Issue signs a token for principal and returns it with its expiration
func (s *JWTSigner) Issue(principal entity.Principal) (string, time.Time, error) {
	now := s.timeProvider.Now()
	expiresAt := now.Add(s.ttl)

	claims := sessionClaims{
		UserID: principal.UserID,
		Email:  principal.Email,
		Role:   principal.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.UserID,
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm, expiry, issuer and audience, and returns the embedded principal
func (s *JWTSigner) Verify(token string) (*entity.Principal, error) {
	var claims sessionClaims
	parsed, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, errs.ErrInvalidToken
	}

	role := entity.Role(claims.Role)
	if !role.IsValid() || claims.UserID == "" {
		return nil, errs.ErrInvalidToken
	}

	return &entity.Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   role,
	}, nil
}
