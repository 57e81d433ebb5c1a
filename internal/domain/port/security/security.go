package security

import (
	"time"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
)

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	// Hash produces a salted one-way hash of plaintext
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. A mismatch is false, never an error.
	Verify(plaintext, hash string) bool
}

// SessionTokenSigner issues and verifies self-contained signed session tokens
type SessionTokenSigner interface {
	// Issue signs a token for principal and returns it with its expiration
	Issue(principal entity.Principal) (string, time.Time, error)
	// Verify checks signature, expiry, issuer and audience.
	// Any failure is reported as ErrInvalidToken.
	Verify(token string) (*entity.Principal, error)
}

// AccessTokenGenerator produces opaque random access tokens
type AccessTokenGenerator interface {
	Generate() (string, error)
}
