package security

import (
	"golang.org/x/crypto/bcrypt"

	securityport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/security"
)

// DefaultBcryptCost is used when no cost is configured
const DefaultBcryptCost = 12

// BcryptHasher implements PasswordHasher with bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher. Costs outside bcrypt's range fall back to DefaultBcryptCost.
func NewBcryptHasher(cost int) securityport.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash returns a salted bcrypt hash. Inputs over 72 bytes are rejected.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. Malformed hashes never match.
func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
