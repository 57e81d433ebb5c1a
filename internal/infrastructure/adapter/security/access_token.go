package security

import (
	"crypto/rand"

	securityport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/security"
)

// AccessTokenLength is the length of opaque session tokens
const AccessTokenLength = 36

const tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// 62*4 = 248; bytes at or above this are rejected so every symbol is equally likely
const maxUnbiasedByte = 248

// RandomTokenGenerator produces alphanumeric tokens from crypto/rand
type RandomTokenGenerator struct {
	length int
}

func NewRandomTokenGenerator() securityport.AccessTokenGenerator {
	return &RandomTokenGenerator{length: AccessTokenLength}
}

// Generate returns a fresh token
func (g *RandomTokenGenerator) Generate() (string, error) {
	out := make([]byte, 0, g.length)
	buf := make([]byte, g.length+g.length/4)

	for len(out) < g.length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= maxUnbiasedByte {
				continue
			}
			out = append(out, tokenAlphabet[int(b)%len(tokenAlphabet)])
			if len(out) == g.length {
				break
			}
		}
	}
	return string(out), nil
}
