package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/persistence"
)

// maxAccountNumberAttempts bounds collision retries
const maxAccountNumberAttempts = 10

var (
	accountNumberFloor = big.NewInt(1_000_000_000)
	accountNumberSpan  = big.NewInt(9_000_000_000)
)

// AccountNumberGenerator draws random 10-digit account numbers that are not yet in use
type AccountNumberGenerator struct {
	random func() (string, error)
}

func NewAccountNumberGenerator() *AccountNumberGenerator {
	return &AccountNumberGenerator{random: randomAccountNumber}
}

// Next returns an unused account number, checked against accounts
func (g *AccountNumberGenerator) Next(ctx context.Context, accounts persistence.AccountRepository) (string, error) {
	for attempt := 0; attempt < maxAccountNumberAttempts; attempt++ {
		number, err := g.random()
		if err != nil {
			return "", err
		}

		exists, err := accounts.AccountNumberExists(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", fmt.Errorf("%w: no free account number after %d attempts", errs.ErrInternalServer, maxAccountNumberAttempts)
}

// randomAccountNumber returns a number in [1000000000, 9999999999]
func randomAccountNumber() (string, error) {
	n, err := rand.Int(rand.Reader, accountNumberSpan)
	if err != nil {
		return "", fmt.Errorf("generate account number: %w", err)
	}
	number := n.Add(n, accountNumberFloor).String()
	if len(number) != entity.AccountNumberLength {
		return "", fmt.Errorf("%w: malformed account number", errs.ErrInternalServer)
	}
	return number, nil
}
