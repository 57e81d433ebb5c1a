package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
)

// MaxDecimalPlaces defines the maximum number of decimal places allowed for money amounts
const MaxDecimalPlaces = 2

// MaxBalance is the largest value a numeric(15,2) column can hold
var MaxBalance = decimal.RequireFromString("9999999999999.99")

// ParseAmount parses a decimal string into a positive money amount
func ParseAmount(amount string) (decimal.Decimal, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}

	value, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}

	if err := ValidateAmount(value); err != nil {
		return decimal.Zero, err
	}
	return value, nil
}

// ValidateAmount checks that a ledger amount is positive, has at most two decimals and fits the column
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: must be greater than zero", errs.ErrInvalidAmount)
	}
	if !amount.Equal(amount.Truncate(MaxDecimalPlaces)) {
		return fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
	}
	if amount.GreaterThan(MaxBalance) {
		return errs.ErrAmountOverflow
	}
	return nil
}

// FormatAmount renders a money value with exactly two decimal places
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(MaxDecimalPlaces)
}
