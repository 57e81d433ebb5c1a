package ledger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/usecase"
)

// operationName returns the plural noun used in client messages
func operationName(txType entity.TransactionType) string {
	switch txType {
	case entity.TransactionTypeDeposit:
		return "deposit"
	case entity.TransactionTypeWithdrawal:
		return "withdrawal"
	default:
		return strings.ToLower(string(txType))
	}
}

// LedgerValidator checks ledger preconditions in a fixed order: role, amount, account
type LedgerValidator struct{}

func NewLedgerValidator() *LedgerValidator {
	return &LedgerValidator{}
}

// Validate returns the first failed precondition
func (v *LedgerValidator) Validate(principal entity.Principal, req usecase.LedgerRequest, txType entity.TransactionType) error {
	op := operationName(txType)

	if principal.Role != entity.RoleCustomer {
		return errs.WithMessage(errs.ErrCustomerOnly, fmt.Sprintf("only customers can make %ss", op))
	}

	if err := entity.ValidateAmount(req.Amount); err != nil {
		if errors.Is(err, errs.ErrAmountOverflow) {
			return err
		}
		return errs.WithMessage(err, fmt.Sprintf("invalid %s amount", op))
	}

	if strings.TrimSpace(req.AccountID) == "" {
		return errs.ErrAccountIDRequired
	}
	return nil
}
