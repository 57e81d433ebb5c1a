package ledger

import (
	"context"
	"strings"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/usecase"
)

// Service applies deposits and withdrawals. Each operation locks the account row,
// updates the balance and appends a ledger entry in one unit of work.
type Service struct {
	uow          persistence.UnitOfWork
	validator    *LedgerValidator
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewLedgerService creates a new ledger service
func NewLedgerService(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Service {
	return &Service{
		uow:          uow,
		validator:    NewLedgerValidator(),
		timeProvider: timeProvider,
		logger:       logger,
	}
}

var _ usecase.LedgerUseCase = (*Service)(nil)

func (s *Service) Deposit(ctx context.Context, principal entity.Principal, req usecase.LedgerRequest) (*usecase.LedgerResult, error) {
	return s.apply(ctx, principal, req, entity.TransactionTypeDeposit)
}

func (s *Service) Withdraw(ctx context.Context, principal entity.Principal, req usecase.LedgerRequest) (*usecase.LedgerResult, error) {
	return s.apply(ctx, principal, req, entity.TransactionTypeWithdrawal)
}

func (s *Service) apply(
	ctx context.Context,
	principal entity.Principal,
	req usecase.LedgerRequest,
	txType entity.TransactionType,
) (*usecase.LedgerResult, error) {
	if err := s.validator.Validate(principal, req, txType); err != nil {
		return nil, err
	}
	accountID := strings.TrimSpace(req.AccountID)

	var result *usecase.LedgerResult
	err := s.uow.Execute(ctx, func(txCtx context.Context) error {
		accounts := s.uow.GetAccountRepository(txCtx)

		account, err := accounts.GetByIDForUpdate(txCtx, accountID)
		if err != nil {
			return err
		}
		// Someone else's account is indistinguishable from a missing one
		if !account.OwnedBy(principal.UserID) {
			return errs.ErrAccountNotFound
		}
		if !account.IsActive {
			return errs.ErrAccountInactive
		}

		newBalance := account.Balance
		switch txType {
		case entity.TransactionTypeDeposit:
			newBalance, err = account.Deposit(req.Amount, s.timeProvider)
		case entity.TransactionTypeWithdrawal:
			newBalance, err = account.Withdraw(req.Amount, s.timeProvider)
		}
		if err != nil {
			return err
		}

		if err := accounts.UpdateBalance(txCtx, account); err != nil {
			return err
		}

		entry := entity.NewLedgerEntry(account.ID, txType, req.Amount, newBalance, req.Description, s.timeProvider)
		if err := s.uow.GetTransactionRepository(txCtx).Create(txCtx, entry); err != nil {
			return err
		}

		result = &usecase.LedgerResult{
			Transaction: entry,
			NewBalance:  newBalance,
		}
		return nil
	})
	if err != nil {
		s.logFailure(txType, accountID, principal.UserID, req, err)
		return nil, err
	}

	s.logger.Info("Ledger operation applied", map[string]any{
		"operation":      operationName(txType),
		"account_id":     accountID,
		"user_id":        principal.UserID,
		"amount":         entity.FormatAmount(req.Amount),
		"new_balance":    entity.FormatAmount(result.NewBalance),
		"transaction_id": result.Transaction.ID,
	})
	return result, nil
}

func (s *Service) logFailure(txType entity.TransactionType, accountID, userID string, req usecase.LedgerRequest, err error) {
	fields := (&errs.LedgerError{
		Operation: operationName(txType),
		AccountID: accountID,
		UserID:    userID,
		Amount:    entity.FormatAmount(req.Amount),
		Err:       err,
	}).LogFields()

	if errs.HTTPStatus(err) >= 500 {
		s.logger.Error("Ledger operation failed", fields)
		return
	}
	s.logger.Warn("Ledger operation rejected", fields)
}

// History returns the principal's entries across all their accounts, newest first
func (s *Service) History(ctx context.Context, principal entity.Principal) (*usecase.CustomerLedger, error) {
	if principal.Role != entity.RoleCustomer {
		return nil, errs.ErrCustomerOnly
	}

	transactions, err := s.uow.GetTransactionRepository(ctx).ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	accounts, err := s.uow.GetAccountRepository(ctx).ListByUser(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	return &usecase.CustomerLedger{
		Transactions: transactions,
		Accounts:     accounts,
	}, nil
}
