package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/model"
)

// TransactionRepository implements persistence.TransactionRepository using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *TransactionRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	return translateError(r.errorClassifier, r.logger, operation, err, errs.ErrNotFound, fields)
}

// Create appends a ledger entry
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	row := transactionToModel(transaction)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return r.handleDatabaseError("recording transaction", err, map[string]any{
			"transaction_id": transaction.ID,
			"account_id":     transaction.AccountID,
		})
	}

	r.logger.Debug("Transaction recorded", map[string]any{
		"transaction_id": transaction.ID,
		"account_id":     transaction.AccountID,
		"type":           string(transaction.Type),
		"amount":         entity.FormatAmount(transaction.Amount),
		"balance_after":  entity.FormatAmount(transaction.BalanceAfter),
	})
	return nil
}

// ListByAccount returns an account's transactions, newest first
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string) ([]entity.Transaction, error) {
	var rows []model.Transaction
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing account transactions", err, map[string]any{"account_id": accountID})
	}

	transactions := make([]entity.Transaction, 0, len(rows))
	for i := range rows {
		transactions = append(transactions, transactionFromModel(&rows[i]))
	}
	return transactions, nil
}

// ListByUser returns transactions across all of a user's accounts, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]entity.TransactionActivity, error) {
	var rows []model.Transaction
	err := r.db.WithContext(ctx).
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("accounts.user_id = ?", userID).
		Preload("Account.User").
		Order("transactions.created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing user transactions", err, map[string]any{"user_id": userID})
	}
	return activitiesFromModels(rows), nil
}

// ListRecent returns the latest transactions across all accounts
func (r *TransactionRepository) ListRecent(ctx context.Context, limit int) ([]entity.TransactionActivity, error) {
	var rows []model.Transaction
	err := r.db.WithContext(ctx).
		Preload("Account.User").
		Order("created_at desc").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing recent transactions", err, nil)
	}
	return activitiesFromModels(rows), nil
}

// ListSince returns transactions created at or after since, oldest first
func (r *TransactionRepository) ListSince(ctx context.Context, since time.Time) ([]entity.Transaction, error) {
	var rows []model.Transaction
	err := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing transactions since", err, map[string]any{"since": since})
	}

	transactions := make([]entity.Transaction, 0, len(rows))
	for i := range rows {
		transactions = append(transactions, transactionFromModel(&rows[i]))
	}
	return transactions, nil
}

func (r *TransactionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Transaction{}).Count(&count).Error; err != nil {
		return 0, r.handleDatabaseError("counting transactions", err, nil)
	}
	return count, nil
}

type depositTotalRow struct {
	AccountID string
	Total     decimal.Decimal
	Count     int64
}

// DepositTotals sums completed deposits per account
func (r *TransactionRepository) DepositTotals(ctx context.Context) ([]entity.AccountDepositTotal, error) {
	var rows []depositTotalRow
	err := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Select("account_id, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("type = ? AND status = ?", string(entity.TransactionTypeDeposit), string(entity.StatusCompleted)).
		Group("account_id").
		Scan(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("summing deposits", err, nil)
	}

	totals := make([]entity.AccountDepositTotal, 0, len(rows))
	for _, row := range rows {
		totals = append(totals, entity.AccountDepositTotal{
			AccountID: row.AccountID,
			Total:     row.Total,
			Count:     row.Count,
		})
	}
	return totals, nil
}

func activitiesFromModels(rows []model.Transaction) []entity.TransactionActivity {
	activities := make([]entity.TransactionActivity, 0, len(rows))
	for i := range rows {
		activities = append(activities, activityFromModel(&rows[i]))
	}
	return activities
}
