package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/model"
)

// AccountRepository implements persistence.AccountRepository using GORM
type AccountRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

func NewAccountRepository(db *gorm.DB, logger coreport.Logger) *AccountRepository {
	return &AccountRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func (r *AccountRepository) handleDatabaseError(operation string, err error, accountID string) error {
	return translateError(r.errorClassifier, r.logger, operation, err, errs.ErrAccountNotFound, map[string]any{
		"account_id": accountID,
	})
}

func (r *AccountRepository) Create(ctx context.Context, account *entity.Account) error {
	row := accountToModel(account)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return r.handleDatabaseError("creating account", err, account.ID)
	}

	r.logger.Info("Account opened", map[string]any{
		"account_id":     account.ID,
		"user_id":        account.UserID,
		"account_number": account.AccountNumber,
		"account_type":   string(account.AccountType),
	})
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*entity.Account, error) {
	var row model.Account
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, r.handleDatabaseError("getting account", err, id)
	}
	account := accountFromModel(&row)
	return &account, nil
}

// GetByIDForUpdate reads the account with SELECT ... FOR UPDATE. Drivers without row locks ignore the clause.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, id string) (*entity.Account, error) {
	var row model.Account
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, r.handleDatabaseError("locking account", err, id)
	}
	account := accountFromModel(&row)
	return &account, nil
}

func (r *AccountRepository) ListByUser(ctx context.Context, userID string) ([]entity.Account, error) {
	var rows []model.Account
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&rows).Error
	if err != nil {
		return nil, r.handleDatabaseError("listing accounts", err, "")
	}

	accounts := make([]entity.Account, 0, len(rows))
	for i := range rows {
		accounts = append(accounts, accountFromModel(&rows[i]))
	}
	return accounts, nil
}

// UpdateBalance persists the account's balance and updated_at
func (r *AccountRepository) UpdateBalance(ctx context.Context, account *entity.Account) error {
	result := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", account.ID).
		Updates(map[string]any{
			"balance":    account.Balance,
			"updated_at": account.UpdatedAt,
		})
	if result.Error != nil {
		return r.handleDatabaseError("updating balance", result.Error, account.ID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) AccountNumberExists(ctx context.Context, accountNumber string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("account_number = ?", accountNumber).
		Count(&count).Error
	if err != nil {
		return false, r.handleDatabaseError("checking account number", err, "")
	}
	return count > 0, nil
}

type accountTxCount struct {
	AccountID string
	Count     int64
}

// ListOverviews returns every account with its owner, transaction count and latest transaction, newest account first
func (r *AccountRepository) ListOverviews(ctx context.Context) ([]entity.AccountOverview, error) {
	db := r.db.WithContext(ctx)

	var rows []model.Account
	if err := db.Preload("User").Order("created_at desc").Find(&rows).Error; err != nil {
		return nil, r.handleDatabaseError("listing account overviews", err, "")
	}

	var counts []accountTxCount
	err := db.Model(&model.Transaction{}).
		Select("account_id, COUNT(*) AS count").
		Group("account_id").
		Scan(&counts).Error
	if err != nil {
		return nil, r.handleDatabaseError("counting transactions", err, "")
	}
	countByAccount := make(map[string]int64, len(counts))
	for _, c := range counts {
		countByAccount[c.AccountID] = c.Count
	}

	latest := db.Model(&model.Transaction{}).
		Select("account_id, MAX(created_at)").
		Group("account_id")
	var lastRows []model.Transaction
	err = db.Where("(account_id, created_at) IN (?)", latest).
		Order("created_at desc").
		Find(&lastRows).Error
	if err != nil {
		return nil, r.handleDatabaseError("loading latest transactions", err, "")
	}
	lastByAccount := make(map[string]*entity.Transaction, len(lastRows))
	for i := range lastRows {
		if _, seen := lastByAccount[lastRows[i].AccountID]; seen {
			continue
		}
		tx := transactionFromModel(&lastRows[i])
		lastByAccount[tx.AccountID] = &tx
	}

	overviews := make([]entity.AccountOverview, 0, len(rows))
	for i := range rows {
		overviews = append(overviews, entity.AccountOverview{
			Account:          accountFromModel(&rows[i]),
			Owner:            ownerFromModel(&rows[i].User),
			TransactionCount: countByAccount[rows[i].ID],
			LastTransaction:  lastByAccount[rows[i].ID],
		})
	}
	return overviews, nil
}
