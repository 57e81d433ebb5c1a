package migration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/security"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/model"
)

// seedEntrySpacing is the gap between consecutive demo transactions
const seedEntrySpacing = 5 * 24 * time.Hour

type seedEntry struct {
	txType      entity.TransactionType
	amount      string
	description string
}

type seedUser struct {
	email         string
	username      string
	password      string
	firstName     string
	lastName      string
	role          entity.Role
	accountNumber string
	accountType   entity.AccountType
	entries       []seedEntry
}

func deposit(amount, description string) seedEntry {
	return seedEntry{entity.TransactionTypeDeposit, amount, description}
}

func withdrawal(amount, description string) seedEntry {
	return seedEntry{entity.TransactionTypeWithdrawal, amount, description}
}

// DemoUsers are the fixtures created by the seed command
var DemoUsers = []seedUser{
	{email: "banker@bank.com", username: "banker", password: "banker123", firstName: "John", lastName: "Banker", role: entity.RoleBanker},
	{email: "admin@bank.com", username: "admin", password: "admin123", firstName: "Admin", lastName: "User", role: entity.RoleAdmin},
	{
		email: "customer@example.com", username: "customer", password: "customer123", firstName: "Jane", lastName: "Customer",
		role: entity.RoleCustomer, accountNumber: "1234567890", accountType: entity.AccountTypeSavings,
		entries: []seedEntry{
			deposit("1000.00", "Initial deposit"),
			deposit("500.00", "Salary deposit"),
			withdrawal("200.00", "ATM withdrawal"),
			withdrawal("300.00", "Shopping"),
		},
	},
	{
		email: "alice.smith@email.com", username: "alice_smith", password: "password123", firstName: "Alice", lastName: "Smith",
		role: entity.RoleCustomer, accountNumber: "2345678901", accountType: entity.AccountTypeChecking,
		entries: []seedEntry{
			deposit("2500.00", "Opening deposit"),
			deposit("1200.00", "Paycheck"),
			withdrawal("800.00", "Rent payment"),
			withdrawal("150.00", "Groceries"),
			deposit("300.00", "Freelance payment"),
		},
	},
	{
		email: "bob.johnson@email.com", username: "bob_johnson", password: "password123", firstName: "Bob", lastName: "Johnson",
		role: entity.RoleCustomer, accountNumber: "3456789012", accountType: entity.AccountTypeSavings,
		entries: []seedEntry{
			deposit("5000.00", "Initial savings"),
			deposit("2000.00", "Bonus payment"),
			withdrawal("1000.00", "Emergency fund"),
			deposit("800.00", "Investment return"),
		},
	},
	{
		email: "carol.davis@email.com", username: "carol_davis", password: "password123", firstName: "Carol", lastName: "Davis",
		role: entity.RoleCustomer, accountNumber: "4567890123", accountType: entity.AccountTypeChecking,
		entries: []seedEntry{
			deposit("1800.00", "Opening deposit"),
			withdrawal("600.00", "Car payment"),
			deposit("1100.00", "Salary"),
			withdrawal("250.00", "Utilities"),
			withdrawal("400.00", "Insurance"),
			deposit("750.00", "Side business"),
		},
	},
	{
		email: "david.wilson@email.com", username: "david_wilson", password: "password123", firstName: "David", lastName: "Wilson",
		role: entity.RoleCustomer, accountNumber: "5678901234", accountType: entity.AccountTypeSavings,
		entries: []seedEntry{
			deposit("3200.00", "Transfer from checking"),
			deposit("1500.00", "Tax refund"),
			withdrawal("2000.00", "Home renovation"),
			deposit("900.00", "Quarterly dividend"),
		},
	},
	{
		email: "emma.brown@email.com", username: "emma_brown", password: "password123", firstName: "Emma", lastName: "Brown",
		role: entity.RoleCustomer, accountNumber: "6789012345", accountType: entity.AccountTypeChecking,
		entries: []seedEntry{
			deposit("4200.00", "Opening balance"),
			withdrawal("1200.00", "Mortgage payment"),
			deposit("2800.00", "Salary deposit"),
			withdrawal("350.00", "Phone & Internet"),
			withdrawal("180.00", "Gas bill"),
			deposit("450.00", "Cashback rewards"),
			withdrawal("800.00", "Credit card payment"),
		},
	},
}

// SeedResult counts what a seed run created
type SeedResult struct {
	Users        int
	Accounts     int
	Transactions int
}

// Seeder inserts demo fixtures. Existing users and accounts are left untouched.
type Seeder struct {
	db           *gorm.DB
	hasher       security.PasswordHasher
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

func NewSeeder(db *gorm.DB, hasher security.PasswordHasher, timeProvider coreport.TimeProvider, logger coreport.Logger) *Seeder {
	return &Seeder{
		db:           db,
		hasher:       hasher,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Seed creates the demo users in one transaction
func (s *Seeder) Seed(ctx context.Context) (SeedResult, error) {
	var result SeedResult
	now := s.timeProvider.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, fixture := range DemoUsers {
			created, err := s.seedUser(tx, fixture, now.Add(-time.Duration(i)*time.Hour), &result)
			if err != nil {
				return fmt.Errorf("seed %s: %w", fixture.email, err)
			}
			if !created {
				s.logger.Debug("Seed user already exists", map[string]any{"email": fixture.email})
			}
		}
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	s.logger.Info("Database seeded", map[string]any{
		"users":        result.Users,
		"accounts":     result.Accounts,
		"transactions": result.Transactions,
	})
	return result, nil
}

func (s *Seeder) seedUser(tx *gorm.DB, fixture seedUser, anchor time.Time, result *SeedResult) (bool, error) {
	var existing model.User
	err := tx.Where("email = ?", fixture.email).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := s.hasher.Hash(fixture.password)
	if err != nil {
		return false, err
	}

	// Joined well before the first entry so trends cover several months
	joined := anchor.Add(-time.Duration(len(fixture.entries)+2) * seedEntrySpacing)
	username := fixture.username
	user := model.User{
		ID:           uuid.NewString(),
		Email:        fixture.email,
		Username:     &username,
		PasswordHash: hash,
		FirstName:    fixture.firstName,
		LastName:     fixture.lastName,
		Role:         string(fixture.role),
		IsActive:     true,
		CreatedAt:    joined,
		UpdatedAt:    joined,
	}
	if err := tx.Create(&user).Error; err != nil {
		return false, err
	}
	result.Users++

	if fixture.accountNumber == "" {
		return true, nil
	}

	var taken int64
	if err := tx.Model(&model.Account{}).Where("account_number = ?", fixture.accountNumber).Count(&taken).Error; err != nil {
		return false, err
	}
	if taken > 0 {
		return true, nil
	}

	account := model.Account{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		AccountNumber: fixture.accountNumber,
		AccountType:   string(fixture.accountType),
		Balance:       decimal.Zero,
		IsActive:      true,
		CreatedAt:     joined,
		UpdatedAt:     joined,
	}

	entries := make([]model.Transaction, 0, len(fixture.entries))
	balance := decimal.Zero
	for i, e := range fixture.entries {
		amount := decimal.RequireFromString(e.amount)
		if e.txType == entity.TransactionTypeDeposit {
			balance = balance.Add(amount)
		} else {
			balance = balance.Sub(amount)
		}
		entries = append(entries, model.Transaction{
			ID:           uuid.NewString(),
			AccountID:    account.ID,
			Type:         string(e.txType),
			Amount:       amount,
			BalanceAfter: balance,
			Description:  e.description,
			Status:       string(entity.StatusCompleted),
			CreatedAt:    anchor.Add(-time.Duration(len(fixture.entries)-i) * seedEntrySpacing),
		})
	}
	account.Balance = balance
	account.UpdatedAt = anchor

	if err := tx.Omit("User").Create(&account).Error; err != nil {
		return false, err
	}
	result.Accounts++

	if len(entries) > 0 {
		if err := tx.Omit("Account").Create(&entries).Error; err != nil {
			return false, err
		}
		result.Transactions += len(entries)
	}
	return true, nil
}
