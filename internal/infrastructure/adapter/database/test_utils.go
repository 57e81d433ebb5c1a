package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amirhossein-jamali/bank-portal/internal/domain/entity"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/model"
	timeprovider "github.com/amirhossein-jamali/bank-portal/internal/infrastructure/adapter/time"
)

// TestDBManager wraps a migrated in-memory sqlite database for tests
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager opens a private in-memory database, migrates it and closes it on cleanup
func NewTestDBManager(t *testing.T) *TestDBManager {
	t.Helper()
	return NewTestDBManagerWithClock(t, timeprovider.NewRealTimeProvider())
}

// NewTestDBManagerWithClock is NewTestDBManager with a caller-controlled clock
func NewTestDBManagerWithClock(t *testing.T, timeProvider coreport.TimeProvider) *TestDBManager {
	t.Helper()

	log := logger.NewNoopLogger()
	config := DefaultConfig()
	config.Driver = DriverSQLite
	// One shared connection keeps every query on the same in-memory database
	config.Path = fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000", uuid.NewString())
	config.MaxOpenConns = 1
	config.MaxIdleConns = 1
	config.ConnMaxLifetime = 0
	config.ConnMaxIdleTime = 0
	config.LogLevel = "silent"
	config.RetryAttempts = 1
	config.Retry.RetryInterval = time.Millisecond

	manager := NewManager(config, log, timeProvider)
	if _, err := manager.Connect(context.Background()); err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	t.Cleanup(func() {
		if err := manager.Close(); err != nil {
			t.Logf("Warning: Failed to close test database connection: %v", err)
		}
	})

	if err := manager.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return &TestDBManager{
		Manager:      manager,
		Config:       config,
		Logger:       log,
		TimeProvider: timeProvider,
	}
}

// CreateTestUser inserts an active user with a placeholder password hash
func (m *TestDBManager) CreateTestUser(t *testing.T, email string, role entity.Role) *entity.User {
	t.Helper()

	now := m.TimeProvider.Now()
	row := model.User{
		ID:           uuid.NewString(),
		Email:        entity.NormalizeEmail(email),
		PasswordHash: "not-a-real-hash",
		FirstName:    "Test",
		LastName:     "User",
		Role:         string(role),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := m.Manager.DB().Create(&row).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return &entity.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CreateTestAccount inserts an active account for userID with the given balance
func (m *TestDBManager) CreateTestAccount(t *testing.T, userID, accountNumber, balance string) *entity.Account {
	t.Helper()

	now := m.TimeProvider.Now()
	row := model.Account{
		ID:            uuid.NewString(),
		UserID:        userID,
		AccountNumber: accountNumber,
		AccountType:   string(entity.AccountTypeChecking),
		Balance:       decimal.RequireFromString(balance),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := m.Manager.DB().Omit("User").Create(&row).Error; err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return &entity.Account{
		ID:            row.ID,
		UserID:        userID,
		AccountNumber: accountNumber,
		AccountType:   entity.AccountTypeChecking,
		Balance:       row.Balance,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
