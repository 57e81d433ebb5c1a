package migration

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
)

// AdvancedIndexManager manages PostgreSQL-specific constraints and indexes
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

type checkConstraint struct {
	table      string
	name       string
	expression string
}

var checkConstraints = []checkConstraint{
	{"accounts", "chk_accounts_balance_non_negative", "balance >= 0"},
	{"accounts", "chk_accounts_type", "account_type IN ('SAVINGS', 'CHECKING', 'BUSINESS')"},
	{"users", "chk_users_role", "role IN ('CUSTOMER', 'BANKER', 'ADMIN')"},
	{"transactions", "chk_transactions_amount_positive", "amount > 0"},
	{"transactions", "chk_transactions_type", "type IN ('DEPOSIT', 'WITHDRAWAL')"},
	{"transactions", "chk_transactions_status", "status IN ('PENDING', 'COMPLETED', 'FAILED')"},
}

// CreateConstraints installs CHECK constraints that back the domain invariants
func (m *AdvancedIndexManager) CreateConstraints(ctx context.Context) error {
	db := m.db.WithContext(ctx)
	for _, c := range checkConstraints {
		if err := db.Exec(fmt.Sprintf("ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s", c.table, c.name)).Error; err != nil {
			return fmt.Errorf("failed to drop constraint %s: %w", c.name, err)
		}
		if err := db.Exec(fmt.Sprintf("ALTER TABLE %s ADD CONSTRAINT %s CHECK (%s)", c.table, c.name, c.expression)).Error; err != nil {
			m.logger.Error("Failed to create check constraint", map[string]any{
				"constraint": c.name,
				"error":      err.Error(),
			})
			return fmt.Errorf("failed to create constraint %s: %w", c.name, err)
		}
	}
	return nil
}

// CreateAdvancedIndexes creates PostgreSQL-only indexes
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)
	db := m.db.WithContext(ctx)

	// Deposit leaderboards only aggregate completed deposits
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transactions_completed_deposits
		ON transactions (account_id, amount)
		WHERE type = 'DEPOSIT' AND status = 'COMPLETED'
	`).Error; err != nil {
		m.logger.Error("Failed to create completed deposits partial index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_transactions_created_at_brin
		ON transactions USING BRIN (created_at)
		WITH (pages_per_range = 32)
	`).Error; err != nil {
		m.logger.Error("Failed to create BRIN index on created_at", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_users_email_lower
		ON users (lower(email))
	`).Error; err != nil {
		m.logger.Error("Failed to create lower(email) index", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", nil)
	return nil
}

// CreatePerformanceTweaks applies non-critical table settings; failures are logged only
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) {
	db := m.db.WithContext(ctx)

	// accounts rows are rewritten on every ledger operation
	if err := db.Exec(`ALTER TABLE accounts SET (fillfactor = 85)`).Error; err != nil {
		m.logger.Warn("Failed to set fillfactor for accounts table", map[string]any{
			"error": err.Error(),
		})
	}

	if err := db.Exec(`ALTER TABLE transactions ALTER COLUMN account_id SET STATISTICS 1000`).Error; err != nil {
		m.logger.Warn("Failed to set statistics target for account_id", map[string]any{
			"error": err.Error(),
		})
	}
}
