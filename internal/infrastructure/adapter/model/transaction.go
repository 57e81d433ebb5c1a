package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an append-only ledger row
type Transaction struct {
	ID           string          `gorm:"primaryKey;type:varchar(36)"`
	AccountID    string          `gorm:"not null;type:varchar(36);index:idx_transactions_account_created,priority:1"`
	Type         string          `gorm:"not null;size:20"`
	Amount       decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	BalanceAfter decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	Description  string          `gorm:"size:255"`
	Status       string          `gorm:"not null;size:20"`
	CreatedAt    time.Time       `gorm:"not null;index;index:idx_transactions_account_created,priority:2"`

	Account Account `gorm:"foreignKey:AccountID;references:ID"`
}

func (Transaction) TableName() string {
	return "transactions"
}
