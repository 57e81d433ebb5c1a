package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the database row for a customer account
type Account struct {
	ID            string          `gorm:"primaryKey;type:varchar(36)"`
	UserID        string          `gorm:"not null;index;type:varchar(36)"`
	AccountNumber string          `gorm:"uniqueIndex;not null;size:10"`
	AccountType   string          `gorm:"not null;size:20"`
	Balance       decimal.Decimal `gorm:"type:numeric(15,2);not null"`
	IsActive      bool            `gorm:"not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Account) TableName() string {
	return "accounts"
}
