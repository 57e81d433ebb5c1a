package model

import (
	"time"
)

// User is the database row for a registered identity.
// Username is a pointer so absent usernames are stored as NULL and stay out of the unique index.
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)"`
	Email        string    `gorm:"uniqueIndex;not null;size:255"`
	Username     *string   `gorm:"uniqueIndex;size:50"`
	PasswordHash string    `gorm:"not null;size:255"`
	FirstName    string    `gorm:"not null;size:100"`
	LastName     string    `gorm:"not null;size:100"`
	Role         string    `gorm:"not null;size:20;index"`
	IsActive     bool      `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

func (User) TableName() string {
	return "users"
}
