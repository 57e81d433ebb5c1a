package model

import (
	"time"
)

// Session is a persisted opaque access token
type Session struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	Token     string    `gorm:"uniqueIndex;not null;size:64"`
	UserID    string    `gorm:"not null;index;type:varchar(36)"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Session) TableName() string {
	return "sessions"
}
