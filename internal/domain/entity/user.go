package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bank-portal/internal/domain/port/core"
)

// User is a registered identity. Email is unique; Username is optional but unique when set.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates an active user with a fresh ID
func NewUser(email, username, passwordHash, firstName, lastName string, role Role, timeProvider coreport.TimeProvider) (*User, error) {
	if !role.IsValid() {
		return nil, errs.ErrInvalidRole
	}

	now := timeProvider.Now()
	return &User{
		ID:           uuid.NewString(),
		Email:        NormalizeEmail(email),
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NormalizeEmail lowercases and trims an email so lookups are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Principal returns the authenticated identity for this user
func (u *User) Principal() Principal {
	return Principal{
		UserID: u.ID,
		Email:  u.Email,
		Role:   u.Role,
	}
}

// FullName joins first and last name
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
