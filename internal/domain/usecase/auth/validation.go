package auth

import (
	"regexp"
	"strings"
	"unicode"

	errs "github.com/amirhossein-jamali/bank-portal/internal/domain/error"
	"github.com/amirhossein-jamali/bank-portal/internal/domain/port/usecase"
)

const (
	// MinPasswordLength is the shortest accepted password
	MinPasswordLength = 8
	// MaxPasswordLength is the longest input bcrypt accepts, in bytes
	MaxPasswordLength = 72
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	// Allowed password charset; the class requirements are checked separately
	passwordCharset = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]+$`)
)

const (
	msgRegisterRequired = "Email, password, first name, and last name are required"
	msgLoginRequired    = "Email and password are required"
	msgWeakPassword     = "Password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, and one number"
	msgLongPassword     = "Password must be at most 72 characters long"
)

// CredentialValidator checks registration and login input before any lookup
type CredentialValidator struct{}

func NewCredentialValidator() *CredentialValidator {
	return &CredentialValidator{}
}

// ValidateRegistration returns the first problem with a registration request
func (v *CredentialValidator) ValidateRegistration(req usecase.RegisterRequest) error {
	if isBlank(req.Email) || req.Password == "" || isBlank(req.FirstName) || isBlank(req.LastName) {
		return errs.NewValidationError("request", msgRegisterRequired)
	}
	if err := v.ValidateEmail(req.Email); err != nil {
		return err
	}
	if err := v.ValidatePassword(req.Password); err != nil {
		return err
	}
	if username := strings.TrimSpace(req.Username); username != "" && !usernamePattern.MatchString(username) {
		return errs.ErrInvalidUsername
	}
	return nil
}

// ValidateLogin checks that both credentials are present and the email is well formed
func (v *CredentialValidator) ValidateLogin(req usecase.LoginRequest) error {
	if isBlank(req.Email) || req.Password == "" {
		return errs.NewValidationError("request", msgLoginRequired)
	}
	return v.ValidateEmail(req.Email)
}

func (v *CredentialValidator) ValidateEmail(email string) error {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return errs.ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces length, charset and one lowercase, uppercase and digit each
func (v *CredentialValidator) ValidatePassword(password string) error {
	if len(password) > MaxPasswordLength {
		return errs.WithMessage(errs.ErrWeakPassword, msgLongPassword)
	}
	if len(password) < MinPasswordLength || !passwordCharset.MatchString(password) {
		return errs.WithMessage(errs.ErrWeakPassword, msgWeakPassword)
	}

	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !lower || !upper || !digit {
		return errs.WithMessage(errs.ErrWeakPassword, msgWeakPassword)
	}
	return nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
