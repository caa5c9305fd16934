package security

import (
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"gamehub/internal/domain"
)

// PasswordSymbols is the punctuation set accepted by the password policy.
const PasswordSymbols = `!@#$%^&*()-_=+[]{};:'",.<>/?\|~` + "`"

const minPasswordLength = 8

// ValidatePassword enforces the credential policy: at least 8 characters,
// with one lowercase letter, one uppercase letter, one digit and one symbol
// from PasswordSymbols.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return domain.NewValidationError("password", "must be at least 8 characters")
	}
	var hasLower, hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(PasswordSymbols, r):
			hasSymbol = true
		}
	}
	if !hasLower {
		return domain.NewValidationError("password", "must contain a lowercase letter")
	}
	if !hasUpper {
		return domain.NewValidationError("password", "must contain an uppercase letter")
	}
	if !hasDigit {
		return domain.NewValidationError("password", "must contain a digit")
	}
	if !hasSymbol {
		return domain.NewValidationError("password", "must contain a symbol")
	}
	return nil
}

// HashPassword validates the password against the policy and returns its
// bcrypt hash for storage in the credentials map.
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
