package service

import (
	"fmt"
	"regexp"
	"time"
	"unicode"

	"github.com/mfedotov/credvault/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	return nil
}

// validatePassword enforces the account password policy: at least 8
// characters containing an uppercase letter, a lowercase letter, a digit
// and a special character. The policy applies to every path that sets a
// login password; stored credential secrets are exempt, they belong to
// external systems with their own rules.
func validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		default:
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return fmt.Errorf("%w: password must contain uppercase, lowercase, digit and special characters", ErrValidation)
	}
	return nil
}

func validateUsername(username string) error {
	if username == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(username) < 3 {
		return fmt.Errorf("%w: username must be at least 3 characters", ErrValidation)
	}
	return nil
}

// parseExpiresAt accepts an optional RFC 3339 timestamp. A nil pointer or
// an empty string both mean "no expiry" and yield nil.
func parseExpiresAt(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil, fmt.Errorf("%w: expires_at must be an RFC 3339 timestamp", ErrValidation)
	}
	return &t, nil
}

// buildPagination computes the page window metadata for a collection
// response.
func buildPagination(page, limit, total int) models.Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return models.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}
