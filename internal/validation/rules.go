// Package validation provides custom validation rules for the application.
package validation

import (
	"fmt"
	"net/netip"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/tenantguard/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// PasswordStrength validates password meets minimum security requirements.
// Validate reports only the first failing rule; use Violations to enumerate
// every failed requirement (needed for user-facing policy errors).
type PasswordStrength struct {
	MinLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

// Validate checks if the password meets the configured requirements
func (p PasswordStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_strength", "password must be a string")
	}
	if violations := p.Violations(s); len(violations) > 0 {
		return validation.NewError("validation_password_strength", violations[0])
	}
	return nil
}

// Violations returns every password policy rule the value fails, in a fixed
// order: length, lowercase, uppercase, number, special character.
func (p PasswordStrength) Violations(s string) []string {
	var violations []string

	if len(s) < p.MinLength {
		violations = append(
			violations,
			fmt.Sprintf("password must be at least %d characters", p.MinLength),
		)
	}
	if p.RequireLower && !hasLowerCase(s) {
		violations = append(violations, "password must contain at least one lowercase letter")
	}
	if p.RequireUpper && !hasUpperCase(s) {
		violations = append(violations, "password must contain at least one uppercase letter")
	}
	if p.RequireNumber && !hasNumber(s) {
		violations = append(violations, "password must contain at least one number")
	}
	if p.RequireSpecial && !hasSpecialChar(s) {
		violations = append(violations, "password must contain at least one special character")
	}

	return violations
}

// hasUpperCase checks if string contains uppercase letters
func hasUpperCase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// hasLowerCase checks if string contains lowercase letters
func hasLowerCase(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}

// hasNumber checks if string contains numbers
func hasNumber(s string) bool {
	for _, r := range s {
		if unicode.IsNumber(r) {
			return true
		}
	}
	return false
}

// hasSpecialChar checks if string contains special characters
func hasSpecialChar(s string) bool {
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return true
		}
	}
	return false
}

// CIDROrIP validates that a string is a valid CIDR prefix or bare IP address.
var CIDROrIP = validation.NewStringRuleWithError(
	func(s string) bool {
		if _, err := netip.ParsePrefix(s); err == nil {
			return true
		}
		_, err := netip.ParseAddr(s)
		return err == nil
	},
	validation.NewError("validation_cidr_or_ip", "must be a valid CIDR or IP address"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
