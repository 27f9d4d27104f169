package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/tenantguard/internal/errors"
	"github.com/allisson/tenantguard/internal/validation"
)

// passwordService implements PasswordService using Argon2id for hashing.
//
// Argon2id generates a fresh salt per call, so hashing the same plaintext
// twice yields different hashes while Verify still accepts both. Hashing is
// intentionally CPU-expensive; run it off latency-sensitive request paths.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
	policy validation.PasswordStrength
}

// NewPasswordService creates a PasswordService with the given minimum length.
// All four character classes (lower, upper, digit, symbol) are always
// required. Uses the Moderate Argon2id policy for a balance between security
// and performance.
func NewPasswordService(minLength int) (PasswordService, error) {
	if minLength < 1 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "minimum password length must be positive")
	}

	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &passwordService{
		hasher: hasher,
		policy: validation.PasswordStrength{
			MinLength:      minLength,
			RequireUpper:   true,
			RequireLower:   true,
			RequireNumber:  true,
			RequireSpecial: true,
		},
	}, nil
}

// HashPassword hashes plaintext using Argon2id with a per-call salt.
func (s *passwordService) HashPassword(plaintext string) (string, error) {
	hashed, err := s.hasher.Hash([]byte(plaintext))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashed, nil
}

// VerifyPassword performs a constant-time comparison of plaintext against hash.
func (s *passwordService) VerifyPassword(plaintext, hash string) bool {
	ok, err := s.hasher.Verify([]byte(plaintext), hash)
	if err != nil {
		return false
	}
	return ok
}

// CheckPasswordStrength evaluates plaintext against the password policy,
// reporting every violated rule.
func (s *passwordService) CheckPasswordStrength(plaintext string) StrengthResult {
	violations := s.policy.Violations(plaintext)
	return StrengthResult{
		Valid:      len(violations) == 0,
		Violations: violations,
	}
}
