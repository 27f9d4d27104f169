package service

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"math/big"

	cryptoDomain "github.com/allisson/tenantguard/internal/crypto/domain"
	apperrors "github.com/allisson/tenantguard/internal/errors"
)

// Password generation character classes. The generated password always
// contains at least one character from each class.
const (
	passwordLower   = "abcdefghijklmnopqrstuvwxyz"
	passwordUpper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordDigits  = "0123456789"
	passwordSymbols = "!@#$%^&*()-_=+[]{}<>?"
)

// GenerateKey creates a new cryptographically secure 32-byte symmetric key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, apperrors.Wrap(err, "failed to generate key")
	}
	return key, nil
}

// HashSHA256 returns the SHA-256 digest of data.
func HashSHA256(data []byte) []byte {
	digest := sha256.Sum256(data)
	return digest[:]
}

// HMACSign computes the HMAC-SHA256 signature of data under secret.
func HMACSign(data, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(data)
	return mac.Sum(nil)
}

// HMACVerify reports whether signature is a valid HMAC-SHA256 of data under
// secret. The comparison is constant-time.
func HMACVerify(data, signature, secret []byte) bool {
	return hmac.Equal(signature, HMACSign(data, secret))
}

// GeneratePassword creates a random password of the given length drawn from
// lowercase, uppercase, digit, and symbol classes.
//
// One character from each class is forced so generated passwords always pass
// the strength policy; the rest are drawn uniformly from the combined
// alphabet and the result is shuffled with crypto/rand. Length must be at
// least 4 to fit one character per class.
func GeneratePassword(length int) (string, error) {
	if length < 4 {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "password length must be at least 4")
	}

	classes := []string{passwordLower, passwordUpper, passwordDigits, passwordSymbols}
	all := passwordLower + passwordUpper + passwordDigits + passwordSymbols

	password := make([]byte, 0, length)
	for _, class := range classes {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}
	for len(password) < length {
		c, err := randomChar(all)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	// Fisher-Yates shuffle so the forced class characters are not positional.
	for i := len(password) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", apperrors.Wrap(err, "failed to shuffle password")
		}
		password[i], password[j.Int64()] = password[j.Int64()], password[i]
	}

	return string(password), nil
}

// randomChar picks one character from charset using crypto/rand.
func randomChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, fmt.Errorf("failed to generate random character: %w", err)
	}
	return charset[n.Int64()], nil
}
