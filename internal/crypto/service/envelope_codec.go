package service

import (
	"fmt"

	cryptoDomain "github.com/allisson/tenantguard/internal/crypto/domain"
	apperrors "github.com/allisson/tenantguard/internal/errors"
)

// EnvelopeCodecService encrypts tenant values into the "nonce:tag:ciphertext"
// storage envelope format and decrypts them back.
//
// The AEAD tag is carried as its own envelope field: Encrypt output has the
// tag appended to the ciphertext, so the codec splits it off for storage and
// re-appends it before decryption. Every envelope binds the fixed
// tenant-data context string as AAD, so a ciphertext produced here cannot be
// presented as any other dataset class.
type EnvelopeCodecService struct {
	aeadManager AEADManager
	algorithm   cryptoDomain.Algorithm
}

// NewEnvelopeCodec creates a codec using the given AEAD manager and algorithm.
func NewEnvelopeCodec(aeadManager AEADManager, alg cryptoDomain.Algorithm) *EnvelopeCodecService {
	return &EnvelopeCodecService{
		aeadManager: aeadManager,
		algorithm:   alg,
	}
}

// EncryptForStorage encrypts value under key and returns the envelope string.
//
// Successive calls with identical inputs produce different envelopes (the
// nonce is fresh per call) that all decrypt to the same value, in this
// process or any later one holding the same key.
func (ec *EnvelopeCodecService) EncryptForStorage(value string, key []byte) (string, error) {
	// An empty value would produce an empty ciphertext field, which the
	// envelope format cannot represent; reject it before sealing rather
	// than emit an envelope that can never be decrypted.
	if value == "" {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "value must not be empty")
	}

	aead, err := ec.aeadManager.CreateCipher(key, ec.algorithm)
	if err != nil {
		return "", err
	}

	sealed, nonce, err := aead.Encrypt([]byte(value), []byte(cryptoDomain.TenantDataContext))
	if err != nil {
		return "", err
	}

	// Seal appends the tag; store it as a separate envelope field.
	split := len(sealed) - cryptoDomain.TagSize
	envelope := cryptoDomain.Envelope{
		Nonce:      nonce,
		Tag:        sealed[split:],
		Ciphertext: sealed[:split],
	}

	return envelope.String(), nil
}

// DecryptFromStorage parses an envelope string and decrypts it with key.
//
// Shape problems are rejected with ErrInvalidEnvelopeFormat before any
// cryptographic work. Every cryptographic failure (wrong key, tampered
// nonce, tag, or ciphertext) collapses into ErrDecryptionFailed so callers
// cannot distinguish which check failed.
func (ec *EnvelopeCodecService) DecryptFromStorage(envelope string, key []byte) (string, error) {
	parsed, err := cryptoDomain.ParseEnvelope(envelope)
	if err != nil {
		return "", err
	}

	// Field lengths are part of the envelope shape; checking them here keeps
	// a wrong-sized nonce from ever reaching the AEAD, which would panic
	// instead of returning an error.
	if len(parsed.Nonce) != cryptoDomain.NonceSize || len(parsed.Tag) != cryptoDomain.TagSize {
		return "", fmt.Errorf("%w: wrong nonce or tag length", cryptoDomain.ErrInvalidEnvelopeFormat)
	}

	aead, err := ec.aeadManager.CreateCipher(key, ec.algorithm)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(parsed.Ciphertext)+len(parsed.Tag))
	sealed = append(sealed, parsed.Ciphertext...)
	sealed = append(sealed, parsed.Tag...)

	plaintext, err := aead.Decrypt(sealed, parsed.Nonce, []byte(cryptoDomain.TenantDataContext))
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	return string(plaintext), nil
}
