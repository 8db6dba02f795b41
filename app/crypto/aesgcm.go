package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

const ivLengthBytes = 12

// AESGCMEncryptor encrypts payloads exchanged with an external processor
// using AES-256-GCM. The 32-byte key is derived by hashing the processor
// API key with SHA-256, so operators configure a human-manageable secret.
//
// A single fixed IV per processor relationship is acceptable only because
// each relationship uses a dedicated key; the same (key, IV) pair must never
// be shared across two processors. The encryptor holds no mutable state and
// is safe for concurrent use.
type AESGCMEncryptor struct {
	aead cipher.AEAD
	iv   []byte
}

// NewAESGCMEncryptor builds an encryptor from the processor API key and its
// base64url-encoded 12-byte IV.
func NewAESGCMEncryptor(apiKey string, ivBase64URL string) (*AESGCMEncryptor, error) {
	key := sha256.Sum256([]byte(apiKey))

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	iv, err := base64.RawURLEncoding.DecodeString(ivBase64URL)
	if err != nil {
		iv, err = base64.URLEncoding.DecodeString(ivBase64URL)
		if err != nil {
			return nil, fmt.Errorf("iv is not valid base64url: %w", err)
		}
	}
	if len(iv) != ivLengthBytes {
		return nil, fmt.Errorf("iv must be %d bytes, but was %d bytes", ivLengthBytes, len(iv))
	}

	return &AESGCMEncryptor{aead: aead, iv: iv}, nil
}

// Encrypt seals the plaintext and returns base64url(ciphertext||tag) without
// padding. The GCM tag is 128 bits.
func (e *AESGCMEncryptor) Encrypt(plaintext string) string {
	sealed := e.aead.Seal(nil, e.iv, []byte(plaintext), nil)
	return base64.RawURLEncoding.EncodeToString(sealed)
}

// Decrypt is the inverse of Encrypt. A tag mismatch means tampering or a
// key/IV mismatch and always fails; no unauthenticated plaintext is returned.
func (e *AESGCMEncryptor) Decrypt(token string) (string, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("token is not valid base64url: %w", err)
	}
	plaintext, err := e.aead.Open(nil, e.iv, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt failed: %w", err)
	}
	return string(plaintext), nil
}
