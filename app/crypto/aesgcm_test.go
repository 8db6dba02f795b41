package crypto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validIV() string {
	return base64.RawURLEncoding.EncodeToString([]byte("0123456789ab"))
}

func TestNewAESGCMEncryptorRejectsShortIV(t *testing.T) {
	short := base64.RawURLEncoding.EncodeToString([]byte("short"))
	_, err := NewAESGCMEncryptor("api-key", short)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "12 bytes")
}

func TestNewAESGCMEncryptorRejectsGarbageIV(t *testing.T) {
	_, err := NewAESGCMEncryptor("api-key", "!!not-base64!!")
	require.Error(t, err)
}

func TestNewAESGCMEncryptorAcceptsPaddedIV(t *testing.T) {
	padded := base64.URLEncoding.EncodeToString([]byte("0123456789ab"))
	_, err := NewAESGCMEncryptor("api-key", padded)
	require.NoError(t, err)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	enc, err := NewAESGCMEncryptor("api-key", validIV())
	require.NoError(t, err)

	for _, plaintext := range []string{
		"",
		"hello",
		`{"cardNumber":"1111-1111-1111-1111","amount":10000}`,
		"한글 payload",
	} {
		token := enc.Encrypt(plaintext)
		decrypted, err := enc.Decrypt(token)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	}
}

func TestEncryptEmitsRawBase64URL(t *testing.T) {
	enc, err := NewAESGCMEncryptor("api-key", validIV())
	require.NoError(t, err)

	token := enc.Encrypt("payload")
	assert.NotContains(t, token, "=")
	_, err = base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
}

func TestDecryptFailsOnTamperedToken(t *testing.T) {
	enc, err := NewAESGCMEncryptor("api-key", validIV())
	require.NoError(t, err)

	token := enc.Encrypt("sensitive payload")
	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)

	raw[0] ^= 0x01
	tampered := base64.RawURLEncoding.EncodeToString(raw)

	_, err = enc.Decrypt(tampered)
	require.Error(t, err)
}

func TestDecryptFailsWithDifferentKey(t *testing.T) {
	a, err := NewAESGCMEncryptor("key-a", validIV())
	require.NoError(t, err)
	b, err := NewAESGCMEncryptor("key-b", validIV())
	require.NoError(t, err)

	token := a.Encrypt("payload")
	_, err = b.Decrypt(token)
	require.Error(t, err)
}

func TestDecryptFailsOnMalformedToken(t *testing.T) {
	enc, err := NewAESGCMEncryptor("api-key", validIV())
	require.NoError(t, err)

	_, err = enc.Decrypt("%%%not-a-token%%%")
	require.Error(t, err)
}
