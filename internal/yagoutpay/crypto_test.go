package yagoutpay

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("yagout-secret-key-32-bytes-long!")

func TestEncryptDecryptRoundTrip(t *testing.T) {
	cases := []string{
		"hello",
		"",
		"yagout|ME123|ORD-1|100.00|ETH|ETB|SALE|https://s|https://f|WEB~|||",
		strings.Repeat("x", 16),  // exact block boundary
		strings.Repeat("y", 100), // multiple blocks
		"unicode: ብር ✓",
	}

	for _, plain := range cases {
		encrypted, err := Encrypt(plain, testKey)
		require.NoError(t, err)

		_, err = base64.StdEncoding.DecodeString(encrypted)
		require.NoError(t, err, "ciphertext must be valid base64")

		decrypted, err := Decrypt(encrypted, testKey)
		require.NoError(t, err)
		assert.Equal(t, plain, decrypted)
	}
}

func TestEncryptDeterministic(t *testing.T) {
	// The fixed IV makes identical plaintexts encrypt identically;
	// the gateway relies on this.
	a, err := Encrypt("same input", testKey)
	require.NoError(t, err)
	b, err := Encrypt("same input", testKey)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestDecryptRejectsMalformedBase64(t *testing.T) {
	_, err := Decrypt("not!!!base64", testKey)
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
}

func TestDecryptRejectsPartialBlock(t *testing.T) {
	short := base64.StdEncoding.EncodeToString([]byte("abc"))
	_, err := Decrypt(short, testKey)
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
}

func TestDecryptRejectsWrongKey(t *testing.T) {
	encrypted, err := Encrypt("secret payload", testKey)
	require.NoError(t, err)

	otherKey := []byte("another-32-byte-key-for-testing!")
	require.Len(t, otherKey, KeySize)

	decrypted, err := Decrypt(encrypted, otherKey)
	// Wrong key yields garbage: either the padding check trips or the
	// recovered text is not the original. It must never round-trip.
	if err == nil {
		assert.NotEqual(t, "secret payload", decrypted)
	} else {
		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
	}
}

func TestDecryptRejectsCorruptedPadding(t *testing.T) {
	encrypted, err := Encrypt("some payload here", testKey)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	decrypted, err := Decrypt(base64.StdEncoding.EncodeToString(raw), testKey)
	if err == nil {
		assert.NotEqual(t, "some payload here", decrypted)
	} else {
		var encErr *EncodingError
		require.ErrorAs(t, err, &encErr)
	}
}

func TestKeyLengthEnforced(t *testing.T) {
	shortKey := []byte("too-short")

	_, err := Encrypt("data", shortKey)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)

	_, err = Decrypt("aGVsbG8=", shortKey)
	require.ErrorAs(t, err, &cfgErr)
}

func TestDecodeKey(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(testKey)
	key, err := DecodeKey(encoded)
	require.NoError(t, err)
	assert.Equal(t, testKey, key)

	var cfgErr *ConfigError

	_, err = DecodeKey("")
	require.ErrorAs(t, err, &cfgErr)

	_, err = DecodeKey("%%%not-base64%%%")
	require.ErrorAs(t, err, &cfgErr)

	_, err = DecodeKey(base64.StdEncoding.EncodeToString([]byte("short")))
	require.ErrorAs(t, err, &cfgErr)
	assert.True(t, errors.As(err, &cfgErr))
}
