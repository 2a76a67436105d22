package yagoutpay

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashDeterministic(t *testing.T) {
	a, err := Hash("ME123", "ORD-1", "100.00", testKey)
	require.NoError(t, err)
	b, err := Hash("ME123", "ORD-1", "100.00", testKey)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHashSensitivity(t *testing.T) {
	base, err := Hash("ME123", "ORD-1", "100.00", testKey)
	require.NoError(t, err)

	otherOrder, err := Hash("ME123", "ORD-2", "100.00", testKey)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherOrder)

	otherAmount, err := Hash("ME123", "ORD-1", "100.01", testKey)
	require.NoError(t, err)
	assert.NotEqual(t, base, otherAmount)
}

func TestHashIsEncryptedHexDigest(t *testing.T) {
	h, err := Hash("ME123", "ORD-1", "100.00", testKey)
	require.NoError(t, err)

	// The hash field is the encrypted form of a 64-char hex SHA-256
	// digest over me_id~order_no~amount~ETH~ETB.
	decrypted, err := Decrypt(h, testKey)
	require.NoError(t, err)
	require.Len(t, decrypted, 64)
	_, err = hex.DecodeString(decrypted)
	require.NoError(t, err)
}

func TestHashRequiresMerchantID(t *testing.T) {
	_, err := Hash("", "ORD-1", "100.00", testKey)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestHashWithCurrencyMatchesDefault(t *testing.T) {
	a, err := Hash("ME123", "ORD-1", "100.00", testKey)
	require.NoError(t, err)
	b, err := HashWithCurrency("ME123", "ORD-1", "100.00", "ETH", "ETB", testKey)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := HashWithCurrency("ME123", "ORD-1", "100.00", "USD", "ETB", testKey)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
