package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidAmount(t *testing.T) {
	valid := []string{"100.00", "0.01", "12345.99"}
	for _, s := range valid {
		assert.True(t, ValidAmount(s), s)
	}

	invalid := []string{"", "100", "100.0", "100.001", ".99", "100.", "-1.00", "1,00", "abc.de", " 100.00"}
	for _, s := range invalid {
		assert.False(t, ValidAmount(s), s)
	}
}

func TestIsSuccessStatus(t *testing.T) {
	assert.True(t, IsSuccessStatus("Success"))
	assert.True(t, IsSuccessStatus("SUCCESS"))
	assert.True(t, IsSuccessStatus("success"))
	assert.False(t, IsSuccessStatus("Successful payment"))
	assert.False(t, IsSuccessStatus("Failed"))
	assert.False(t, IsSuccessStatus(""))
}

func TestGenerateUUID(t *testing.T) {
	s := GenerateUUID()
	_, err := uuid.Parse(s)
	require.NoError(t, err)
	assert.NotEqual(t, s, GenerateUUID())
}

func TestGenerateOrderID(t *testing.T) {
	id := GenerateOrderID()
	assert.True(t, strings.HasPrefix(id, "ORD-"))
	assert.NotEqual(t, id, GenerateOrderID())
}

func TestRandomHex(t *testing.T) {
	assert.Len(t, RandomHex(4), 8)
	assert.Len(t, RandomHex(16), 32)
}
