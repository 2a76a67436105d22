package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var amountPattern = regexp.MustCompile(`^\d+\.\d{2}$`)

// ValidAmount reports whether s is a decimal string with exactly two
// fractional digits, the only amount form the gateway accepts.
func ValidAmount(s string) bool {
	return amountPattern.MatchString(s)
}

// IsSuccessStatus reports whether a gateway status string counts as a
// confirmed payment.
func IsSuccessStatus(status string) bool {
	return strings.EqualFold(status, "success")
}

// GenerateUUID generates a UUID v4 string, used as the internal
// payment reference on audit rows.
func GenerateUUID() string {
	return uuid.New().String()
}

// GenerateOrderID generates a unique order number for payments.
func GenerateOrderID() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), RandomHex(4))
}

// RandomHex generates a random hex string of n bytes.
func RandomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
