package yagoutpay

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash computes the integrity hash the gateway uses to detect
// tampering: SHA-256 over the tilde-joined merchant/order/amount/
// currency tuple, hex-encoded, then encrypted with the shared key.
// The five-field order is fixed by the gateway contract.
func Hash(merchantID, orderNo, amount string, key []byte) (string, error) {
	return HashWithCurrency(merchantID, orderNo, amount, CountryETH, CurrencyETB, key)
}

// HashWithCurrency is Hash with an explicit currency pair. The
// deployment settles in Ethiopian Birr, so ETH~ETB is effectively
// constant, but the pair stays a parameter rather than a literal.
func HashWithCurrency(merchantID, orderNo, amount, currencyFrom, currencyTo string, key []byte) (string, error) {
	if merchantID == "" {
		return "", &ConfigError{Field: "merchant id", Reason: "not set"}
	}
	input := strings.Join([]string{merchantID, orderNo, amount, currencyFrom, currencyTo}, "~")
	sum := sha256.Sum256([]byte(input))
	return Encrypt(hex.EncodeToString(sum[:]), key)
}
