package yagoutpay

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"fmt"
)

// KeySize is the AES-256 key length the gateway issues keys in.
const KeySize = 32

// The gateway uses one fixed IV agreed out-of-band for every message.
// This is a protocol parameter of YagoutPay, not something to replace
// with a per-call random IV: doing so breaks interoperability.
var staticIV = []byte("0123456789abcdef")

// DecodeKey decodes the base64 key material and enforces the AES-256
// key length.
func DecodeKey(keyBase64 string) ([]byte, error) {
	if keyBase64 == "" {
		return nil, &ConfigError{Field: "encryption key", Reason: "not set"}
	}
	key, err := base64.StdEncoding.DecodeString(keyBase64)
	if err != nil {
		return nil, &ConfigError{Field: "encryption key", Reason: "not valid base64: " + err.Error()}
	}
	if len(key) != KeySize {
		return nil, &ConfigError{Field: "encryption key", Reason: fmt.Sprintf("must decode to %d bytes, got %d", KeySize, len(key))}
	}
	return key, nil
}

// Encrypt encrypts plainText with AES-256-CBC under the fixed IV and
// returns base64 ciphertext. Padding is explicit PKCS#7; the cipher
// primitive is never left to pad on its own.
func Encrypt(plainText string, key []byte) (string, error) {
	if len(key) != KeySize {
		return "", &ConfigError{Field: "encryption key", Reason: fmt.Sprintf("must be %d bytes, got %d", KeySize, len(key))}
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", &EncodingError{Op: "encrypt", Err: err}
	}

	padded := pkcs7Pad([]byte(plainText), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, staticIV).CryptBlocks(out, padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses Encrypt. It fails with EncodingError on malformed
// base64, ciphertext that is not a whole number of blocks, or
// inconsistent padding; it never truncates silently.
func Decrypt(encryptedBase64 string, key []byte) (string, error) {
	if len(key) != KeySize {
		return "", &ConfigError{Field: "encryption key", Reason: fmt.Sprintf("must be %d bytes, got %d", KeySize, len(key))}
	}
	raw, err := base64.StdEncoding.DecodeString(encryptedBase64)
	if err != nil {
		return "", &EncodingError{Op: "decrypt", Err: fmt.Errorf("malformed base64: %w", err)}
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", &EncodingError{Op: "decrypt", Err: fmt.Errorf("ciphertext length %d is not a multiple of the block size", len(raw))}
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", &EncodingError{Op: "decrypt", Err: err}
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, staticIV).CryptBlocks(out, raw)

	unpadded, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", &EncodingError{Op: "decrypt", Err: err}
	}
	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty plaintext")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, fmt.Errorf("invalid padding length %d", n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, fmt.Errorf("inconsistent padding bytes")
		}
	}
	return data[:len(data)-n], nil
}
