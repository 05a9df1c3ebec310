package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewConfirmationToken returns 128 bits from the system CSPRNG, hex encoded.
func NewConfirmationToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
