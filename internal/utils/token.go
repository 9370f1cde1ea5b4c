package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewVerificationToken returns a hex-encoded token carrying 256 bits of
// entropy, suitable for single-use email verification links.
func NewVerificationToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
