package security

import (
	"crypto/rand"
	"encoding/hex"
)

// apiKeyBytes is the entropy behind a device credential (256 bits; the
// minimum acceptable is 128).
const apiKeyBytes = 32

// GenerateAPIKey mints an opaque bearer secret from crypto/rand. The plain
// key is shown to its owner once and must never be logged.
func GenerateAPIKey() (string, error) {
	b := make([]byte, apiKeyBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "lab_" + hex.EncodeToString(b), nil
}
