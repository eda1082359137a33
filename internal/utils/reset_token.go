package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// resetTokenBytes is the entropy of a reset token: 32 bytes, 256 bits.
const resetTokenBytes = 32

// GenerateResetToken returns a fresh plaintext reset token. The plaintext is
// handed to the user by mail and never persisted.
func GenerateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}

// HashResetToken derives the stored form of a reset token. The digest is
// deterministic, so redeeming a candidate token is a single indexed lookup
// on the recomputed digest.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
