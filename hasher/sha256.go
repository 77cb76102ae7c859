package hasher

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

var _ Hasher = (*SHA256Hasher)(nil)

// SHA256Hasher digests passwords as unsalted hex-encoded SHA-256. The digest
// is deterministic, so two accounts sharing a password share a digest - a
// known weakness kept for compatibility with existing stores. New deployments
// should configure the bcrypt scheme instead.
type SHA256Hasher struct{}

func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// Digest returns the hex SHA-256 of password. It never fails.
func (h *SHA256Hasher) Digest(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

// Compare checks password against digest in constant time.
func (h *SHA256Hasher) Compare(password, digest string) bool {
	sum := sha256.Sum256([]byte(password))
	computed := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}
