package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// saltBytes is the amount of random salt per hash (128 bits before hex encoding)
const saltBytes = 16

// HashPassword hashes a password for storage using SHA-256 with a fresh
// random salt. The stored record has the form "digest:salt" with both parts
// hex-encoded, so hashing the same password twice yields different records.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	saltHex := hex.EncodeToString(salt)
	digest := sha256.Sum256([]byte(saltHex + password))
	return hex.EncodeToString(digest[:]) + ":" + saltHex, nil
}

// CheckPassword verifies a password against a stored "digest:salt" record.
// Malformed or empty records never verify; the caller learns nothing beyond
// the boolean.
func CheckPassword(password, hashRecord string) bool {
	if hashRecord == "" {
		return false
	}

	parts := strings.Split(hashRecord, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return false
	}

	storedDigest, salt := parts[0], parts[1]
	digest := sha256.Sum256([]byte(salt + password))
	computed := hex.EncodeToString(digest[:])

	return subtle.ConstantTimeCompare([]byte(storedDigest), []byte(computed)) == 1
}

// GenerateCode generates a cryptographically secure random hex code of
// length bytes of entropy (invitation codes, one-off secrets)
func GenerateCode(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
