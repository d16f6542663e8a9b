package auth

import (
	"crypto/sha256"
	"encoding/hex"
)

// DefaultHashPrefixLength is how many hex characters HashPrefix keeps.
const DefaultHashPrefixLength = 12

// HashToken creates a SHA-256 hash of a token or secret.
// Use this to refer to a credential in logs without exposing it.
func HashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// HashPrefix returns a short, log-safe reference to a credential.
func HashPrefix(token string) string {
	return HashToken(token)[:DefaultHashPrefixLength]
}
