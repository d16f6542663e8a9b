package token

import (
	"encoding/json"
	"time"
)

// Algorithm identifies a signing algorithm.
type Algorithm string

// Supported algorithms.
const (
	HS256 Algorithm = "HS256"
	RS256 Algorithm = "RS256"
)

// ParseAlgorithm converts a header or flag value into a supported Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch alg := Algorithm(s); alg {
	case HS256, RS256:
		return alg, nil
	default:
		return "", &UnsupportedAlgorithmError{Algorithm: s}
	}
}

// Header is the decoded first segment of a token.
type Header map[string]any

// Alg returns the declared algorithm, or "" when absent.
func (h Header) Alg() string {
	s, _ := h["alg"].(string)
	return s
}

// Typ returns the declared type, or "" when absent.
func (h Header) Typ() string {
	s, _ := h["typ"].(string)
	return s
}

// Claims is the decoded payload of a token.
type Claims map[string]any

// TemporalClaims are the claims holding Unix-epoch seconds.
var TemporalClaims = []string{"exp", "iat", "nbf"}

// IsTemporal reports whether name is one of exp, iat or nbf.
func IsTemporal(name string) bool {
	for _, c := range TemporalClaims {
		if c == name {
			return true
		}
	}
	return false
}

// Time interprets a claim as Unix-epoch seconds.
// The boolean is false when the claim is missing or not numeric.
func (c Claims) Time(name string) (time.Time, bool) {
	var secs int64
	switch v := c[name].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			f, ferr := v.Float64()
			if ferr != nil {
				return time.Time{}, false
			}
			n = int64(f)
		}
		secs = n
	case float64:
		secs = int64(v)
	case int64:
		secs = v
	case int:
		secs = int64(v)
	default:
		return time.Time{}, false
	}
	return time.Unix(secs, 0), true
}

// Inspection is the read-only result of decoding every segment of a token.
type Inspection struct {
	Header    Header
	Claims    Claims
	Signature []byte
	Raw       string

	// Verified is true only when a key was supplied and the signature matched.
	Verified bool
}

// Expired reports whether the exp claim is present and before now.
// This is informational; the codec never rejects expired tokens.
func (i *Inspection) Expired(now time.Time) bool {
	exp, ok := i.Claims.Time("exp")
	return ok && exp.Before(now)
}

// Verified is the result of a successful signature check.
type Verified struct {
	Claims    Claims
	Key       []byte
	Algorithm Algorithm
}
