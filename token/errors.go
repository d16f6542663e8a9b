package token

import (
	"errors"
	"fmt"
)

// Token errors.
var (
	// ErrMalformedToken indicates a token lacks three segments or a segment
	// cannot be decoded into its expected shape.
	ErrMalformedToken = errors.New("malformed token")

	// ErrVerification indicates the signature does not match the key.
	ErrVerification = errors.New("token signature verification failed")

	// ErrUnsupportedAlgorithm indicates an algorithm other than HS256 or RS256.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrInvalidKey indicates key material that cannot be used for signing.
	ErrInvalidKey = errors.New("invalid key")
)

// UnsupportedAlgorithmError reports the algorithm that was rejected.
type UnsupportedAlgorithmError struct {
	Algorithm string
}

// Error implements the error interface.
func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("unsupported algorithm %q (expected %s or %s)", e.Algorithm, HS256, RS256)
}

// Unwrap returns ErrUnsupportedAlgorithm.
func (e *UnsupportedAlgorithmError) Unwrap() error {
	return ErrUnsupportedAlgorithm
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedToken, fmt.Sprintf(format, args...))
}
