package secret

import (
	"errors"
	"fmt"
)

// Secret errors.
var (
	// ErrInvalidInput indicates a malformed argument, such as a minimum
	// strength outside 0..5 or a non-positive size.
	ErrInvalidInput = errors.New("invalid input")

	// ErrWeakSecret indicates a secret scored below the required strength.
	ErrWeakSecret = errors.New("secret is not strong enough")

	// ErrExhaustedAttempts indicates Generate found no passing candidate.
	ErrExhaustedAttempts = errors.New("failed to generate a secret with sufficient entropy")
)

// WeakSecretError carries the strength analysis of a rejected secret.
type WeakSecretError struct {
	MinStrength int
	Strength    Strength
}

// Error implements the error interface.
func (e *WeakSecretError) Error() string {
	return fmt.Sprintf("secret is not strong enough (score=%d < %d)", e.Strength.Score, e.MinStrength)
}

// Unwrap returns ErrWeakSecret.
func (e *WeakSecretError) Unwrap() error {
	return ErrWeakSecret
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
