package auth

import (
	"fmt"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultTokenIDLength is the length of generated token IDs (jti).
const DefaultTokenIDLength = 21

// NewTokenID generates a URL-safe unique identifier suitable for the jti claim.
func NewTokenID() (string, error) {
	id, err := nanoid.New(DefaultTokenIDLength)
	if err != nil {
		return "", fmt.Errorf("generate token id: %w", err)
	}
	return id, nil
}
