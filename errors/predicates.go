package errors

import (
	"errors"
	"strings"
)

// IsAuthError checks if an error is authentication-related.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrNotAuthenticated) || errors.Is(err, ErrSessionExpired) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return containsAny(errStr, "unauthenticated", "unauthorized", "401")
}

// IsConnectionError checks if an error is connection-related.
// This includes TLS errors, timeouts, and network connectivity issues.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrConnectionFailed) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return containsAny(errStr,
		"connection refused", "no such host", "network is unreachable", "dial tcp",
		"certificate", "tls", "x509",
		"timeout", "deadline exceeded",
	)
}

// IsPermissionError checks if an error is permission-related.
func IsPermissionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrPermissionDenied) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return containsAny(errStr, "permission denied", "forbidden", "403")
}

// IsCLIError reports whether err already carries user-facing guidance.
func IsCLIError(err error) bool {
	var cliErr *CLIError
	return errors.As(err, &cliErr)
}
