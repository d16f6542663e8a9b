package errors

import "errors"

// Sentinel errors for login and API failures.
var (
	// ErrNotAuthenticated indicates the platform rejected the credentials.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired indicates a token's exp claim has passed.
	ErrSessionExpired = errors.New("session expired")

	// ErrConnectionFailed indicates the API is unreachable.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrPermissionDenied indicates insufficient permissions.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidAPIURL indicates the API URL failed its sanity check.
	ErrInvalidAPIURL = errors.New("invalid API URL")

	// ErrMissingCredentials indicates no username or password was configured.
	ErrMissingCredentials = errors.New("missing credentials")
)
