package errors

import (
	"errors"
	"fmt"
	"strings"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ErrorMessenger provides the message and suggestion for each failure.
type ErrorMessenger interface {
	// AuthErrorMessage is used when the platform rejects credentials.
	AuthErrorMessage() (message, suggestion string)

	// SessionExpiredMessage is used when a token has expired.
	SessionExpiredMessage() (message, suggestion string)

	// PermissionDeniedMessage is used for 403 responses.
	PermissionDeniedMessage() (message, suggestion string)

	// ConnectionErrorMessage is used when serverURL cannot be reached.
	ConnectionErrorMessage(serverURL string) (message, suggestion string)

	// TLSErrorMessage is used for certificate failures.
	TLSErrorMessage(serverURL string) (message, suggestion string)

	// TimeoutErrorMessage is used when serverURL does not answer in time.
	TimeoutErrorMessage(serverURL string) (message, suggestion string)

	// InvalidAPIURLMessage is used when serverURL is not a Socotra API.
	InvalidAPIURLMessage(serverURL string) (message, suggestion string)

	// MissingCredentialsMessage is used when a profile lacks credentials.
	MissingCredentialsMessage(profile string) (message, suggestion string)
}

// DefaultMessenger provides jwtkit's messages.
type DefaultMessenger struct{}

func (m DefaultMessenger) AuthErrorMessage() (string, string) {
	return "Socotra account credentials may be invalid (or expired/disabled).",
		"Check the username and password in your profile, or run 'jwtkit login' interactively."
}

func (m DefaultMessenger) SessionExpiredMessage() (string, string) {
	return "The token has expired.", "Run 'jwtkit login' to get a fresh token."
}

func (m DefaultMessenger) PermissionDeniedMessage() (string, string) {
	return "This account may not perform that action.",
		"Try an admin login mode or ask a tenant administrator for access."
}

func (m DefaultMessenger) ConnectionErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Cannot connect to the API at %s", serverURL),
		"Check that:\n  - The API URL is correct\n  - Your network connection is working"
}

func (m DefaultMessenger) TLSErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("TLS/certificate error connecting to %s", serverURL),
		"Check that the server certificate is valid."
}

func (m DefaultMessenger) TimeoutErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Connection to %s timed out", serverURL),
		"The API may be overloaded or unreachable.\nTry again in a moment."
}

func (m DefaultMessenger) InvalidAPIURLMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Invalid API URL: %s (are you currently offline?)", serverURL),
		"Use e.g. https://api.sandbox.socotra.com, or pick a profile with --profile."
}

func (m DefaultMessenger) MissingCredentialsMessage(profile string) (string, string) {
	if profile == "" {
		profile = "<default profile>"
	}
	return fmt.Sprintf("No username or password configured for %s.", profile),
		"Set TENANT_USERNAME and TENANT_PASSWORD (or ADMIN_*) in the profile's .env file."
}

// WrapConfig configures error wrapping behavior.
type WrapConfig struct {
	Messenger ErrorMessenger
}

// Option configures WrapConfig.
type Option func(*WrapConfig)

// WithMessenger sets a custom error messenger.
func WithMessenger(m ErrorMessenger) Option {
	return func(c *WrapConfig) {
		c.Messenger = m
	}
}

func getMessenger(opts []Option) ErrorMessenger {
	cfg := &WrapConfig{
		Messenger: DefaultMessenger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.Messenger
}

// WrapAuthError wraps authentication-related errors with helpful guidance.
// The original error text is kept as details.
func WrapAuthError(err error, opts ...Option) error {
	if err == nil {
		return nil
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	messenger := getMessenger(opts)

	switch {
	case errors.Is(err, ErrSessionExpired):
		msg, suggestion := messenger.SessionExpiredMessage()
		return &CLIError{Err: err, Message: msg, Suggestion: suggestion}
	case IsPermissionError(err):
		msg, suggestion := messenger.PermissionDeniedMessage()
		return &CLIError{Err: wrapIfNot(err, ErrPermissionDenied), Message: msg, Details: err.Error(), Suggestion: suggestion}
	case IsAuthError(err):
		msg, suggestion := messenger.AuthErrorMessage()
		return &CLIError{Err: wrapIfNot(err, ErrNotAuthenticated), Message: msg, Details: err.Error(), Suggestion: suggestion}
	}

	return err
}

// WrapConnectionError wraps connection-related errors with helpful guidance.
func WrapConnectionError(err error, serverURL string, opts ...Option) error {
	if err == nil {
		return nil
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	errStr := strings.ToLower(err.Error())
	messenger := getMessenger(opts)

	if errors.Is(err, ErrInvalidAPIURL) {
		msg, suggestion := messenger.InvalidAPIURLMessage(serverURL)
		return &CLIError{Err: err, Message: msg, Details: err.Error(), Suggestion: suggestion}
	}

	if containsAny(errStr, "connection refused", "no such host", "network is unreachable", "dial tcp") {
		msg, suggestion := messenger.ConnectionErrorMessage(serverURL)
		return &CLIError{Err: wrapIfNot(err, ErrConnectionFailed), Message: msg, Suggestion: suggestion}
	}

	if containsAny(errStr, "certificate", "tls", "x509") {
		msg, suggestion := messenger.TLSErrorMessage(serverURL)
		return &CLIError{Err: wrapIfNot(err, ErrConnectionFailed), Message: msg, Details: err.Error(), Suggestion: suggestion}
	}

	if containsAny(errStr, "timeout", "deadline exceeded") {
		msg, suggestion := messenger.TimeoutErrorMessage(serverURL)
		return &CLIError{Err: wrapIfNot(err, ErrConnectionFailed), Message: msg, Suggestion: suggestion}
	}

	return err
}

// Wrap applies WrapAuthError then WrapConnectionError.
func Wrap(err error, serverURL string, opts ...Option) error {
	return WrapConnectionError(WrapAuthError(err, opts...), serverURL, opts...)
}

// NewMissingCredentialsError creates an error for a profile without
// usable credentials.
func NewMissingCredentialsError(profile string, opts ...Option) error {
	msg, suggestion := getMessenger(opts).MissingCredentialsMessage(profile)
	return &CLIError{
		Err:        ErrMissingCredentials,
		Message:    msg,
		Suggestion: suggestion,
	}
}

// NewNotAuthenticatedError creates an error for rejected credentials.
func NewNotAuthenticatedError(opts ...Option) error {
	msg, suggestion := getMessenger(opts).AuthErrorMessage()
	return &CLIError{
		Err:        ErrNotAuthenticated,
		Message:    msg,
		Suggestion: suggestion,
	}
}

// NewSessionExpiredError creates an error for an expired token.
func NewSessionExpiredError(opts ...Option) error {
	msg, suggestion := getMessenger(opts).SessionExpiredMessage()
	return &CLIError{
		Err:        ErrSessionExpired,
		Message:    msg,
		Suggestion: suggestion,
	}
}

// wrapIfNot keeps err in the chain while making errors.Is(…, sentinel) true.
func wrapIfNot(err, sentinel error) error {
	if errors.Is(err, sentinel) {
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
