package config

import "strings"

// Configuration keys understood by jwtkit.
const (
	KeyAPIURL         = "api_url"
	KeyTenantHostname = "tenant_hostname"
	KeyTenant         = "tenant"
	KeyTenantUsername = "tenant_username"
	KeyTenantPassword = "tenant_password"
	KeyAdminUsername  = "admin_username"
	KeyAdminPassword  = "admin_password"
	KeyDomain         = "socotra_domain"
	KeyLoginMode      = "login_mode"

	KeyMinStrength   = "min_strength"
	KeyMaxAttempts   = "max_attempts"
	KeyBits          = "bits"
	KeyAllowWeak     = "allow_weak"
	KeyExtraParanoid = "extra_paranoid"

	KeyFormat     = "format"
	KeyMaxRetries = "max_retries"
	KeyNoColor    = "no_color"
)

// Application naming for config files and environment lookup.
const (
	EnvPrefix       = "SOCOTRA_"
	GlobalConfigDir = "socotra"
	LocalConfigName = ".socotra.yaml"
	DefaultDomain   = "sandbox.socotra.com"
)

// KnownKeys lists every key the resolver looks up in the environment,
// whether or not it has a default.
var KnownKeys = []string{
	KeyAPIURL,
	KeyTenantHostname,
	KeyTenant,
	KeyTenantUsername,
	KeyTenantPassword,
	KeyAdminUsername,
	KeyAdminPassword,
	KeyDomain,
	KeyLoginMode,
	KeyMinStrength,
	KeyMaxAttempts,
	KeyBits,
	KeyAllowWeak,
	KeyExtraParanoid,
	KeyFormat,
	KeyMaxRetries,
	KeyNoColor,
}

// SettableKeys lists keys accepted by `config set`. Passwords stay in
// profile .env files.
var SettableKeys = []string{
	KeyAPIURL,
	KeyTenantHostname,
	KeyTenant,
	KeyTenantUsername,
	KeyAdminUsername,
	KeyDomain,
	KeyLoginMode,
	KeyMinStrength,
	KeyMaxAttempts,
	KeyBits,
	KeyAllowWeak,
	KeyExtraParanoid,
	KeyFormat,
	KeyMaxRetries,
}

// Defaults returns the built-in default values.
func Defaults() map[string]string {
	return map[string]string{
		KeyDomain:        DefaultDomain,
		KeyLoginMode:     "tenant",
		KeyMinStrength:   "2",
		KeyMaxAttempts:   "100",
		KeyBits:          "256",
		KeyAllowWeak:     "false",
		KeyExtraParanoid: "false",
		KeyFormat:        "table",
		KeyMaxRetries:    "0",
	}
}

// IsSecretKey reports whether values under key must not be displayed.
func IsSecretKey(key string) bool {
	k := strings.ToLower(key)
	for _, marker := range []string{"password", "secret", "token", "jwt"} {
		if strings.Contains(k, marker) {
			return true
		}
	}
	return false
}

// Masked returns the value of key for display, hiding secret values.
func (c *Resolved) Masked(key string) string {
	v := c.values[key]
	if v == "" || !IsSecretKey(key) {
		return v
	}
	return "********"
}
