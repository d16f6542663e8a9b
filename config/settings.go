package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/socotra/jwtkit/secret"
)

// ParanoidStrength is the minimum strength forced by extra_paranoid.
const ParanoidStrength = 4

// ErrConflictingStrength is returned when allow_weak and extra_paranoid
// are both set.
var ErrConflictingStrength = errors.New("allow_weak and extra_paranoid are mutually exclusive")

// Settings is the secret-generation configuration, validated once.
type Settings struct {
	MinStrength   int
	MaxAttempts   int
	Bits          int
	AllowWeak     bool
	ExtraParanoid bool
}

// SettingsFrom builds Settings from resolved config.
// allow_weak forces strength 0 and extra_paranoid forces 4.
func SettingsFrom(c *Resolved) (Settings, error) {
	s := Settings{
		AllowWeak:     c.Bool(KeyAllowWeak),
		ExtraParanoid: c.Bool(KeyExtraParanoid),
		MaxAttempts:   secret.DefaultMaxAttempts,
		Bits:          secret.DefaultBits,
	}
	if s.AllowWeak && s.ExtraParanoid {
		return Settings{}, ErrConflictingStrength
	}

	var err error
	switch {
	case s.AllowWeak:
		s.MinStrength = secret.MinStrength
	case s.ExtraParanoid:
		s.MinStrength = ParanoidStrength
	default:
		if s.MinStrength, err = intOr(c, KeyMinStrength, 2); err != nil {
			return Settings{}, err
		}
	}
	if s.MinStrength < secret.MinStrength || s.MinStrength > secret.MaxStrength {
		return Settings{}, fmt.Errorf("%s must be between %d and %d, got %d",
			KeyMinStrength, secret.MinStrength, secret.MaxStrength, s.MinStrength)
	}

	if s.MaxAttempts, err = intOr(c, KeyMaxAttempts, secret.DefaultMaxAttempts); err != nil {
		return Settings{}, err
	}
	if s.MaxAttempts <= 0 {
		return Settings{}, fmt.Errorf("%s must be positive, got %d", KeyMaxAttempts, s.MaxAttempts)
	}

	if s.Bits, err = intOr(c, KeyBits, secret.DefaultBits); err != nil {
		return Settings{}, err
	}
	if s.Bits <= 0 {
		return Settings{}, fmt.Errorf("%s must be positive, got %d", KeyBits, s.Bits)
	}

	return s, nil
}

// GenerateConfig converts the settings for secret.Gate.Generate.
func (s Settings) GenerateConfig() secret.GenerateConfig {
	return secret.GenerateConfig{
		MinStrength: s.MinStrength,
		MaxAttempts: s.MaxAttempts,
		Bits:        s.Bits,
	}
}

func intOr(c *Resolved, key string, fallback int) (int, error) {
	if strings.TrimSpace(c.Get(key)) == "" {
		return fallback, nil
	}
	return c.Int(key)
}

// Login holds credentials for the platform login endpoints.
type Login struct {
	APIURL         string
	TenantHostname string
	TenantPrefix   string
	Username       string
	Password       string
	AdminUsername  string
	AdminPassword  string
	Domain         string
	Mode           string
}

// LoginFrom extracts login settings. Tenant credentials fall back to
// the admin ones, and the API URL falls back to https://api.<domain>.
func LoginFrom(c *Resolved) Login {
	l := Login{
		APIURL:         c.Get(KeyAPIURL),
		TenantHostname: c.Get(KeyTenantHostname),
		TenantPrefix:   c.Get(KeyTenant),
		Username:       c.Get(KeyTenantUsername),
		Password:       c.Get(KeyTenantPassword),
		AdminUsername:  c.Get(KeyAdminUsername),
		AdminPassword:  c.Get(KeyAdminPassword),
		Domain:         c.Get(KeyDomain),
		Mode:           c.Get(KeyLoginMode),
	}
	if l.Domain == "" {
		l.Domain = DefaultDomain
	}
	if l.Username == "" {
		l.Username = l.AdminUsername
	}
	if l.Password == "" {
		l.Password = l.AdminPassword
	}
	if l.APIURL == "" {
		l.APIURL = "https://api." + l.Domain
	}
	l.APIURL = strings.TrimRight(l.APIURL, "/")
	return l
}

// Tenant returns the tenant hostname, or the conventional
// <prefix>.co.<domain> name when none is configured. The prefix defaults
// to <username>-configeditor.
func (l Login) Tenant() string {
	if l.TenantHostname != "" {
		return l.TenantHostname
	}
	prefix := l.TenantPrefix
	if prefix == "" {
		prefix = l.Username + "-configeditor"
	}
	return prefix + ".co." + l.Domain
}
