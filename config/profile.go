package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ProfileRootEnv overrides the directory holding profile .env files.
const ProfileRootEnv = "DEFAULT_ENV_ROOT"

// ProfileAPIURL returns the built-in API URL for a named profile, or ""
// when the profile has none.
func ProfileAPIURL(name string) string {
	switch name {
	case "dev", "docker-dev", "local-dev":
		return "http://localhost:8080"
	case "develop", "sandbox", "staging":
		return "https://api." + name + ".socotra.com"
	default:
		return ""
	}
}

// DefaultProfileDir returns $DEFAULT_ENV_ROOT, or ~/.socotra.
func DefaultProfileDir() string {
	if dir := os.Getenv(ProfileRootEnv); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".socotra")
}

// ValidProfileName reports whether name can be used as a profile file
// name without leaving the profile directory.
func ValidProfileName(name string) bool {
	return !strings.ContainsAny(name, `/\`+string(os.PathSeparator)) &&
		!strings.Contains(name, "..")
}

// ProfilePath returns the .env file for profile inside dir. The empty
// profile maps to dir/.env. Names that are not ValidProfileName map to "".
func ProfilePath(dir, profile string) string {
	if dir == "" || !ValidProfileName(profile) {
		return ""
	}
	return filepath.Join(dir, profile+".env")
}
