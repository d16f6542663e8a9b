package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ResolverConfig configures the hierarchical config resolver.
type ResolverConfig struct {
	// EnvPrefix is prepended to key names for environment variable lookup.
	// With EnvPrefix "SOCOTRA_", key "api_url" maps to SOCOTRA_API_URL.
	EnvPrefix string

	// GlobalConfigDir is the name of the directory under ~/.config/
	// where the global config is stored.
	GlobalConfigDir string

	// GlobalConfigFile is the filename for global config.
	// Defaults to "config.yaml" if empty.
	GlobalConfigFile string

	// LocalConfigName is the filename for local config in the git root.
	LocalConfigName string

	// ProfileDir holds <profile>.env files.
	// Defaults to DefaultProfileDir() if empty.
	ProfileDir string

	// Profile selects <ProfileDir>/<Profile>.env and the profile's
	// built-in API URL. The empty profile loads <ProfileDir>/.env.
	Profile string

	// Defaults provides the default values for configuration keys.
	Defaults map[string]string

	// ValidGlobalKeys lists keys that can be set in global config.
	// If nil, all keys are valid.
	ValidGlobalKeys []string

	// ValidLocalKeys lists keys that can be set in local config.
	// If nil, all keys are valid.
	ValidLocalKeys []string

	// GitRootFinder is a function that finds the git root directory.
	// If nil, uses a simple git root detection.
	GitRootFinder func(startDir string) (string, error)

	// Logger receives warnings and debug output.
	// Defaults to a null logger.
	Logger hclog.Logger
}

func (c ResolverConfig) globalConfigFile() string {
	if c.GlobalConfigFile != "" {
		return c.GlobalConfigFile
	}
	return "config.yaml"
}

func (c ResolverConfig) profileDir() string {
	if c.ProfileDir != "" {
		return c.ProfileDir
	}
	return DefaultProfileDir()
}

// Resolver handles hierarchical configuration resolution.
type Resolver struct {
	config      ResolverConfig
	logger      hclog.Logger
	globalPath  string
	localPath   string
	profilePath string
	gitRoot     string

	// Warnings collects non-fatal issues during resolution.
	Warnings []string
}

// NewResolver creates a new configuration resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	resolver := newResolver(cfg)

	finder := cfg.GitRootFinder
	if finder == nil {
		finder = func(dir string) (string, error) { return findGitRoot(dir), nil }
	}
	if root, err := finder("."); err == nil && root != "" {
		resolver.gitRoot = root
		if cfg.LocalConfigName != "" {
			resolver.localPath = filepath.Join(root, cfg.LocalConfigName)
		}
	}

	if cfg.GlobalConfigDir != "" {
		if home, err := os.UserHomeDir(); err == nil {
			resolver.globalPath = filepath.Join(
				home, ".config", cfg.GlobalConfigDir, cfg.globalConfigFile(),
			)
		}
	}

	if ValidProfileName(cfg.Profile) {
		resolver.profilePath = ProfilePath(cfg.profileDir(), cfg.Profile)
	} else {
		resolver.warn(fmt.Sprintf("ignoring profile %q: name must not contain path separators or \"..\"", cfg.Profile))
	}

	return resolver
}

// NewResolverWithPaths creates a resolver with explicit file paths.
// Empty paths disable the corresponding source.
func NewResolverWithPaths(cfg ResolverConfig, globalPath, localPath, profilePath string) *Resolver {
	resolver := newResolver(cfg)
	resolver.globalPath = globalPath
	resolver.localPath = localPath
	resolver.profilePath = profilePath
	return resolver
}

func newResolver(cfg ResolverConfig) *Resolver {
	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Resolver{config: cfg, logger: logger}
}

// warn adds a warning and logs it.
func (r *Resolver) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	r.logger.Warn(msg)
}

// Resolved holds the final merged configuration.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

// Get returns the value for a key, or empty string if not set.
func (c *Resolved) Get(key string) string {
	return c.values[key]
}

// Source returns the source of a key's value.
func (c *Resolved) Source(key string) Source {
	return c.sources[key]
}

// GetWithSource returns both the value and its source.
func (c *Resolved) GetWithSource(key string) (string, Source) {
	return c.values[key], c.sources[key]
}

// Bool parses a key as a boolean. Unset or unparsable values are false.
func (c *Resolved) Bool(key string) bool {
	b, err := strconv.ParseBool(c.values[key])
	return err == nil && b
}

// Int parses a key as an integer.
func (c *Resolved) Int(key string) (int, error) {
	raw := c.values[key]
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s=%q (from %s) is not an integer", key, raw, c.sources[key])
	}
	return n, nil
}

// All returns a copy of all key-value pairs.
func (c *Resolved) All() map[string]string {
	result := make(map[string]string, len(c.values))
	for k, v := range c.values {
		result[k] = v
	}
	return result
}

// Keys returns all configuration keys, sorted.
func (c *Resolved) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve builds the final config by merging all sources.
// Priority (highest to lowest): env > profile > local > global > defaults.
func (r *Resolver) Resolve() *Resolved {
	cfg := &Resolved{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}

	r.applyDefaults(cfg)
	r.applyYAML(cfg, r.globalPath, r.config.ValidGlobalKeys, SourceGlobal)
	r.applyYAML(cfg, r.localPath, r.config.ValidLocalKeys, SourceLocal)
	r.applyProfile(cfg)
	r.applyEnv(cfg)

	return cfg
}

// ResolveWithFlags resolves config and applies flag overrides.
// Empty flag values are ignored.
func (r *Resolver) ResolveWithFlags(flags map[string]string) *Resolved {
	return r.Resolve().WithOverrides(flags)
}

// WithOverrides returns a copy of c with flag values on top. Empty
// values are ignored; c itself is unchanged.
func (c *Resolved) WithOverrides(flags map[string]string) *Resolved {
	out := &Resolved{
		values:  make(map[string]string, len(c.values)+len(flags)),
		sources: make(map[string]Source, len(c.sources)+len(flags)),
	}
	for k, v := range c.values {
		out.values[k] = v
		out.sources[k] = c.sources[k]
	}
	for key, value := range flags {
		if value != "" {
			out.values[key] = value
			out.sources[key] = SourceFlag
		}
	}
	return out
}

func (r *Resolver) applyDefaults(cfg *Resolved) {
	for key, value := range r.config.Defaults {
		cfg.values[key] = value
		cfg.sources[key] = SourceDefault
	}
}

func (r *Resolver) applyYAML(cfg *Resolved, path string, validKeys []string, source Source) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return // File doesn't exist - not an error
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		r.warn(fmt.Sprintf("could not parse %s: %v", path, err))
		return
	}

	for key, value := range parsed {
		if len(validKeys) > 0 && !contains(validKeys, key) {
			r.logger.Debug("ignoring unknown config key", "path", path, "key", key)
			continue
		}
		if strVal := toString(value); strVal != "" {
			cfg.values[key] = strVal
			cfg.sources[key] = source
		}
	}
}

func (r *Resolver) applyProfile(cfg *Resolved) {
	if url := ProfileAPIURL(r.config.Profile); url != "" {
		cfg.values[KeyAPIURL] = url
		cfg.sources[KeyAPIURL] = SourceProfile
	}

	if r.profilePath == "" {
		return
	}
	if _, err := os.Stat(r.profilePath); err != nil {
		r.logger.Debug("env file not found", "path", r.profilePath)
		return
	}

	env, err := godotenv.Read(r.profilePath)
	if err != nil {
		r.warn(fmt.Sprintf("could not parse %s: %v", r.profilePath, err))
		return
	}
	r.logger.Debug("loaded env from file", "path", r.profilePath, "keys", len(env))

	for key, value := range env {
		if value == "" {
			continue
		}
		k := strings.ToLower(key)
		cfg.values[k] = value
		cfg.sources[k] = SourceProfile
	}
}

func (r *Resolver) applyEnv(cfg *Resolved) {
	if r.config.EnvPrefix != "" {
		allKeys := make(map[string]bool)
		for k := range r.config.Defaults {
			allKeys[k] = true
		}
		for _, k := range KnownKeys {
			allKeys[k] = true
		}
		for k := range cfg.values {
			allKeys[k] = true
		}

		for key := range allKeys {
			envKey := r.config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
			if value := os.Getenv(envKey); value != "" {
				cfg.values[key] = value
				cfg.sources[key] = SourceEnv
			}
		}
	}

	// Also check standard NO_COLOR env var (always, regardless of prefix)
	if _, hasNoColor := os.LookupEnv("NO_COLOR"); hasNoColor {
		cfg.values[KeyNoColor] = "true"
		cfg.sources[KeyNoColor] = SourceEnv
	}
}

// GitRoot returns the detected git root directory.
func (r *Resolver) GitRoot() string {
	return r.gitRoot
}

// GlobalPath returns the path to the global config file.
func (r *Resolver) GlobalPath() string {
	return r.globalPath
}

// LocalPath returns the path to the local config file.
func (r *Resolver) LocalPath() string {
	return r.localPath
}

// ProfilePath returns the path to the profile .env file.
func (r *Resolver) ProfilePath() string {
	return r.profilePath
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int, int64, float64:
		return fmt.Sprintf("%v", val)
	default:
		return ""
	}
}

// findGitRoot finds the git root by looking for .git directory.
func findGitRoot(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// DefaultResolverConfig returns the resolver configuration used by the
// jwtkit CLI for the given profile.
func DefaultResolverConfig(profile string, logger hclog.Logger) ResolverConfig {
	return ResolverConfig{
		EnvPrefix:       EnvPrefix,
		GlobalConfigDir: GlobalConfigDir,
		LocalConfigName: LocalConfigName,
		Profile:         profile,
		Defaults:        Defaults(),
		ValidGlobalKeys: SettableKeys,
		ValidLocalKeys:  SettableKeys,
		Logger:          logger,
	}
}
