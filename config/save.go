package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SaveConfig persists values into the global or local YAML files.
type SaveConfig struct {
	// GlobalConfigDir is the directory under ~/.config/ for global config.
	GlobalConfigDir string

	// GlobalConfigFile is the filename. Defaults to "config.yaml".
	GlobalConfigFile string

	// LocalConfigName is the filename for local config in git root.
	LocalConfigName string

	// ValidKeys lists keys that may be saved. If nil, all keys are valid.
	ValidKeys []string
}

// DefaultSaveConfig returns the SaveConfig matching DefaultResolverConfig.
func DefaultSaveConfig() SaveConfig {
	return SaveConfig{
		GlobalConfigDir: GlobalConfigDir,
		LocalConfigName: LocalConfigName,
		ValidKeys:       SettableKeys,
	}
}

// GlobalPath returns the global config file path.
func (c SaveConfig) GlobalPath() (string, error) {
	if c.GlobalConfigDir == "" {
		return "", fmt.Errorf("global config directory not configured")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	file := c.GlobalConfigFile
	if file == "" {
		file = "config.yaml"
	}
	return filepath.Join(home, ".config", c.GlobalConfigDir, file), nil
}

func (c SaveConfig) validate(key string) error {
	if len(c.ValidKeys) > 0 && !contains(c.ValidKeys, key) {
		return fmt.Errorf("unknown config key: %s\n\nValid keys: %s",
			key, strings.Join(c.ValidKeys, ", "))
	}
	return nil
}

// SaveGlobal saves a key-value pair to the global config file.
func (c SaveConfig) SaveGlobal(key, value string) error {
	if err := c.validate(key); err != nil {
		return err
	}
	path, err := c.GlobalPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return updateYAML(path, 0o600, func(m map[string]interface{}) {
		m[key] = parseValue(value)
	})
}

// SaveLocal saves a key-value pair to the local config file in the git root.
func (c SaveConfig) SaveLocal(gitRoot, key, value string) error {
	if gitRoot == "" {
		return fmt.Errorf("git root not found")
	}
	if c.LocalConfigName == "" {
		return fmt.Errorf("local config name not configured")
	}
	if err := c.validate(key); err != nil {
		return err
	}
	// Local config is shared with the repository and should be readable.
	return updateYAML(filepath.Join(gitRoot, c.LocalConfigName), 0o644, func(m map[string]interface{}) {
		m[key] = parseValue(value)
	})
}

// DeleteGlobalKey removes a key from the global config.
// A missing file is not an error.
func (c SaveConfig) DeleteGlobalKey(key string) error {
	path, err := c.GlobalPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return updateYAML(path, 0o600, func(m map[string]interface{}) {
		delete(m, key)
	})
}

func updateYAML(path string, perm os.FileMode, update func(map[string]interface{})) error {
	existing := make(map[string]interface{})
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &existing); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		if existing == nil {
			existing = make(map[string]interface{})
		}
	}

	update(existing)

	data, err := yaml.Marshal(existing)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

// parseValue converts string values to appropriate types for YAML.
func parseValue(value string) interface{} {
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	default:
		return value
	}
}
