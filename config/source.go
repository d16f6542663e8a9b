package config

// Source indicates where a configuration value came from.
type Source string

// Configuration source constants, lowest priority first.
const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault Source = "default"

	// SourceGlobal indicates the value came from global config
	// (~/.config/socotra/config.yaml).
	SourceGlobal Source = "global"

	// SourceLocal indicates the value came from local config
	// (.socotra.yaml in the git root).
	SourceLocal Source = "local"

	// SourceProfile indicates the value came from a named profile: its
	// .env file or the profile's built-in API URL.
	SourceProfile Source = "profile"

	// SourceEnv indicates the value came from an environment variable.
	SourceEnv Source = "env"

	// SourceFlag indicates the value was set via command-line flag.
	SourceFlag Source = "flag"
)
