// Package config resolves jwtkit configuration from layered sources.
//
// Precedence, highest first:
//  1. Command-line flags
//  2. Environment variables (SOCOTRA_ prefix, e.g. SOCOTRA_API_URL)
//  3. The profile: <DEFAULT_ENV_ROOT or ~/.socotra>/<profile>.env, then
//     the profile's built-in API URL
//  4. Local config (.socotra.yaml in the git root)
//  5. Global config (~/.config/socotra/config.yaml)
//  6. Built-in defaults
//
// Keys in profile .env files are lower-cased, so API_URL sets "api_url".
//
//	resolver := config.NewResolver(config.DefaultResolverConfig("sandbox", logger))
//	cfg := resolver.Resolve()
//	settings, err := config.SettingsFrom(cfg)
//
// Every resolved value records its Source, which `jwtkit config show`
// prints next to the value.
package config
