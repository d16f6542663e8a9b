// Package jwtkit provides credential tooling for the Socotra API:
// decoding, signing and verifying JWTs, logging in, and checking or
// generating secrets.
//
// The package is organized into subpackages by domain:
//
//   - token: JWT decode, inspect, create, verify and key generation
//   - secret: secret strength scoring, gating and generation
//   - login: platform login endpoints and interactive login
//   - config: layered configuration (defaults, YAML files, profile .env, env, flags)
//   - http: logging HTTP client with request sequence numbers and optional retry
//   - errors: user-facing CLI errors with suggestions
//   - prompt: interactive questions with no-echo secrets
//   - render: terminal and JSON output
//   - auth: token hashing and token IDs
//   - cli: the jwtkit command tree
//   - testutil: test utilities and fixtures
//
// # Quick Start
//
//	import "github.com/socotra/jwtkit/token"
//
//	raw, _ := token.Create(token.HS256, key, token.Claims{"sub": "alice.lee"})
//	insp, _ := token.Inspect(raw, token.WithKey(key))
//	fmt.Println(insp.Verified, insp.Claims["sub"])
//
// See individual package documentation for detailed usage.
package jwtkit
