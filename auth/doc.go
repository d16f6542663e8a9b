// Package auth provides small credential helpers shared by the CLI.
//
// This package includes:
//   - Token hashing, used to refer to tokens and secrets in logs
//   - Token ID generation for the jti claim
//
// # Token Hashing
//
//	ref := auth.HashPrefix(candidate)
//	logger.Debug("rejected candidate", "ref", ref)
//
// # Token IDs
//
//	jti, err := auth.NewTokenID()
package auth
