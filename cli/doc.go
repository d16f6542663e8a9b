// Package cli is the jwtkit command tree.
//
// Run builds the app, executes one command line and returns the exit
// code. Global flags configure logging (--debug, --verbose), the profile
// whose .env file supplies credentials (--profile) and color
// (--no-color). Each run resolves configuration once and hands commands
// a Services value through the context.
//
//	jwtkit inspect <token> [--key K] [--format json]
//	jwtkit login [profile] --mode admin|admin+tenant|tenant
//	jwtkit sign --key K --sub alice.lee --expires-in 1h
//	jwtkit verify <token> --key-file public.pem
//	jwtkit keygen --alg RS256 --public
//	jwtkit secret generate | secret check [secret]
//	jwtkit nonce --bytes 32
//	jwtkit config show | config set <key> <value>
package cli
