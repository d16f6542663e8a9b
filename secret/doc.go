// Package secret decides whether a secret is strong enough and generates
// random secrets that are.
//
// Strength is estimated by an Estimator (zxcvbn by default) as a score from
// 0 to 4. A minimum strength is an integer from 0 to 5: 0 accepts anything
// and 5 can never be reached.
//
// Core types:
//   - Gate: analyzes and generates secrets
//   - Outcome: Passed or Failed, the result of Analyze
//   - Strength: score plus feedback and estimated crack times
//   - WeakSecretError: returned by RequireStrength below the threshold
//
// Example usage:
//
//	gate := secret.NewGate()
//
//	switch out := must(gate.Analyze(2, candidate)).(type) {
//	case secret.Passed:
//	    use(out.Secret)
//	case secret.Failed:
//	    explain(out.Strength)
//	}
//
//	s, err := gate.Generate(secret.GenerateConfig{MinStrength: 2})
//	if errors.Is(err, secret.ErrExhaustedAttempts) {
//	    // no candidate passed within MaxAttempts
//	}
package secret
