package secret

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/hashicorp/go-hclog"

	"github.com/socotra/jwtkit/auth"
)

// Generation defaults.
const (
	DefaultMaxAttempts = 100
	DefaultBits        = 256
	DefaultNonceBytes  = 256 / 8
)

// Outcome is the result of Analyze: either Passed or Failed.
type Outcome interface {
	outcome()
}

// Passed holds a secret that met the minimum strength.
type Passed struct {
	Secret string
}

// Failed holds the analysis of a secret below the minimum strength.
type Failed struct {
	MinStrength int
	Strength    Strength
}

func (Passed) outcome() {}
func (Failed) outcome() {}

// Gate analyzes and generates secrets. It holds no per-call state and is
// safe for concurrent use when its random source is.
type Gate struct {
	estimator Estimator
	random    io.Reader
	logger    hclog.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithEstimator replaces the zxcvbn estimator.
func WithEstimator(e Estimator) Option {
	return func(g *Gate) {
		g.estimator = e
	}
}

// WithRandom replaces crypto/rand as the source of generated secrets.
func WithRandom(r io.Reader) Option {
	return func(g *Gate) {
		g.random = r
	}
}

// WithLogger sets the logger for generation diagnostics.
func WithLogger(l hclog.Logger) Option {
	return func(g *Gate) {
		g.logger = l
	}
}

// NewGate creates a Gate.
func NewGate(opts ...Option) *Gate {
	g := &Gate{
		estimator: ZxcvbnEstimator{},
		random:    rand.Reader,
		logger:    hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.estimator == nil {
		g.estimator = ZxcvbnEstimator{}
	}
	if g.random == nil {
		g.random = rand.Reader
	}
	if g.logger == nil {
		g.logger = hclog.NewNullLogger()
	}
	return g
}

// Score estimates the strength of secret.
func (g *Gate) Score(secret string, userInputs ...string) (Strength, error) {
	if !utf8.ValidString(secret) {
		return Strength{}, invalid("secret must be valid UTF-8 text")
	}
	return g.estimator.Estimate(secret, userInputs...), nil
}

// Analyze compares the strength of secret against minStrength (0..5).
func (g *Gate) Analyze(minStrength int, secret string, userInputs ...string) (Outcome, error) {
	if err := validateStrength(minStrength); err != nil {
		return nil, err
	}
	s, err := g.Score(secret, userInputs...)
	if err != nil {
		return nil, err
	}
	if s.Score >= minStrength {
		return Passed{Secret: secret}, nil
	}
	return Failed{MinStrength: minStrength, Strength: s}, nil
}

// RequireStrength returns secret when it meets minStrength and a
// *WeakSecretError otherwise.
func (g *Gate) RequireStrength(minStrength int, secret string, userInputs ...string) (string, error) {
	out, err := g.Analyze(minStrength, secret, userInputs...)
	if err != nil {
		return "", err
	}
	switch o := out.(type) {
	case Passed:
		return o.Secret, nil
	case Failed:
		return "", &WeakSecretError{MinStrength: o.MinStrength, Strength: o.Strength}
	default:
		return "", fmt.Errorf("unexpected outcome %T", out)
	}
}

// GenerateConfig configures Generate.
type GenerateConfig struct {
	// MinStrength is the score every returned secret meets (0..5).
	MinStrength int

	// MaxAttempts bounds how many candidates are tried.
	// Defaults to DefaultMaxAttempts if zero.
	MaxAttempts int

	// Bits is the entropy of each candidate, rounded up to whole bytes.
	// Defaults to DefaultBits if zero.
	Bits int
}

func (c GenerateConfig) maxAttempts() int {
	if c.MaxAttempts == 0 {
		return DefaultMaxAttempts
	}
	return c.MaxAttempts
}

func (c GenerateConfig) bits() int {
	if c.Bits == 0 {
		return DefaultBits
	}
	return c.Bits
}

// Validate checks the configuration without drawing randomness.
func (c GenerateConfig) Validate() error {
	if err := validateStrength(c.MinStrength); err != nil {
		return err
	}
	if c.maxAttempts() < 0 {
		return invalid("max attempts must be positive, got %d", c.MaxAttempts)
	}
	if c.bits() < 0 {
		return invalid("bits must be positive, got %d", c.Bits)
	}
	return nil
}

// Generate returns a random base64url secret that meets cfg.MinStrength.
// It never returns a weak secret: after MaxAttempts rejected candidates it
// fails with ErrExhaustedAttempts.
func (g *Gate) Generate(cfg GenerateConfig) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	size := (cfg.bits() + 7) / 8
	attempts := cfg.maxAttempts()

	for i := 1; i <= attempts; i++ {
		candidate, err := nonce(g.random, size)
		if err != nil {
			return "", err
		}

		out, err := g.Analyze(cfg.MinStrength, candidate)
		if err != nil {
			return "", err
		}
		if failed, ok := out.(Failed); ok {
			warning := failed.Strength.Warning
			if warning == "" {
				warning = fmt.Sprintf("score %d < %d", failed.Strength.Score, cfg.MinStrength)
			}
			g.logger.Debug("generated secret is weak",
				"attempt", i, "ref", auth.HashPrefix(candidate), "warning", warning)
			continue
		}

		g.logger.Debug("generated secret passed", "attempt", i, "min_strength", cfg.MinStrength)
		return candidate, nil
	}

	return "", fmt.Errorf("%w (%d attempts at %d bits)", ErrExhaustedAttempts, attempts, cfg.bits())
}

// Nonce returns size random bytes from the gate's source, base64url encoded
// without padding.
func (g *Gate) Nonce(size int) (string, error) {
	return nonce(g.random, size)
}

// Nonce returns size cryptographically random bytes, base64url encoded
// without padding.
func Nonce(size int) (string, error) {
	return nonce(rand.Reader, size)
}

func nonce(r io.Reader, size int) (string, error) {
	if size <= 0 {
		return "", invalid("expected a positive byte count, got %d", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func validateStrength(minStrength int) error {
	if minStrength < MinStrength || minStrength > MaxStrength {
		return invalid("min strength must be an integer from %d to %d, got %d",
			MinStrength, MaxStrength, minStrength)
	}
	return nil
}
