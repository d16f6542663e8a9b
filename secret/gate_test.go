package secret

import (
	"crypto/rand"
	"errors"
	"io"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingReader counts how many reads hit the random source.
type countingReader struct {
	mu    sync.Mutex
	r     io.Reader
	reads int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.mu.Lock()
	c.reads++
	c.mu.Unlock()
	return c.r.Read(p)
}

func (c *countingReader) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// fixedEstimator returns the same score for every secret.
type fixedEstimator struct {
	score int
}

func (f fixedEstimator) Estimate(secret string, _ ...string) Strength {
	return Strength{Score: f.score, Guesses: 10, CrackTimes: CrackTimes(10)}
}

func isURLSafe(s string) bool {
	return !strings.ContainsAny(s, "+/=")
}

func TestAnalyze_Socotra(t *testing.T) {
	gate := NewGate()

	s, err := gate.Score("socotra")
	require.NoError(t, err)
	require.GreaterOrEqual(t, s.Score, 0)
	require.Less(t, s.Score, MaxStrength)

	for minStrength := MinStrength; minStrength <= MaxStrength; minStrength++ {
		out, err := gate.Analyze(minStrength, "socotra")
		require.NoError(t, err)

		_, reqErr := gate.RequireStrength(minStrength, "socotra")

		if minStrength <= s.Score {
			assert.Equal(t, Passed{Secret: "socotra"}, out, "min strength %d", minStrength)
			assert.NoError(t, reqErr, "min strength %d", minStrength)
			continue
		}

		failed, ok := out.(Failed)
		require.True(t, ok, "min strength %d: got %T, want Failed", minStrength, out)
		assert.Equal(t, minStrength, failed.MinStrength)
		assert.Equal(t, s.Score, failed.Strength.Score)

		var weak *WeakSecretError
		require.ErrorAs(t, reqErr, &weak, "min strength %d", minStrength)
		assert.ErrorIs(t, reqErr, ErrWeakSecret)
		assert.Equal(t, s.Score, weak.Strength.Score)
	}
}

func TestAnalyze_InvalidInput(t *testing.T) {
	gate := NewGate(WithEstimator(fixedEstimator{score: 4}))

	for _, minStrength := range []int{-1, 6, 100} {
		_, err := gate.Analyze(minStrength, "whatever")
		assert.ErrorIs(t, err, ErrInvalidInput, "min strength %d", minStrength)

		_, err = gate.RequireStrength(minStrength, "whatever")
		assert.ErrorIs(t, err, ErrInvalidInput, "min strength %d", minStrength)
	}

	_, err := gate.Analyze(2, "bad\xffutf8")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = gate.Score("bad\xffutf8")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRequireStrength_ReturnsOriginal(t *testing.T) {
	gate := NewGate(WithEstimator(fixedEstimator{score: 3}))

	// secrets that look like numbers or JSON are still passed through verbatim
	for _, candidate := range []string{"12345", `{"score":0}`, "socotra"} {
		got, err := gate.RequireStrength(3, candidate)
		require.NoError(t, err)
		assert.Equal(t, candidate, got)
	}
}

func TestGenerate_MinStrengthZeroFirstAttempt(t *testing.T) {
	src := &countingReader{r: rand.Reader}
	gate := NewGate(WithRandom(src))

	s, err := gate.Generate(GenerateConfig{MinStrength: 0})
	require.NoError(t, err)
	assert.Len(t, s, 43) // 32 bytes
	assert.Equal(t, 1, src.count())
}

func TestGenerate_Exhausted(t *testing.T) {
	src := &countingReader{r: rand.Reader}
	gate := NewGate(WithRandom(src))

	_, err := gate.Generate(GenerateConfig{MinStrength: 5, MaxAttempts: 1, Bits: 8})
	assert.ErrorIs(t, err, ErrExhaustedAttempts)
	assert.Equal(t, 1, src.count())
}

func TestGenerate_ExhaustsEveryAttempt(t *testing.T) {
	src := &countingReader{r: rand.Reader}
	gate := NewGate(WithRandom(src), WithEstimator(fixedEstimator{score: 1}))

	_, err := gate.Generate(GenerateConfig{MinStrength: 2, MaxAttempts: 7})
	assert.ErrorIs(t, err, ErrExhaustedAttempts)
	assert.Equal(t, 7, src.count())
}

func TestGenerate_Length384(t *testing.T) {
	gate := NewGate()

	s, err := gate.Generate(GenerateConfig{MinStrength: 2, MaxAttempts: 100, Bits: 384})
	require.NoError(t, err)
	assert.Len(t, s, int(math.Ceil(384.0/8*4/3)))
	assert.Len(t, s, 64)
	assert.True(t, isURLSafe(s), "secret %q has non URL-safe characters", s)

	strength, err := gate.Score(s)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, strength.Score, 2)
}

func TestGenerate_EveryAttainableStrength(t *testing.T) {
	gate := NewGate()
	for minStrength := 0; minStrength < MaxStrength; minStrength++ {
		s, err := gate.Generate(GenerateConfig{MinStrength: minStrength})
		require.NoError(t, err, "min strength %d", minStrength)
		assert.NotEmpty(t, s)
	}
}

func TestGenerate_InvalidInputDrawsNoRandomness(t *testing.T) {
	tests := []struct {
		name string
		cfg  GenerateConfig
	}{
		{"min strength too low", GenerateConfig{MinStrength: -1}},
		{"min strength too high", GenerateConfig{MinStrength: 6}},
		{"negative attempts", GenerateConfig{MinStrength: 2, MaxAttempts: -1}},
		{"negative bits", GenerateConfig{MinStrength: 2, Bits: -8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &countingReader{r: rand.Reader}
			gate := NewGate(WithRandom(src))

			_, err := gate.Generate(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, src.count())
		})
	}
}

func TestGenerate_RandomSourceFailure(t *testing.T) {
	gate := NewGate(WithRandom(strings.NewReader("")))
	_, err := gate.Generate(GenerateConfig{MinStrength: 0})
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrExhaustedAttempts))
}

func TestNonce(t *testing.T) {
	s, err := Nonce(32)
	require.NoError(t, err)
	assert.Len(t, s, 43)
	assert.True(t, isURLSafe(s))

	for _, size := range []int{1, 2, 3, 48, 64} {
		s, err := NewGate().Nonce(size)
		require.NoError(t, err)
		assert.Len(t, s, int(math.Ceil(float64(size)*4/3)), "size %d", size)
		assert.True(t, isURLSafe(s))
	}

	for _, size := range []int{0, -1} {
		_, err := Nonce(size)
		assert.ErrorIs(t, err, ErrInvalidInput, "size %d", size)
	}
}

func TestGate_ConcurrentUse(t *testing.T) {
	gate := NewGate()

	var wg sync.WaitGroup
	results := make(chan string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := gate.Generate(GenerateConfig{MinStrength: 2})
			if err == nil {
				results <- s
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for s := range results {
		assert.False(t, seen[s], "duplicate secret generated")
		seen[s] = true
	}
	assert.Len(t, seen, 8)
}
