package token

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	rsaKeyOnce sync.Once
	rsaKey     []byte
	rsaKeyErr  error
)

// testRSAKey generates one RS256 key per test binary.
func testRSAKey(t *testing.T) []byte {
	t.Helper()
	rsaKeyOnce.Do(func() {
		rsaKey, rsaKeyErr = GenerateKey(RS256)
	})
	require.NoError(t, rsaKeyErr)
	return rsaKey
}

func assertSameClaims(t *testing.T, want, got Claims) {
	t.Helper()
	wantJSON, err := json.Marshal(want)
	require.NoError(t, err)
	gotJSON, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantJSON), string(gotJSON))
}

func TestCreateVerify_HS256Scenario(t *testing.T) {
	claims := Claims{"sub": "alice", "iss": "alice", "exp": 1700000000}

	raw, err := Create(HS256, []byte("topsecret"), claims)
	require.NoError(t, err)

	h, err := Headers(raw)
	require.NoError(t, err)
	assert.Equal(t, Header{"alg": "HS256", "typ": "JWT"}, h)

	v, err := Verify(raw, []byte("topsecret"), HS256)
	require.NoError(t, err)
	assert.Equal(t, HS256, v.Algorithm)
	assert.Equal(t, []byte("topsecret"), v.Key)
	assertSameClaims(t, claims, v.Claims)
}

func TestCreateVerify_RoundTrip(t *testing.T) {
	now := time.Now().Unix()
	claims := Claims{
		"aud": "nobody",
		"exp": 3600, // long expired; never enforced
		"iat": now,
		"iss": "nobody",
		"jti": "nobody",
		"sub": "nobody",
	}

	tests := []struct {
		name      string
		alg       Algorithm
		signKey   func(t *testing.T) []byte
		verifyKey func(t *testing.T) []byte
	}{
		{
			name:      "HS256",
			alg:       HS256,
			signKey:   func(t *testing.T) []byte { return []byte("shared-secret") },
			verifyKey: func(t *testing.T) []byte { return []byte("shared-secret") },
		},
		{
			name:      "RS256 private key",
			alg:       RS256,
			signKey:   testRSAKey,
			verifyKey: testRSAKey,
		},
		{
			name:    "RS256 public key",
			alg:     RS256,
			signKey: testRSAKey,
			verifyKey: func(t *testing.T) []byte {
				pub, err := PublicKeyPEM(testRSAKey(t))
				require.NoError(t, err)
				return pub
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Create(tt.alg, tt.signKey(t), claims)
			require.NoError(t, err)

			h, err := Headers(raw)
			require.NoError(t, err)
			assert.Equal(t, string(tt.alg), h.Alg())

			v, err := Verify(raw, tt.verifyKey(t), tt.alg)
			require.NoError(t, err)
			assertSameClaims(t, claims, v.Claims)

			// the header's algorithm is used when no hint is given
			v, err = Verify(raw, tt.verifyKey(t), "")
			require.NoError(t, err)
			assert.Equal(t, tt.alg, v.Algorithm)
		})
	}
}

func TestVerify_WrongKey(t *testing.T) {
	t.Run("HS256", func(t *testing.T) {
		raw, err := Create(HS256, []byte("right"), Claims{"sub": "alice"})
		require.NoError(t, err)
		_, err = Verify(raw, []byte("wrong"), HS256)
		assert.ErrorIs(t, err, ErrVerification)
	})

	t.Run("RS256", func(t *testing.T) {
		raw, err := Create(RS256, testRSAKey(t), Claims{"sub": "alice"})
		require.NoError(t, err)

		other, err := GenerateKey(RS256)
		require.NoError(t, err)
		_, err = Verify(raw, other, RS256)
		assert.ErrorIs(t, err, ErrVerification)
	})

	t.Run("RS256 with non-PEM key", func(t *testing.T) {
		raw, err := Create(RS256, testRSAKey(t), Claims{"sub": "alice"})
		require.NoError(t, err)
		_, err = Verify(raw, []byte("not a pem"), RS256)
		assert.ErrorIs(t, err, ErrVerification)
	})

	t.Run("tampered claims", func(t *testing.T) {
		raw, err := Create(HS256, []byte("right"), Claims{"sub": "alice"})
		require.NoError(t, err)
		forged, err := Create(HS256, []byte("right"), Claims{"sub": "mallory"})
		require.NoError(t, err)

		parts, _ := split(raw)
		forgedParts, _ := split(forged)
		tampered := parts[0] + "." + forgedParts[1] + "." + parts[2]

		_, err = Verify(tampered, []byte("right"), HS256)
		assert.ErrorIs(t, err, ErrVerification)
	})
}

func TestVerify_HS256WithPEMKey(t *testing.T) {
	pub, err := PublicKeyPEM(testRSAKey(t))
	require.NoError(t, err)

	// HS256 token whose HMAC secret is the public key PEM.
	forged, err := Create(HS256, pub, Claims{"sub": "mallory"})
	require.NoError(t, err)

	for _, hint := range []Algorithm{"", HS256} {
		t.Run("hint="+string(hint), func(t *testing.T) {
			_, err := Verify(forged, pub, hint)
			assert.ErrorIs(t, err, ErrVerification)
		})
	}

	t.Run("inspect", func(t *testing.T) {
		insp, err := Inspect(forged, WithKey(pub))
		assert.ErrorIs(t, err, ErrVerification)
		assert.Nil(t, insp)
	})

	t.Run("private key PEM", func(t *testing.T) {
		forged, err := Create(HS256, testRSAKey(t), Claims{"sub": "mallory"})
		require.NoError(t, err)
		_, err = Verify(forged, testRSAKey(t), "")
		assert.ErrorIs(t, err, ErrVerification)
	})
}

func TestUnsupportedAlgorithm(t *testing.T) {
	var algErr *UnsupportedAlgorithmError

	_, err := Create("ES256", []byte("k"), Claims{})
	require.ErrorAs(t, err, &algErr)
	assert.Equal(t, "ES256", algErr.Algorithm)
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	_, err = GenerateKey("none")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	noneToken := encodeSegment(`{"alg":"none","typ":"JWT"}`) + "." + encodeSegment(`{"sub":"x"}`) + "."
	_, err = Verify(noneToken, []byte("k"), "")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)

	hsToken, err := Create(HS256, []byte("k"), Claims{})
	require.NoError(t, err)
	_, err = Verify(hsToken, []byte("k"), "HS512")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}

func TestCreate_InvalidKey(t *testing.T) {
	_, err := Create(HS256, nil, Claims{})
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = Create(RS256, []byte("not a pem"), Claims{})
	assert.ErrorIs(t, err, ErrInvalidKey)
}
