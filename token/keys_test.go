package token

import (
	"encoding/pem"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey_HS256(t *testing.T) {
	key, err := GenerateKey(HS256)
	require.NoError(t, err)

	// 32 bytes base64url without padding
	assert.Len(t, key, 43)
	assert.NotContains(t, string(key), "=")
	assert.NotContains(t, string(key), "+")
	assert.NotContains(t, string(key), "/")

	other, err := GenerateKey(HS256)
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestGenerateKey_RS256(t *testing.T) {
	key := testRSAKey(t)

	block, _ := pem.Decode(key)
	require.NotNil(t, block)
	assert.Equal(t, "PRIVATE KEY", block.Type)

	pub, err := PublicKeyPEM(key)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pub), "-----BEGIN RSA PUBLIC KEY-----"))

	// public material recovered twice is identical
	again, err := PublicKeyPEM(key)
	require.NoError(t, err)
	assert.Equal(t, pub, again)
}

func TestGenerateRSAKey_TooSmall(t *testing.T) {
	_, err := GenerateRSAKey(1024)
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestFingerprint(t *testing.T) {
	key := testRSAKey(t)
	pub, err := PublicKeyPEM(key)
	require.NoError(t, err)

	fromPrivate, err := Fingerprint(key)
	require.NoError(t, err)
	fromPublic, err := Fingerprint(pub)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(fromPrivate, "SHA256:"))
	assert.Equal(t, fromPrivate, fromPublic)

	_, err = Fingerprint([]byte("topsecret"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		in      string
		want    Algorithm
		wantErr bool
	}{
		{"HS256", HS256, false},
		{"RS256", RS256, false},
		{"hs256", "", true},
		{"none", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseAlgorithm(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnsupportedAlgorithm, "ParseAlgorithm(%q)", tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
