package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socotra/jwtkit/config"
	"github.com/socotra/jwtkit/login"
	"github.com/socotra/jwtkit/secret"
	"github.com/socotra/jwtkit/token"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestRenderer() (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	r := New(&buf, WithColor(false), WithClock(func() time.Time { return fixedNow }))
	return r, &buf
}

func inspectToken(t *testing.T, claims token.Claims, opts ...token.InspectOption) *token.Inspection {
	t.Helper()
	raw, err := token.Create(token.HS256, []byte("secret"), claims)
	require.NoError(t, err)
	insp, err := token.Inspect(raw, opts...)
	require.NoError(t, err)
	return insp
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" text ", FormatText, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInspection_Table(t *testing.T) {
	r, buf := newTestRenderer()
	insp := inspectToken(t, token.Claims{
		"sub": "alice.lee",
		"exp": fixedNow.Add(-time.Hour).Unix(),
		"iat": fixedNow.Add(-2 * time.Hour).Unix(),
	})

	require.NoError(t, r.Inspection(insp, FormatTable))
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")

	assert.Equal(t, "JWT w/ alg=HS256 typ=JWT:", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "--- exp="), lines[1])
	assert.Contains(t, lines[1], "(expired)")
	assert.True(t, strings.HasPrefix(lines[2], "--- iat="), lines[2])
	assert.NotContains(t, lines[2], "(expired)")
	assert.Equal(t, "--- sub=alice.lee", lines[3])
	assert.Equal(t, insp.Raw, lines[4])
	assert.Contains(t, lines[5], "UNVERIFIED")
}

func TestInspection_TableVerified(t *testing.T) {
	r, buf := newTestRenderer()
	insp := inspectToken(t, token.Claims{"sub": "x"}, token.WithKey([]byte("secret")))
	require.True(t, insp.Verified)

	require.NoError(t, r.Inspection(insp, FormatTable))
	assert.Contains(t, buf.String(), "signature verified")
	assert.NotContains(t, buf.String(), "UNVERIFIED")
}

func TestInspection_JSON(t *testing.T) {
	r, buf := newTestRenderer()
	insp := inspectToken(t, token.Claims{"sub": "alice.lee", "admin": true})

	require.NoError(t, r.Inspection(insp, FormatJSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, insp.Raw, got["token"])
	assert.Equal(t, false, got["verified"])
	assert.Equal(t, "HS256", got["metadata"].(map[string]any)["alg"])
	assert.Equal(t, "alice.lee", got["data"].(map[string]any)["sub"])

	sig := got["signature"].(string)
	assert.Equal(t, strings.Split(insp.Raw, ".")[2], sig)
}

func TestVerified(t *testing.T) {
	r, buf := newTestRenderer()
	require.NoError(t, r.Verified(&token.Verified{
		Claims:    token.Claims{"sub": "bob", "roles": []any{"a", "b"}},
		Algorithm: token.HS256,
	}, FormatTable))

	out := buf.String()
	assert.Contains(t, out, "signature OK (alg=HS256)")
	assert.Contains(t, out, `--- roles=["a","b"]`)
	assert.Contains(t, out, "--- sub=bob")
}

func TestWeakSecret(t *testing.T) {
	r, buf := newTestRenderer()
	r.WeakSecret(&secret.WeakSecretError{
		MinStrength: 3,
		Strength: secret.Strength{
			Score:       0,
			Guesses:     1000,
			Warning:     "This is a top-100 common password.",
			Suggestions: []string{"Add another word or two. Uncommon words are better."},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "score 0 < 3")
	assert.Contains(t, out, "Warning: This is a top-100 common password.")
	assert.Contains(t, out, "  - Add another word or two.")
	for _, label := range []string{"Slow Computers:", "Fast Computers:", "A Professional:", "State Actors:"} {
		assert.Contains(t, out, label)
	}
	assert.Contains(t, out, "Estimated lockout: 1 year ")
}

func TestWeakSecret_ConcurrentRenderers(t *testing.T) {
	weak := &secret.WeakSecretError{MinStrength: 3, Strength: secret.Strength{Guesses: 1000}}

	var wg sync.WaitGroup
	outs := make([]string, 8)
	for i := range outs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, buf := newTestRenderer()
			r.WeakSecret(weak)
			outs[i] = buf.String()
		}(i)
	}
	wg.Wait()

	for _, out := range outs {
		assert.Contains(t, out, "State Actors:")
		assert.Equal(t, outs[0], out)
	}
}

func TestKey(t *testing.T) {
	t.Run("hmac", func(t *testing.T) {
		r, buf := newTestRenderer()
		require.NoError(t, r.Key(token.HS256, []byte("abc"), false))
		assert.True(t, strings.HasPrefix(buf.String(), "abc\nKey hash: "))
	})

	t.Run("rsa with public key", func(t *testing.T) {
		key, err := token.GenerateRSAKey(2048)
		require.NoError(t, err)

		r, buf := newTestRenderer()
		require.NoError(t, r.Key(token.RS256, key, true))
		out := buf.String()
		assert.Contains(t, out, "PRIVATE KEY")
		assert.Contains(t, out, "Fingerprint: ")
		assert.Contains(t, out, "PUBLIC KEY")
	})
}

func TestLoginResult(t *testing.T) {
	res := &login.Result{
		AuthorizationToken: "tok.en.value",
		ExpiresTimestamp:   json.Number("1717243200000"),
	}

	t.Run("text", func(t *testing.T) {
		r, buf := newTestRenderer()
		require.NoError(t, r.LoginResult(res, FormatText))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[0], "--- token will expire: 1717243200000="), lines[0])
		assert.Equal(t, "tok.en.value", lines[1])
	})

	t.Run("json", func(t *testing.T) {
		r, buf := newTestRenderer()
		require.NoError(t, r.LoginResult(res, FormatJSON))
		assert.JSONEq(t, `{"authorizationToken":"tok.en.value","expiresTimestamp":1717243200000}`, buf.String())
	})
}

func TestConfig(t *testing.T) {
	rc := config.ResolverConfig{
		Defaults: map[string]string{
			config.KeyDomain:         config.DefaultDomain,
			config.KeyTenantPassword: "hunter2",
		},
		GitRootFinder: func(string) (string, error) { return "", nil },
	}
	cfg := config.NewResolverWithPaths(rc, "", "", "").Resolve()

	r, buf := newTestRenderer()
	require.NoError(t, r.Config(cfg, FormatTable))
	out := buf.String()

	assert.Contains(t, out, "Key")
	assert.Contains(t, out, config.DefaultDomain)
	assert.NotContains(t, out, "hunter2")
	assert.Contains(t, out, "********")
}
