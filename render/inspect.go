package render

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/socotra/jwtkit/token"
)

// inspectionJSON is the machine-readable form of an inspection.
type inspectionJSON struct {
	Data      token.Claims `json:"data"`
	Metadata  token.Header `json:"metadata"`
	Signature string       `json:"signature"`
	Token     string       `json:"token"`
	Verified  bool         `json:"verified"`
}

// Inspection writes a decoded token. The table form lists the header, the
// claims sorted by name with epoch claims shown as UTC times, the raw
// token, and a notice when the signature was not verified.
func (r *Renderer) Inspection(insp *token.Inspection, format Format) error {
	if format == FormatJSON {
		return r.json(inspectionJSON{
			Data:      insp.Claims,
			Metadata:  insp.Header,
			Signature: base64.RawURLEncoding.EncodeToString(insp.Signature),
			Token:     insp.Raw,
			Verified:  insp.Verified,
		})
	}

	r.heading.Fprintf(r.w, "JWT w/ %s:\n", pairs(insp.Header))
	r.claims(insp.Claims)
	fmt.Fprintln(r.w, insp.Raw)
	if insp.Verified {
		r.good.Fprintln(r.w, "signature verified")
	} else {
		r.warn.Fprintln(r.w, "UNVERIFIED: signature was not checked (pass a key to verify)")
	}
	return nil
}

// Verified writes the result of a successful signature check.
func (r *Renderer) Verified(v *token.Verified, format Format) error {
	if format == FormatJSON {
		return r.json(map[string]any{
			"algorithm": v.Algorithm,
			"data":      v.Claims,
			"verified":  true,
		})
	}

	r.good.Fprintf(r.w, "signature OK (alg=%s)\n", v.Algorithm)
	r.claims(v.Claims)
	return nil
}

func (r *Renderer) claims(claims token.Claims) {
	now := r.now()
	for _, name := range sortedKeys(claims) {
		value := claims[name]
		if !token.IsTemporal(name) {
			r.info.Fprintf(r.w, "--- %s=%s\n", name, formatValue(value))
			continue
		}
		at, ok := claims.Time(name)
		if !ok {
			r.info.Fprintf(r.w, "--- %s=%s\n", name, formatValue(value))
			continue
		}
		line := fmt.Sprintf("--- %s=%s (%s)", name, formatValue(value), at.UTC().Format(time.RFC1123))
		if name == "exp" && at.Before(now) {
			r.bad.Fprintln(r.w, line+" (expired)")
			continue
		}
		r.info.Fprintln(r.w, line)
	}
}

func (r *Renderer) json(v any) error {
	enc := json.NewEncoder(r.w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// pairs renders a header as "k=v k=v", sorted by name.
func pairs(m map[string]any) string {
	parts := make([]string, 0, len(m))
	for _, k := range sortedKeys(m) {
		parts = append(parts, k+"="+formatValue(m[k]))
	}
	return strings.Join(parts, " ")
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatValue prints scalars as-is and composite values as compact JSON.
func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case nil:
		return "null"
	case bool, float64, int, int64:
		return fmt.Sprint(val)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
