package token

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"strings"
)

// Segment indexes.
const (
	HeaderSegment    = 0
	ClaimsSegment    = 1
	SignatureSegment = 2
)

// split returns the first three segments of a compact token.
// Segments past the third are ignored.
func split(token string) ([]string, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 3 {
		return nil, malformed("expected 3 segments, found %d", len(parts))
	}
	return parts[:3], nil
}

// decodeBase64 accepts the URL-safe or standard alphabet, with or without padding.
func decodeBase64(segment string) ([]byte, error) {
	s := strings.TrimRight(segment, "=")
	s = strings.NewReplacer("+", "-", "/", "_").Replace(s)
	return base64.RawURLEncoding.DecodeString(s)
}

// Segment base64url-decodes the segment at index and returns the raw bytes.
func Segment(token string, index int) ([]byte, error) {
	if index < HeaderSegment || index > SignatureSegment {
		return nil, malformed("segment index %d out of range", index)
	}
	parts, err := split(token)
	if err != nil {
		return nil, err
	}
	data, err := decodeBase64(parts[index])
	if err != nil {
		return nil, malformed("segment %d: %v", index, err)
	}
	return data, nil
}

// SegmentJSON decodes the segment at index as a JSON object.
// The signature segment is never JSON.
func SegmentJSON(token string, index int) (map[string]any, error) {
	if index == SignatureSegment {
		return nil, malformed("signature segment is not JSON")
	}
	data, err := Segment(token, index)
	if err != nil {
		return nil, err
	}
	return decodeObject(index, data)
}

func decodeObject(index int, data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, malformed("segment %d: %v", index, err)
	}
	if obj == nil {
		return nil, malformed("segment %d: not a JSON object", index)
	}
	if dec.More() {
		return nil, malformed("segment %d: trailing data after JSON object", index)
	}
	return obj, nil
}

// Headers decodes the header segment.
func Headers(token string) (Header, error) {
	h, err := SegmentJSON(token, HeaderSegment)
	if err != nil {
		return nil, err
	}
	return Header(h), nil
}

// InspectOption configures Inspect.
type InspectOption func(*inspectOptions)

type inspectOptions struct {
	key       []byte
	algorithm Algorithm
}

// WithKey verifies the signature against key while inspecting.
func WithKey(key []byte) InspectOption {
	return func(o *inspectOptions) {
		o.key = key
	}
}

// WithAlgorithm requires the declared algorithm to equal alg.
// It only has an effect together with WithKey.
func WithAlgorithm(alg Algorithm) InspectOption {
	return func(o *inspectOptions) {
		o.algorithm = alg
	}
}

// Inspect decodes all three segments of token.
// Without WithKey the result is unverified and Verified is false.
func Inspect(token string, opts ...InspectOption) (*Inspection, error) {
	var o inspectOptions
	for _, opt := range opts {
		opt(&o)
	}

	header, err := Headers(token)
	if err != nil {
		return nil, err
	}
	claims, err := SegmentJSON(token, ClaimsSegment)
	if err != nil {
		return nil, err
	}
	signature, err := Segment(token, SignatureSegment)
	if err != nil {
		return nil, err
	}

	insp := &Inspection{
		Header:    header,
		Claims:    Claims(claims),
		Signature: signature,
		Raw:       token,
	}

	if len(o.key) > 0 {
		if _, err := Verify(token, o.key, o.algorithm); err != nil {
			return nil, err
		}
		insp.Verified = true
	}

	return insp, nil
}
