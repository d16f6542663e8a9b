package token

import (
	"encoding/pem"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

func signingMethod(alg Algorithm) jwt.SigningMethod {
	if alg == RS256 {
		return jwt.SigningMethodRS256
	}
	return jwt.SigningMethodHS256
}

// Create signs claims and returns a compact token with header {alg, typ: "JWT"}.
// HS256 uses key as the raw HMAC secret. RS256 expects a PEM private key.
func Create(alg Algorithm, key []byte, claims Claims) (string, error) {
	alg, err := ParseAlgorithm(string(alg))
	if err != nil {
		return "", err
	}
	if len(key) == 0 {
		return "", fmt.Errorf("%w: empty key", ErrInvalidKey)
	}

	var signingKey any = key
	if alg == RS256 {
		priv, err := jwt.ParseRSAPrivateKeyFromPEM(key)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		signingKey = priv
	}

	body := jwt.MapClaims{}
	for k, v := range claims {
		body[k] = v
	}

	signed, err := jwt.NewWithClaims(signingMethod(alg), body).SignedString(signingKey)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", alg, err)
	}
	return signed, nil
}

// Verify recomputes the signature of token with key.
//
// The algorithm comes from the token header. When hint is non-empty the
// declared algorithm must equal it. For RS256, key may be a public key
// (PKCS#1 or PKIX) or a private key in PEM form.
func Verify(token string, key []byte, hint Algorithm) (*Verified, error) {
	parts, err := split(token)
	if err != nil {
		return nil, err
	}
	header, err := Headers(token)
	if err != nil {
		return nil, err
	}

	alg, err := ParseAlgorithm(header.Alg())
	if err != nil {
		return nil, err
	}
	if hint != "" {
		if _, err := ParseAlgorithm(string(hint)); err != nil {
			return nil, err
		}
		if hint != alg {
			return nil, fmt.Errorf("%w: token declares %s, expected %s", ErrVerification, alg, hint)
		}
	}

	signature, err := decodeBase64(parts[SignatureSegment])
	if err != nil {
		return nil, malformed("segment %d: %v", SignatureSegment, err)
	}

	verifyKey, err := verificationKey(alg, key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}

	signingString := parts[HeaderSegment] + "." + parts[ClaimsSegment]
	if err := signingMethod(alg).Verify(signingString, signature, verifyKey); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}

	claims, err := SegmentJSON(token, ClaimsSegment)
	if err != nil {
		return nil, err
	}

	return &Verified{
		Claims:    Claims(claims),
		Key:       key,
		Algorithm: alg,
	}, nil
}

func verificationKey(alg Algorithm, key []byte) (any, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("empty key")
	}
	if alg == HS256 {
		// A PEM block is never an HMAC secret.
		if block, _ := pem.Decode(key); block != nil {
			return nil, fmt.Errorf("HS256 token cannot be verified with a %s", block.Type)
		}
		return key, nil
	}
	return parseRSAPublicKey(key)
}
