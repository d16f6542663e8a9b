// Package token decodes, inspects, creates and verifies compact JSON Web Tokens.
//
// A compact token is three dot-separated base64url segments: header, claims
// and signature. Decoding never verifies; verification is opt-in and only
// supports HS256 (HMAC-SHA256) and RS256 (RSA-SHA256).
//
// # Inspecting
//
//	insp, err := token.Inspect(raw)
//	if !insp.Verified {
//	    fmt.Println("unverified")
//	}
//
//	// Verify while inspecting
//	insp, err = token.Inspect(raw, token.WithKey(key), token.WithAlgorithm(token.HS256))
//
// # Creating and Verifying
//
//	raw, err := token.Create(token.HS256, []byte("topsecret"), token.Claims{"sub": "alice"})
//	v, err := token.Verify(raw, []byte("topsecret"), token.HS256)
//	fmt.Println(v.Claims["sub"])
//
// # Keys
//
//	hs, err := token.GenerateKey(token.HS256) // base64url, 256 bits
//	rs, err := token.GenerateKey(token.RS256) // PKCS#8 PEM private key
//	pub, err := token.PublicKeyPEM(rs)
//
// Temporal claims (exp, iat, nbf) are opaque to this package. Callers decide
// whether an expired token matters.
package token
