package render

import (
	"fmt"

	"github.com/socotra/jwtkit/auth"
	"github.com/socotra/jwtkit/token"
)

// Key writes a generated key. RSA keys get their fingerprint and,
// when withPublic is set, the public key PEM.
func (r *Renderer) Key(alg token.Algorithm, key []byte, withPublic bool) error {
	switch alg {
	case token.RS256:
		fmt.Fprint(r.w, string(key))
		fingerprint, err := token.Fingerprint(key)
		if err != nil {
			return err
		}
		r.info.Fprintf(r.w, "Fingerprint: %s\n", fingerprint)
		if withPublic {
			pub, err := token.PublicKeyPEM(key)
			if err != nil {
				return err
			}
			fmt.Fprint(r.w, string(pub))
		}
	default:
		fmt.Fprintln(r.w, string(key))
		r.info.Fprintf(r.w, "Key hash: %s\n", auth.HashPrefix(string(key)))
	}
	return nil
}
