package render

import (
	"time"

	"github.com/socotra/jwtkit/login"
)

// LoginResult writes a token obtained from login. The text form reports
// the expiry before the token itself so the token stays on its own line.
func (r *Renderer) LoginResult(res *login.Result, format Format) error {
	if format == FormatJSON {
		return r.json(res)
	}

	expires := res.Expires()
	line := "--- token will expire: " + res.ExpiresTimestamp.String() + "=" + expires.Format(time.RFC1123)
	if !expires.IsZero() && expires.Before(r.now()) {
		r.bad.Fprintln(r.w, line+" (expired)")
	} else {
		r.warn.Fprintln(r.w, line)
	}
	r.Line("%s", res.AuthorizationToken)
	return nil
}
