package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	urfave "github.com/urfave/cli/v2"

	"github.com/socotra/jwtkit/auth"
	clierrors "github.com/socotra/jwtkit/errors"
	"github.com/socotra/jwtkit/token"
)

func formatFlag() urfave.Flag {
	return &urfave.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "output `FORMAT`: json, table or text (default from config)",
	}
}

func inspectCommand() *urfave.Command {
	return &urfave.Command{
		Name:      "inspect",
		Usage:     "Decode a token and show its header and claims",
		ArgsUsage: "[token]",
		Flags: append([]urfave.Flag{
			formatFlag(),
			&urfave.BoolFlag{Name: "login", Aliases: []string{"l"}, Usage: "log in with the current profile and inspect the new token"},
		}, keyFlags()...),
		Action: runInspect,
	}
}

func runInspect(c *urfave.Context) error {
	svc := MustServices(c.Context)
	format, err := svc.Format(c.String("format"))
	if err != nil {
		return err
	}

	var raw string
	if c.Bool("login") {
		res, err := doLogin(c, svc, "", "")
		if err != nil {
			return err
		}
		raw = res.AuthorizationToken
	} else if raw, err = tokenArg(c, svc); err != nil {
		return err
	}

	hint, err := algHint(c)
	if err != nil {
		return err
	}
	key, err := readKey(c)
	if err != nil {
		return err
	}
	if key == nil && isRSA(raw, hint) {
		if key, err = askKeyFile(svc, "Public key file (empty to skip verification):"); err != nil {
			return err
		}
	}

	var opts []token.InspectOption
	if key != nil {
		opts = append(opts, token.WithKey(key))
	}
	if hint != "" {
		opts = append(opts, token.WithAlgorithm(hint))
	}
	insp, err := token.Inspect(raw, opts...)
	if err != nil {
		return err
	}
	return svc.Out.Inspection(insp, format)
}

// isRSA reports whether the hint, or else the token header, names RS256.
func isRSA(raw string, hint token.Algorithm) bool {
	if hint != "" {
		return hint == token.RS256
	}
	header, err := token.Headers(raw)
	return err == nil && header.Alg() == string(token.RS256)
}

func signCommand() *urfave.Command {
	return &urfave.Command{
		Name:  "sign",
		Usage: "Create a signed token",
		Flags: append([]urfave.Flag{
			&urfave.StringSliceFlag{Name: "claim", Aliases: []string{"c"}, Usage: "claim `KEY=VALUE` (repeatable; JSON values are decoded)"},
			&urfave.StringFlag{Name: "sub", Usage: "subject claim"},
			&urfave.StringFlag{Name: "iss", Usage: "issuer claim"},
			&urfave.StringFlag{Name: "aud", Usage: "audience claim"},
			&urfave.StringFlag{Name: "jti", Usage: "token ID (default: random)"},
			&urfave.DurationFlag{Name: "expires-in", Aliases: []string{"e"}, Usage: "set exp this long after iat"},
		}, keyFlags()...),
		Action: runSign,
	}
}

func runSign(c *urfave.Context) error {
	svc := MustServices(c.Context)

	alg := token.HS256
	if c.String("alg") != "" {
		hint, err := algHint(c)
		if err != nil {
			return err
		}
		alg = hint
	}
	key, err := readKey(c)
	if err != nil {
		return err
	}
	if key == nil {
		return errors.New("a signing key is required (--key or --key-file)")
	}

	claims, err := parseClaims(c.StringSlice("claim"))
	if err != nil {
		return err
	}
	for _, name := range []string{"sub", "iss", "aud"} {
		if v := c.String(name); v != "" {
			claims[name] = v
		}
	}

	now := svc.Now()
	claims["iat"] = now.Unix()
	if d := c.Duration("expires-in"); d > 0 {
		claims["exp"] = now.Add(d).Unix()
	}
	jti := c.String("jti")
	if jti == "" {
		if jti, err = auth.NewTokenID(); err != nil {
			return err
		}
	}
	claims["jti"] = jti

	signed, err := token.Create(alg, key, claims)
	if err != nil {
		return err
	}
	svc.Logger.Debug("signed token", "alg", alg, "jti", jti, "hash", auth.HashPrefix(signed))
	svc.Out.Line("%s", signed)
	return nil
}

// parseClaims turns key=value pairs into claims. Values that parse as
// JSON keep their JSON type; anything else is a string.
func parseClaims(pairs []string) (token.Claims, error) {
	claims := token.Claims{}
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("claim %q is not KEY=VALUE", pair)
		}
		var decoded any
		if err := json.Unmarshal([]byte(value), &decoded); err == nil {
			claims[name] = decoded
			continue
		}
		claims[name] = value
	}
	return claims, nil
}

func verifyCommand() *urfave.Command {
	return &urfave.Command{
		Name:      "verify",
		Usage:     "Check a token's signature",
		ArgsUsage: "[token]",
		Flags: append([]urfave.Flag{
			formatFlag(),
			&urfave.BoolFlag{Name: "check-exp", Usage: "also fail when the exp claim has passed"},
		}, keyFlags()...),
		Action: runVerify,
	}
}

func runVerify(c *urfave.Context) error {
	svc := MustServices(c.Context)
	format, err := svc.Format(c.String("format"))
	if err != nil {
		return err
	}
	raw, err := tokenArg(c, svc)
	if err != nil {
		return err
	}
	hint, err := algHint(c)
	if err != nil {
		return err
	}
	key, err := readKey(c)
	if err != nil {
		return err
	}
	if key == nil {
		return errors.New("a verification key is required (--key or --key-file)")
	}

	verified, err := token.Verify(raw, key, hint)
	if err != nil {
		return err
	}
	if verified.Algorithm == token.RS256 {
		if fp, err := token.Fingerprint(key); err == nil {
			svc.Logger.Debug("verified with key", "fingerprint", fp)
		}
	}
	if c.Bool("check-exp") {
		if exp, ok := verified.Claims.Time("exp"); ok && exp.Before(svc.Now()) {
			svc.Logger.Debug("token expired", "exp", exp.UTC().Format(time.RFC3339))
			return clierrors.NewSessionExpiredError()
		}
	}
	return svc.Out.Verified(verified, format)
}

func keygenCommand() *urfave.Command {
	return &urfave.Command{
		Name:  "keygen",
		Usage: "Generate a signing key",
		Flags: []urfave.Flag{
			&urfave.StringFlag{Name: "alg", Aliases: []string{"a"}, Value: string(token.HS256), Usage: "algorithm `NAME` (HS256 or RS256)"},
			&urfave.IntFlag{Name: "bits", Usage: "RSA modulus size (default 2048)"},
			&urfave.BoolFlag{Name: "public", Usage: "also print the RSA public key"},
			&urfave.PathFlag{Name: "out", Aliases: []string{"o"}, Usage: "write the key to `FILE` (mode 0600) instead of stdout"},
		},
		Action: runKeygen,
	}
}

func runKeygen(c *urfave.Context) error {
	svc := MustServices(c.Context)
	alg, err := algHint(c)
	if err != nil {
		return err
	}

	var key []byte
	if bits := c.Int("bits"); bits != 0 && alg == token.RS256 {
		key, err = token.GenerateRSAKey(bits)
	} else {
		key, err = token.GenerateKey(alg)
	}
	if err != nil {
		return err
	}

	if out := c.Path("out"); out != "" {
		if err := os.WriteFile(out, key, 0o600); err != nil {
			return fmt.Errorf("write key: %w", err)
		}
		svc.Err.Success("wrote %s key to %s", alg, out)
		return nil
	}
	return svc.Out.Key(alg, key, c.Bool("public"))
}
