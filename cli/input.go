package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	urfave "github.com/urfave/cli/v2"

	"github.com/socotra/jwtkit/prompt"
	"github.com/socotra/jwtkit/token"
)

func keyFlags() []urfave.Flag {
	return []urfave.Flag{
		&urfave.StringFlag{Name: "key", Aliases: []string{"k"}, Usage: "HMAC secret or PEM key `VALUE`"},
		&urfave.PathFlag{Name: "key-file", Usage: "read the key from `FILE`"},
		&urfave.StringFlag{Name: "alg", Aliases: []string{"a"}, Usage: "algorithm `NAME` (HS256 or RS256)"},
	}
}

// readKey returns the key given by --key or --key-file, or nil.
func readKey(c *urfave.Context) ([]byte, error) {
	key, file := c.String("key"), c.Path("key-file")
	switch {
	case key != "" && file != "":
		return nil, errors.New("use either --key or --key-file, not both")
	case key != "":
		return []byte(key), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read key file: %w", err)
		}
		return data, nil
	default:
		return nil, nil
	}
}

// algHint parses --alg. The empty string means no hint.
func algHint(c *urfave.Context) (token.Algorithm, error) {
	if c.String("alg") == "" {
		return "", nil
	}
	return token.ParseAlgorithm(strings.ToUpper(c.String("alg")))
}

// tokenArg returns the token argument, asking for one when none is given.
func tokenArg(c *urfave.Context, svc *Services) (string, error) {
	raw := c.Args().First()
	if raw == "" {
		raw = svc.Asker.AskOne(prompt.Question{Name: "token", Message: "JWT:"})
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("no token given")
	}
	return raw, nil
}

// askKeyFile asks for an optional key file when input is a terminal.
func askKeyFile(svc *Services, message string) ([]byte, error) {
	if !svc.Asker.Interactive() {
		return nil, nil
	}
	path := svc.Asker.AskOne(prompt.Question{Name: "key", Message: message})
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	return data, nil
}
