package cli

import (
	"errors"
	"fmt"

	urfave "github.com/urfave/cli/v2"

	"github.com/socotra/jwtkit/config"
	"github.com/socotra/jwtkit/prompt"
	"github.com/socotra/jwtkit/secret"
)

func strengthFlags() []urfave.Flag {
	return []urfave.Flag{
		&urfave.IntFlag{Name: "min-strength", Aliases: []string{"s"}, Usage: "required score `0-5` (default from config, 2)"},
		&urfave.BoolFlag{Name: "allow-weak", Usage: "accept any secret (min strength 0)"},
		&urfave.BoolFlag{Name: "extra-paranoid", Usage: "require min strength 4"},
	}
}

// settings resolves the secret settings with command flags on top.
func settings(c *urfave.Context, svc *Services) (config.Settings, error) {
	flags := map[string]string{}
	if c.IsSet("min-strength") {
		flags[config.KeyMinStrength] = fmt.Sprint(c.Int("min-strength"))
	}
	if c.IsSet("max-attempts") {
		flags[config.KeyMaxAttempts] = fmt.Sprint(c.Int("max-attempts"))
	}
	if c.IsSet("bits") {
		flags[config.KeyBits] = fmt.Sprint(c.Int("bits"))
	}
	if c.Bool("allow-weak") {
		flags[config.KeyAllowWeak] = "true"
	}
	if c.Bool("extra-paranoid") {
		flags[config.KeyExtraParanoid] = "true"
	}
	return config.SettingsFrom(svc.Config.WithOverrides(flags))
}

func secretCommand() *urfave.Command {
	return &urfave.Command{
		Name:  "secret",
		Usage: "Check or generate secrets",
		Subcommands: []*urfave.Command{
			{
				Name:  "generate",
				Usage: "Generate a random secret that meets the strength threshold",
				Flags: append([]urfave.Flag{
					&urfave.IntFlag{Name: "max-attempts", Usage: "give up after `N` weak candidates (default 100)"},
					&urfave.IntFlag{Name: "bits", Aliases: []string{"b"}, Usage: "random bits per candidate (default 256)"},
				}, strengthFlags()...),
				Action: runSecretGenerate,
			},
			{
				Name:      "check",
				Usage:     "Score a secret and fail if it is too weak",
				ArgsUsage: "[secret]",
				Flags:     strengthFlags(),
				Action:    runSecretCheck,
			},
		},
	}
}

func runSecretGenerate(c *urfave.Context) error {
	svc := MustServices(c.Context)
	s, err := settings(c, svc)
	if err != nil {
		return err
	}
	generated, err := svc.Gate.Generate(s.GenerateConfig())
	if err != nil {
		return err
	}
	svc.Out.Line("%s", generated)
	return nil
}

func runSecretCheck(c *urfave.Context) error {
	svc := MustServices(c.Context)
	s, err := settings(c, svc)
	if err != nil {
		return err
	}

	candidate := c.Args().First()
	if candidate == "" {
		candidate = svc.Asker.AskOne(prompt.Question{Name: "secret", Message: "Secret:", Secret: true})
	}
	if candidate == "" {
		return errors.New("no secret given")
	}

	if _, err := svc.Gate.RequireStrength(s.MinStrength, candidate, c.Args().Tail()...); err != nil {
		var weak *secret.WeakSecretError
		if errors.As(err, &weak) {
			svc.Out.WeakSecret(weak)
			return errReported{err}
		}
		return err
	}
	svc.Out.Success("Secret meets strength %d.", s.MinStrength)
	return nil
}

func nonceCommand() *urfave.Command {
	return &urfave.Command{
		Name:  "nonce",
		Usage: "Print a random URL-safe nonce",
		Flags: []urfave.Flag{
			&urfave.IntFlag{Name: "bytes", Aliases: []string{"n"}, Value: secret.DefaultNonceBytes, Usage: "number of random `BYTES`"},
		},
		Action: func(c *urfave.Context) error {
			svc := MustServices(c.Context)
			n, err := svc.Gate.Nonce(c.Int("bytes"))
			if err != nil {
				return err
			}
			svc.Out.Line("%s", n)
			return nil
		},
	}
}
