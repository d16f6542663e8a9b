package cli

import (
	"errors"

	urfave "github.com/urfave/cli/v2"

	"github.com/socotra/jwtkit/config"
)

func configCommand() *urfave.Command {
	localFlag := &urfave.BoolFlag{Name: "local", Usage: "use .socotra.yaml in the git root instead of the global file"}
	return &urfave.Command{
		Name:  "config",
		Usage: "Show or change saved settings",
		Subcommands: []*urfave.Command{
			{
				Name:  "show",
				Usage: "List every setting with its value and source",
				Flags: []urfave.Flag{formatFlag()},
				Action: func(c *urfave.Context) error {
					svc := MustServices(c.Context)
					format, err := svc.Format(c.String("format"))
					if err != nil {
						return err
					}
					return svc.Out.Config(svc.Config, format)
				},
			},
			{
				Name:      "set",
				Usage:     "Save a setting",
				ArgsUsage: "<key> <value>",
				Flags:     []urfave.Flag{localFlag},
				Action:    runConfigSet,
			},
			{
				Name:      "unset",
				Usage:     "Remove a setting from the global file",
				ArgsUsage: "<key>",
				Action: func(c *urfave.Context) error {
					svc := MustServices(c.Context)
					if c.NArg() != 1 {
						return errors.New("usage: config unset <key>")
					}
					if err := config.DefaultSaveConfig().DeleteGlobalKey(c.Args().First()); err != nil {
						return err
					}
					svc.Err.Success("removed %s", c.Args().First())
					return nil
				},
			},
		},
	}
}

func runConfigSet(c *urfave.Context) error {
	svc := MustServices(c.Context)
	if c.NArg() != 2 {
		return errors.New("usage: config set <key> <value>")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)
	if config.IsSecretKey(key) {
		return errors.New("secrets belong in the profile .env file, not in saved config")
	}

	save := config.DefaultSaveConfig()
	if c.Bool("local") {
		if svc.GitRoot == "" {
			return errors.New("--local needs a git repository")
		}
		if err := save.SaveLocal(svc.GitRoot, key, value); err != nil {
			return err
		}
		svc.Err.Success("set %s in %s", key, config.LocalConfigName)
		return nil
	}

	if err := save.SaveGlobal(key, value); err != nil {
		return err
	}
	path, _ := save.GlobalPath()
	svc.Err.Success("set %s in %s", key, path)
	return nil
}
