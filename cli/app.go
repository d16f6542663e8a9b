package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	urfave "github.com/urfave/cli/v2"

	"github.com/socotra/jwtkit/config"
	"github.com/socotra/jwtkit/prompt"
	"github.com/socotra/jwtkit/render"
	"github.com/socotra/jwtkit/secret"
)

// Name is the binary and root logger name.
const Name = "jwtkit"

// Version is set at build time.
var Version = "dev"

func init() {
	// -v is --verbose here.
	urfave.VersionFlag = &urfave.BoolFlag{Name: "version", Usage: "print the version"}
}

// Options wires the app to its environment. Zero values mean the
// process's standard streams, the wall clock and crypto/rand.
type Options struct {
	Stdin      io.Reader
	Stdout     io.Writer
	Stderr     io.Writer
	Now        func() time.Time
	Random     io.Reader
	HTTPClient *http.Client

	// ResolverConfig, if set, replaces config.DefaultResolverConfig.
	// Profile and Logger are filled in per run.
	ResolverConfig *config.ResolverConfig
}

func (o Options) withDefaults() Options {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// NewApp builds the command tree.
func NewApp(opts Options) *urfave.App {
	opts = opts.withDefaults()
	return &urfave.App{
		Name:                 Name,
		Usage:                "Inspect, sign and verify Socotra JWTs; log in; check and generate secrets",
		Version:              Version,
		Reader:               opts.Stdin,
		Writer:               opts.Stdout,
		ErrWriter:            opts.Stderr,
		EnableBashCompletion: true,
		Flags: []urfave.Flag{
			&urfave.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log debug details to stderr"},
			&urfave.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log everything, including the resolved configuration"},
			&urfave.StringFlag{Name: "profile", Aliases: []string{"p"}, Usage: "profile `NAME` (reads <profile dir>/NAME.env)", EnvVars: []string{"SOCOTRA_PROFILE"}},
			&urfave.BoolFlag{Name: "no-color", Usage: "disable colored output"},
		},
		Before: func(c *urfave.Context) error { return setup(c, opts) },
		Action: func(c *urfave.Context) error {
			if c.NArg() > 0 {
				return fmt.Errorf("unknown command %q (see %s help)", c.Args().First(), Name)
			}
			return urfave.ShowAppHelp(c)
		},
		ExitErrHandler: func(*urfave.Context, error) {},
		Commands: []*urfave.Command{
			inspectCommand(),
			loginCommand(),
			signCommand(),
			verifyCommand(),
			keygenCommand(),
			secretCommand(),
			nonceCommand(),
			configCommand(),
		},
	}
}

// Run executes args and returns the process exit code. Errors are printed
// to stderr in red.
func Run(ctx context.Context, args []string, opts Options) int {
	opts = opts.withDefaults()
	app := NewApp(opts)
	if err := app.RunContext(ctx, args); err != nil {
		reportError(opts.Stderr, args, err)
		return 1
	}
	return 0
}

// errReported marks errors whose details were already printed.
type errReported struct {
	err error
}

func (e errReported) Error() string { return e.err.Error() }
func (e errReported) Unwrap() error { return e.err }

func reportError(w io.Writer, args []string, err error) {
	r := render.New(w, render.WithColor(!noColorRequested(args)))
	var reported errReported
	if errors.As(err, &reported) {
		r.Error(reported.err)
		return
	}
	r.Error(errors.New("Error: " + err.Error()))
}

// noColorRequested checks the raw arguments because errors may occur
// before flags are parsed.
func noColorRequested(args []string) bool {
	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	for _, arg := range args {
		if arg == "--no-color" || arg == "-no-color" {
			return true
		}
	}
	return false
}

func logLevel(c *urfave.Context) hclog.Level {
	switch {
	case c.Bool("verbose"):
		return hclog.Trace
	case c.Bool("debug"):
		return hclog.Debug
	default:
		return hclog.Warn
	}
}

func newLogger(w io.Writer, level hclog.Level, noColor bool) hclog.Logger {
	color := hclog.AutoColor
	if noColor {
		color = hclog.ColorOff
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   Name,
		Level:  level,
		Output: w,
		Color:  color,
	})
}

// setup builds the Services for this run and stores them in the context.
func setup(c *urfave.Context, opts Options) error {
	noColor := c.Bool("no-color") || os.Getenv("NO_COLOR") != ""
	logger := newLogger(opts.Stderr, logLevel(c), noColor)

	var gitRoot string
	resolve := func(profile string) *config.Resolved {
		rc := config.DefaultResolverConfig(profile, logger.Named("config"))
		if opts.ResolverConfig != nil {
			rc = *opts.ResolverConfig
			rc.Profile = profile
			rc.Logger = logger.Named("config")
		}
		resolver := config.NewResolver(rc)
		gitRoot = resolver.GitRoot()
		cfg := resolver.ResolveWithFlags(map[string]string{
			config.KeyNoColor: boolFlag(c.Bool("no-color")),
		})
		if c.Bool("verbose") {
			for _, key := range cfg.Keys() {
				logger.Trace("config", "key", key, "value", cfg.Masked(key), "source", cfg.Source(key))
			}
		}
		return cfg
	}

	profile := c.String("profile")
	cfg := resolve(profile)
	if cfg.Bool(config.KeyNoColor) {
		noColor = true
	}

	renderOpts := []render.Option{render.WithClock(opts.Now)}
	if noColor {
		renderOpts = append(renderOpts, render.WithColor(false))
	}

	gateOpts := []secret.Option{secret.WithLogger(logger.Named("secret"))}
	if opts.Random != nil {
		gateOpts = append(gateOpts, secret.WithRandom(opts.Random))
	}

	loginClient, err := newLoginClient(logger, cfg, opts.HTTPClient)
	if err != nil {
		return err
	}

	svc := &Services{
		Logger:  logger,
		Config:  cfg,
		Profile: profile,
		Out:     render.New(opts.Stdout, renderOpts...),
		Err:     render.New(opts.Stderr, renderOpts...),
		Asker: prompt.New(
			prompt.WithInput(opts.Stdin),
			prompt.WithOutput(opts.Stderr),
			prompt.WithLogger(logger.Named("prompt")),
		),
		Gate:     secret.NewGate(gateOpts...),
		Login:    loginClient,
		Now:      opts.Now,
		Resolver: resolve,
		GitRoot:  gitRoot,
	}
	c.Context = WithServices(c.Context, svc)
	return nil
}

func boolFlag(set bool) string {
	if set {
		return "true"
	}
	return ""
}
