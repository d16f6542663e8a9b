// Command jwtkit inspects, signs and verifies Socotra JWTs, logs in to
// the Socotra API, and checks or generates secrets.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	colorable "github.com/mattn/go-colorable"

	"github.com/socotra/jwtkit/cli"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var stdout, stderr io.Writer = os.Stdout, os.Stderr
	// Only use colored output on a terminal, and not when disabled.
	if os.Getenv("NO_COLOR") == "" && !color.NoColor {
		stdout = colorable.NewColorable(os.Stdout)
		stderr = colorable.NewColorable(os.Stderr)
	} else {
		stdout = colorable.NewNonColorable(stdout)
		stderr = colorable.NewNonColorable(stderr)
	}

	return cli.Run(ctx, os.Args, cli.Options{
		Stdout: stdout,
		Stderr: stderr,
	})
}
