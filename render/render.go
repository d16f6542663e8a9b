package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Format selects how results are written.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatText  Format = "text"
)

// ParseFormat validates a format name. The empty string means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json, table or text)", s)
	}
}

// Renderer writes results for humans or machines.
type Renderer struct {
	w   io.Writer
	now func() time.Time

	info    *color.Color
	good    *color.Color
	warn    *color.Color
	bad     *color.Color
	heading *color.Color
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithColor forces color on or off. By default color follows color.NoColor.
func WithColor(enabled bool) Option {
	return func(r *Renderer) {
		for _, c := range r.colors() {
			if enabled {
				c.EnableColor()
			} else {
				c.DisableColor()
			}
		}
	}
}

// WithClock sets the time source used for expiry markers.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// New returns a Renderer writing to w.
func New(w io.Writer, opts ...Option) *Renderer {
	r := &Renderer{
		w:       w,
		now:     time.Now,
		info:    color.New(color.FgBlue),
		good:    color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		bad:     color.New(color.FgRed),
		heading: color.New(color.Bold),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) colors() []*color.Color {
	return []*color.Color{r.info, r.good, r.warn, r.bad, r.heading}
}

// Line writes a plain line.
func (r *Renderer) Line(format string, args ...any) {
	fmt.Fprintf(r.w, format+"\n", args...)
}

// Error writes err in red.
func (r *Renderer) Error(err error) {
	r.bad.Fprintln(r.w, err.Error())
}

// Warn writes a yellow line.
func (r *Renderer) Warn(format string, args ...any) {
	r.warn.Fprintf(r.w, format+"\n", args...)
}

// Info writes a blue line.
func (r *Renderer) Info(format string, args ...any) {
	r.info.Fprintf(r.w, format+"\n", args...)
}

// Success writes a green line.
func (r *Renderer) Success(format string, args ...any) {
	r.good.Fprintf(r.w, format+"\n", args...)
}
