package testutil

import (
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

// NewLogger returns a trace-level logger that writes through t.Log.
func NewLogger(t *testing.T) hclog.Logger {
	t.Helper()

	return hclog.New(&hclog.LoggerOptions{
		Name:        t.Name(),
		Level:       hclog.Trace,
		Output:      testWriter{t},
		DisableTime: true,
	})
}

type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
