package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTestContext(t *testing.T) {
	ctx := TestContext(t)
	if ctx.Err() != nil {
		t.Fatalf("context already done: %v", ctx.Err())
	}

	ctx = TestContextWithTimeout(t, time.Hour)
	if _, ok := ctx.Deadline(); !ok {
		t.Error("expected a deadline")
	}
}

func TestTempFile(t *testing.T) {
	path := TempFileString(t, "keys/hs256.key", "c2VjcmV0")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "c2VjcmV0" {
		t.Errorf("content = %q", data)
	}
	if filepath.Base(path) != "hs256.key" {
		t.Errorf("name = %q", filepath.Base(path))
	}
}

func TestIsolateHome(t *testing.T) {
	home := IsolateHome(t)

	if got, _ := os.UserHomeDir(); got != home {
		t.Errorf("UserHomeDir() = %q, want %q", got, home)
	}
	if got := os.Getenv("DEFAULT_ENV_ROOT"); got != filepath.Join(home, ".socotra") {
		t.Errorf("DEFAULT_ENV_ROOT = %q", got)
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(t)
	if !logger.IsTrace() {
		t.Error("expected trace level")
	}
	logger.Debug("written through t.Log", "key", "value")
}
