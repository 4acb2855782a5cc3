package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveDir(t *testing.T) {
	t.Setenv("LOGS_FOLDER", "")
	if got := ResolveDir("/opt/cricket/cricket-mcs", nil); got != filepath.Join("/opt/cricket", "logs") {
		t.Errorf("Expected logs beside binary, got %s", got)
	}
	if got := ResolveDir("", errors.New("no executable")); got != "logs" {
		t.Errorf("Expected relative logs dir, got %s", got)
	}

	t.Setenv("LOGS_FOLDER", "/var/log/cricket")
	if got := ResolveDir("/opt/cricket/cricket-mcs", nil); got != "/var/log/cricket" {
		t.Errorf("Expected LOGS_FOLDER to win, got %s", got)
	}
}

func TestNewFileWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	w, err := NewFileWriter(dir)
	if err != nil {
		t.Fatalf("NewFileWriter failed: %v", err)
	}
	defer w.Close()

	logger := New(w)
	logger.Info().Str("match", "1001").Msg("hello")

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("Log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"match":"1001"`) {
		t.Errorf("Structured field missing from log: %s", data)
	}
	if _, err := os.Stat(filepath.Join(dir, ".write-test")); !os.IsNotExist(err) {
		t.Errorf("Write probe should be removed")
	}
}

func TestNew_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	logger := New(&a, &b)
	logger.Warn().Msg("both")
	if !strings.Contains(a.String(), "both") || !strings.Contains(b.String(), "both") {
		t.Errorf("Expected message on every writer: %q %q", a.String(), b.String())
	}
}
