package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNilLoggerIsNoop(t *testing.T) {
	Logger = nil
	// must not panic
	Debug("x")
	Info("x", "k", 1)
	Warn("x")
	Error("x")
}

func TestInitWritesToWriter(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, log.InfoLevel)
	defer func() { Logger = nil }()

	Debug("hidden")
	Info("[fetchMovies] Fetch time: 12 milliseconds")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	if !strings.Contains(out, "[fetchMovies] Fetch time: 12 milliseconds") {
		t.Errorf("info line missing: %q", out)
	}
}

func TestInitFile(t *testing.T) {
	dir := t.TempDir()
	path, err := InitFile(dir)
	if err != nil {
		t.Fatalf("InitFile: %v", err)
	}
	defer func() {
		Close()
		Logger = nil
	}()

	Info("hello")
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "hello") {
		t.Errorf("log file missing line: %q", b)
	}
}
