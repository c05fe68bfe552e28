package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  log.Level
	}{
		{"debug", "debug", log.DebugLevel},
		{"info", "info", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"warning alias", "warning", log.WarnLevel},
		{"upper case", "ERROR", log.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if err != nil {
				t.Fatalf("ParseLevel(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestParseFormatter(t *testing.T) {
	if f, err := ParseFormatter("json"); err != nil || f != log.JSONFormatter {
		t.Fatalf("unexpected json formatter: %v %v", f, err)
	}
	if _, err := ParseFormatter("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestNewWritesSessionField(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = "logfmt"
	l, err := New(&buf, opts)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Info("item added", "key", 1)
	out := buf.String()
	if !strings.Contains(out, "session=") || !strings.Contains(out, "key=1") {
		t.Fatalf("unexpected log output: %q", out)
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, DefaultOptions())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug record written at info level: %q", buf.String())
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.log")
	l, closeFn, err := Open(path, DefaultOptions())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	l.Info("hello")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(b), "hello") {
		t.Fatalf("expected record in file: %q", b)
	}
}

func TestOpenEmptyPathDiscards(t *testing.T) {
	l, closeFn, err := Open("", DefaultOptions())
	if err != nil || l == nil {
		t.Fatalf("open: %v", err)
	}
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
