package logger

import (
	"io"
	"os"
	"strings"
	"testing"
)

// capture runs fn with stdout redirected to a pipe and returns what it wrote.
func capture(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old

	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestDebugFormatsLevelAndArguments(t *testing.T) {
	out := capture(t, func() { Debug("cache hit for zone %s limit %d", "z1", 20) })
	if !strings.Contains(out, "DEBUG") {
		t.Errorf("debug line missing level marker: %q", out)
	}
	if !strings.Contains(out, "cache hit for zone z1 limit 20") {
		t.Errorf("debug line missing formatted message: %q", out)
	}
}

func TestLevelsCarryMessage(t *testing.T) {
	levels := map[string]func(string, ...interface{}){
		"info":    Info,
		"success": Success,
		"warning": Warning,
		"error":   Error,
	}
	for name, log := range levels {
		out := capture(t, func() { log("event %s", name) })
		if !strings.Contains(out, "event "+name) {
			t.Errorf("%s line missing message: %q", name, out)
		}
	}
}
