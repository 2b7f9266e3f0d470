package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempRegistry points the package at a fresh directory and buffer and
// restores the previous state when the test ends.
func useTempRegistry(t *testing.T) *bytes.Buffer {
	t.Helper()

	mu.Lock()
	prevRegistry, prevDir, prevLevel, prevFile, prevStdout, prevNow := registry, logDir, minLevel, file, stdout, now
	buf := &bytes.Buffer{}
	registry = make(map[string]*Logger)
	logDir = t.TempDir()
	minLevel = LevelInfo
	file = nil
	stdout = buf
	now = func() time.Time { return time.Date(2025, 11, 6, 8, 30, 0, 0, time.UTC) }
	mu.Unlock()

	t.Cleanup(func() {
		mu.Lock()
		defer mu.Unlock()
		if file != nil {
			_ = file.Close()
		}
		registry, logDir, minLevel, file, stdout, now = prevRegistry, prevDir, prevLevel, prevFile, prevStdout, prevNow
	})
	return buf
}

func TestGetIsIdempotent(t *testing.T) {
	useTempRegistry(t)

	first := Get("extract")
	second := Get("extract")

	assert.Same(t, first, second)
	assert.Equal(t, 2, first.Handlers())
	assert.Equal(t, first.Handlers(), second.Handlers())
}

func TestDistinctNamesShareTheFile(t *testing.T) {
	useTempRegistry(t)

	a := Get("a")
	b := Get("b")

	assert.NotSame(t, a, b)
	assert.Equal(t, 2, b.Handlers())
}

func TestLineFormatAndFile(t *testing.T) {
	buf := useTempRegistry(t)

	l := Get("weather.service")
	l.Infof("[CITY] %s, %s", "Paris", "France")

	line := buf.String()
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} \| weather\.service \| INFO \| \[CITY\] Paris, France\n$`), line)

	content, err := os.ReadFile(filepath.Join(logDir, "etl_20251106.log"))
	require.NoError(t, err)
	assert.Equal(t, line, string(content))
}

func TestMinimumLevel(t *testing.T) {
	buf := useTempRegistry(t)

	l := Get("levels")
	l.Debugf("hidden")
	l.Warnf("shown %d", 1)
	l.Errorf("shown %d", 2)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "| levels | WARNING | shown 1")
	assert.Contains(t, out, "| levels | ERROR | shown 2")
}

func TestConfigureAppliesToNewLoggers(t *testing.T) {
	buf := useTempRegistry(t)

	dir := t.TempDir()
	Configure(dir, "debug")

	l := Get("debugging")
	l.Debugf("visible")

	assert.Contains(t, buf.String(), "| debugging | DEBUG | visible")
	assert.FileExists(t, filepath.Join(dir, "etl_20251106.log"))
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"DEBUG":   LevelDebug,
		"info":    LevelInfo,
		"Warn":    LevelWarn,
		"WARNING": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
