package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestSetupAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "LOG.txt")
	require.NoError(t, os.WriteFile(path, []byte("earlier run\n"), 0o644))

	log, closer, err := Setup(Options{Level: "warn", File: path})
	require.NoError(t, err)
	log.Info("dropped")
	log.Warn("unknown unit, calculating area instead", "unit", "furlongs", "polygon", "P1")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "earlier run\n")
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "unit=furlongs")
}

func TestSetupBadPath(t *testing.T) {
	_, _, err := Setup(Options{File: filepath.Join(t.TempDir(), "missing", "LOG.txt")})
	assert.Error(t, err)
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, "info", "json").Error("failed to parse KML", "error", "boom")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "failed to parse KML", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
}
