package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" WARNING "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("unknown"))
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn")

	log.Info("CreateReservation: owner=%d", 1)
	assert.Empty(t, buf.String())

	log.Warn("CreateReservation: no capacity for %d people", 7)
	assert.Contains(t, buf.String(), "CreateReservation: no capacity for 7 people")
	assert.Contains(t, buf.String(), "level=WARN")
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info", WithFormat("json"))

	log.Error("commit failed: %v", "boom")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "commit failed: boom", entry["msg"])
}

func TestLogger_MessageWithoutArgsIsNotFormatted(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "info")

	log.Info("progress 100%")
	assert.Contains(t, buf.String(), "progress 100%")
	assert.NotContains(t, buf.String(), "%!")
}

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")

	log, err := New(path, "info")
	require.NoError(t, err)
	log.Info("Starting SMC-ReservationService...")
	log.Close()

	assert.FileExists(t, path)
}
