package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestJSONLoggerWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Format: "json", Output: &buf})

	log.Info("Order committed", "order_id", "o-1", "quantity", 20)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Order committed", entry["msg"])
	assert.Equal(t, "o-1", entry["order_id"])
	assert.EqualValues(t, 20, entry["quantity"])
}

func TestLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: "info", Output: &buf})

	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown", "key", "value")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "key=value")
}

func TestWithAddsFields(t *testing.T) {
	var buf bytes.Buffer
	base := New(Options{Output: &buf}).(*SlogLogger)

	base.With("component", "voice").Info("ready")
	assert.Contains(t, buf.String(), "component=voice")
}
