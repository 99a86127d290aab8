package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "debug")
	log.Debug().Str("event", "request").Int("status", 200).Msg("handled")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "request", line["event"])
	require.Equal(t, float64(200), line["status"])
	require.Equal(t, "debug", line["level"])
	require.Contains(t, line, "time")
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")
	log.Info().Msg("dropped")
	require.Zero(t, buf.Len())
	log.Warn().Msg("kept")
	require.Contains(t, buf.String(), "kept")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("loud"))
	require.Equal(t, zerolog.DebugLevel, ParseLevel(" DEBUG "))
	require.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsole(&buf, "info")
	log.Info().Str("event", "start").Msg("hello")
	require.Contains(t, buf.String(), "hello")
	require.Contains(t, buf.String(), "event=")
}
