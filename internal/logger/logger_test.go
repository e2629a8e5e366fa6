package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "production", zerolog.InfoLevel)

	log.Info().Str("request_id", "abc").Msg("request sent")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "abc", entry["request_id"])
	assert.Equal(t, "request sent", entry["message"])
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "production", zerolog.WarnLevel)

	log.Info().Msg("dropped")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}

func TestNewDevelopmentUsesConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "development", zerolog.DebugLevel)

	log.Debug().Msg("hello")
	assert.Contains(t, buf.String(), "DBG")
	assert.Contains(t, buf.String(), "hello")
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, parseLevel("DEBUG"))
	assert.Equal(t, zerolog.InfoLevel, parseLevel("nonsense"))
}
