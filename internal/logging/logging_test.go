package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/limaJavier/stratmps/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJson(t *testing.T) {
	var buffer bytes.Buffer
	logger := New(&buffer, config.LoggingConfig{Level: "info", Format: "json"}, "build")

	logger.Debug().Msg("hidden")
	logger.Info().Int("variables", 5).Msg("model built")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &entry))
	assert.Equal(t, "build", entry["component"])
	assert.Equal(t, "model built", entry["message"])
	assert.Equal(t, float64(5), entry["variables"])
}

func TestNewConsoleFallsBackToInfo(t *testing.T) {
	var buffer bytes.Buffer
	logger := New(&buffer, config.LoggingConfig{Level: "verbose", Format: "console"}, "build")

	logger.Debug().Msg("hidden")
	logger.Info().Msg("shown")

	assert.NotContains(t, buffer.String(), "hidden")
	assert.Contains(t, buffer.String(), "shown")
}
