package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/ntk/internal/config"
)

func TestConfigureLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New()
	require.NoError(t, ConfigureLogger(logger, config.LoggingConfig{Level: "debug", Format: "json"}, &buf))

	logger.WithField("chunk", 2).Debug("accumulated")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "accumulated", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, float64(2), entry["chunk"])
}

func TestConfigureLogger_TextLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New()
	require.NoError(t, ConfigureLogger(logger, config.LoggingConfig{Level: "warn", Format: "text"}, &buf))

	logger.Info("hidden")
	assert.Empty(t, buf.String())
	logger.Warn("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}

func TestConfigureLogger_Errors(t *testing.T) {
	logger := log.New()
	assert.Error(t, ConfigureLogger(logger, config.LoggingConfig{Level: "loud"}, &bytes.Buffer{}))
	assert.Error(t, ConfigureLogger(logger, config.LoggingConfig{Level: "info", Format: "xml"}, &bytes.Buffer{}))
}
