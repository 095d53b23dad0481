package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

func TestConfigCmd_Use(t *testing.T) {
	assert.Equal(t, "config", configCmd.Use)
}

func TestConfigSetGet_RoundTrip(t *testing.T) {
	setupTestServices(t)

	output, err := executeCommand(t, "config", "set",
		driven.ConfigKeyBaseURL, "https://arsip.example.go.id")
	require.NoError(t, err)
	assert.Contains(t, output, "Set "+driven.ConfigKeyBaseURL)

	output, err = executeCommand(t, "config", "get", driven.ConfigKeyBaseURL)
	require.NoError(t, err)
	assert.Contains(t, output, "https://arsip.example.go.id")
}

func TestConfigGet_MissingKey(t *testing.T) {
	setupTestServices(t)

	_, err := executeCommand(t, "config", "get", "api.base_url")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not set")
}

func TestConfigUnset_Executes(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.config.Set(driven.ConfigKeyFeedEnabled, true))

	output, err := executeCommand(t, "config", "unset", driven.ConfigKeyFeedEnabled)

	require.NoError(t, err)
	assert.Contains(t, output, "Unset "+driven.ConfigKeyFeedEnabled)
	_, ok := env.config.Get(driven.ConfigKeyFeedEnabled)
	assert.False(t, ok)
}

func TestConfigList_Empty(t *testing.T) {
	setupTestServices(t)

	output, err := executeCommand(t, "config", "list")

	require.NoError(t, err)
	assert.Contains(t, output, "No configuration set")
}

func TestConfigList_ShowsValues(t *testing.T) {
	env := setupTestServices(t)
	require.NoError(t, env.config.Set(driven.ConfigKeyBaseURL, "https://arsip.example.go.id"))
	require.NoError(t, env.config.Set(driven.ConfigKeyPollInterval, 30))

	output, err := executeCommand(t, "config", "list")

	require.NoError(t, err)
	assert.Contains(t, output, driven.ConfigKeyBaseURL+" = https://arsip.example.go.id")
	assert.Contains(t, output, driven.ConfigKeyPollInterval+" = 30")
}
