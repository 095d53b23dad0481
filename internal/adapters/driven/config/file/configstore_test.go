package file

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arsipkita/arsip-cli/internal/core/ports/driven"
)

func TestConfigStore_SetGetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set(driven.ConfigKeyBaseURL, "https://arsip.example"))
	require.NoError(t, store.Set(driven.ConfigKeyPollInterval, 30))
	require.NoError(t, store.Set(driven.ConfigKeyFeedEnabled, true))

	assert.Equal(t, "https://arsip.example", store.GetString(driven.ConfigKeyBaseURL))
	assert.Equal(t, 30, store.GetInt(driven.ConfigKeyPollInterval))
	assert.True(t, store.GetBool(driven.ConfigKeyFeedEnabled))

	// A second store over the same directory sees the persisted values.
	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://arsip.example", reloaded.GetString(driven.ConfigKeyBaseURL))
	assert.Equal(t, 30, reloaded.GetInt(driven.ConfigKeyPollInterval))
	assert.True(t, reloaded.GetBool(driven.ConfigKeyFeedEnabled))
}

func TestConfigStore_DotKeysBecomeSections(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set(driven.ConfigKeyBaseURL, "https://arsip.example"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[api]")
	assert.Contains(t, string(data), "base_url")
}

func TestConfigStore_MissingAndWrongTypes(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("missing"))
	assert.False(t, store.GetBool("missing"))

	require.NoError(t, store.Set("api.base_url", 42))
	assert.Equal(t, "", store.GetString("api.base_url"))
}

func TestConfigStore_DeleteAndKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("api.base_url", "https://arsip.example"))
	require.NoError(t, store.Set("notifications.feed_enabled", true))
	assert.Equal(t, []string{"api.base_url", "notifications.feed_enabled"}, store.Keys())

	require.NoError(t, store.Delete("notifications.feed_enabled"))
	assert.Equal(t, []string{"api.base_url"}, store.Keys())
	_, ok := store.Get("notifications.feed_enabled")
	assert.False(t, ok)
}
