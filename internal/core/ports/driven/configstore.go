package driven

// ConfigStore persists application configuration as key-value pairs.
// Backed by a TOML file in the arsip config directory.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	GetBool(key string) bool

	// Set stores a configuration value.
	Set(key string, value any) error

	// Delete removes a configuration value.
	Delete(key string) error

	// Keys returns all configured keys.
	Keys() []string
}

// Well-known configuration keys.
const (
	// ConfigKeyBaseURL is the archive backend base URL.
	ConfigKeyBaseURL = "api.base_url"

	// ConfigKeyPollInterval is the notification poll interval in seconds.
	ConfigKeyPollInterval = "notifications.poll_interval"

	// ConfigKeyFeedEnabled toggles the live notification feed.
	ConfigKeyFeedEnabled = "notifications.feed_enabled"
)
