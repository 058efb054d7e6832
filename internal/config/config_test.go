package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.scholarsphere.app", config.API.BaseURL)
	assert.Equal(t, 15*time.Second, config.API.Timeout)
	assert.Equal(t, 20, config.API.PageLimit)
	assert.Equal(t, 48752, config.Auth.CallbackPort)
	assert.Equal(t, 30*time.Second, config.Notifications.PollInterval)
	assert.Equal(t, "info", config.Logging.Level)
	assert.NotEmpty(t, config.State.Path)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  base_url: https://staging.scholarsphere.app
  page_limit: 50
notifications:
  poll_interval: 1m
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.scholarsphere.app", config.API.BaseURL)
	assert.Equal(t, 50, config.API.PageLimit)
	assert.Equal(t, time.Minute, config.Notifications.PollInterval)
	// Values absent from the file keep their defaults.
	assert.Equal(t, 15*time.Second, config.API.Timeout)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: https://file.example\n"), 0o600))

	t.Setenv("SCHOLARSPHERE_API_BASE_URL", "https://env.example")
	t.Setenv("SCHOLARSPHERE_API_TIMEOUT", "45s")
	t.Setenv("SCHOLARSPHERE_NOTIFY_PAGE_LIMIT", "5")

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example", config.API.BaseURL)
	assert.Equal(t, 45*time.Second, config.API.Timeout)
	assert.Equal(t, 5, config.Notifications.PageLimit)
}

func TestLoadConfigValidation(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"relative base url", "SCHOLARSPHERE_API_BASE_URL", "not-a-url"},
		{"page limit too high", "SCHOLARSPHERE_API_PAGE_LIMIT", "500"},
		{"bad callback port", "SCHOLARSPHERE_AUTH_CALLBACK_PORT", "70000"},
		{"jitter above interval", "SCHOLARSPHERE_NOTIFY_POLL_JITTER", "5m"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := LoadConfig("")
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.scholarsphere.app", config.API.BaseURL)
}
