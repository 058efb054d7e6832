package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the client configuration
type Config struct {
	API struct {
		BaseURL   string        `yaml:"base_url" env:"SCHOLARSPHERE_API_BASE_URL"`
		Timeout   time.Duration `yaml:"timeout" env:"SCHOLARSPHERE_API_TIMEOUT"`
		PageLimit int           `yaml:"page_limit" env:"SCHOLARSPHERE_API_PAGE_LIMIT"`
	} `yaml:"api"`

	Auth struct {
		CallbackPort int           `yaml:"callback_port" env:"SCHOLARSPHERE_AUTH_CALLBACK_PORT"`
		LoginTimeout time.Duration `yaml:"login_timeout" env:"SCHOLARSPHERE_AUTH_LOGIN_TIMEOUT"`
	} `yaml:"auth"`

	Notifications struct {
		PollInterval time.Duration `yaml:"poll_interval" env:"SCHOLARSPHERE_NOTIFY_POLL_INTERVAL"`
		PollJitter   time.Duration `yaml:"poll_jitter" env:"SCHOLARSPHERE_NOTIFY_POLL_JITTER"`
		PageLimit    int           `yaml:"page_limit" env:"SCHOLARSPHERE_NOTIFY_PAGE_LIMIT"`
	} `yaml:"notifications"`

	State struct {
		Path string `yaml:"path" env:"SCHOLARSPHERE_STATE_PATH"`
	} `yaml:"state"`

	Logging struct {
		Level  string `yaml:"level" env:"SCHOLARSPHERE_LOG_LEVEL"`
		Format string `yaml:"format" env:"SCHOLARSPHERE_LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// The file is optional; defaults apply first, then the file, then env vars.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			file, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}

			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// API defaults
	config.API.BaseURL = "https://api.scholarsphere.app"
	config.API.Timeout = 15 * time.Second
	config.API.PageLimit = 20

	// Auth defaults
	config.Auth.CallbackPort = 48752
	config.Auth.LoginTimeout = 3 * time.Minute

	// Notification polling defaults
	config.Notifications.PollInterval = 30 * time.Second
	config.Notifications.PollJitter = 2 * time.Second
	config.Notifications.PageLimit = 20

	// State defaults
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	config.State.Path = home + "/.scholarsphere/state.db"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "pretty"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	parsed, err := url.Parse(config.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("api base_url must be an absolute URL, got %q", config.API.BaseURL)
	}

	if config.API.Timeout <= 0 {
		return fmt.Errorf("api timeout must be positive")
	}

	if config.API.PageLimit < 1 || config.API.PageLimit > 100 {
		return fmt.Errorf("api page_limit must be between 1 and 100")
	}

	if config.Auth.CallbackPort < 1 || config.Auth.CallbackPort > 65535 {
		return fmt.Errorf("auth callback_port must be a valid port")
	}

	if config.Notifications.PollInterval <= 0 {
		return fmt.Errorf("notifications poll_interval must be positive")
	}

	if config.Notifications.PollJitter < 0 || config.Notifications.PollJitter >= config.Notifications.PollInterval {
		return fmt.Errorf("notifications poll_jitter must be non-negative and below poll_interval")
	}

	if config.Notifications.PageLimit < 1 {
		return fmt.Errorf("notifications page_limit must be positive")
	}

	if config.State.Path == "" {
		return fmt.Errorf("state path is required")
	}

	return nil
}
