package domain

import (
	"path/filepath"
	"time"
)

// ConfigFileName is the name of the configuration file.
const ConfigFileName = "config.toml"

// CredentialsFileName is the name of the durable credential file.
const CredentialsFileName = "credentials.toml"

// APIURLEnv overrides the configured API base URL.
const APIURLEnv = "TODO_API_URL"

// DefaultAPIURL is used when neither the config file nor the environment names an API.
const DefaultAPIURL = "http://localhost:8000"

// APIPathPrefix is appended to the base URL for every API call.
const APIPathPrefix = "/api/v1"

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string      `toml:"-"`
	API      APIConfig     `toml:"api"`
	Log      LogConfig     `toml:"log"`
	Metrics  MetricsConfig `toml:"metrics"`
	Toast    ToastConfig   `toml:"toast"`
}

// APIConfig holds settings from the [api] section.
type APIConfig struct {
	BaseURL string   `toml:"base_url,omitempty"` // API origin, e.g. http://localhost:8000
	Timeout Duration `toml:"timeout,omitempty"`  // Zero keeps the transport default
}

// LogConfig holds settings from the [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // debug, info, warn, error
}

// MetricsConfig holds settings from the [metrics] section.
type MetricsConfig struct {
	File string `toml:"file,omitempty"` // Prometheus textfile written on exit (empty = disabled)
}

// ToastConfig holds settings from the [toast] section.
type ToastConfig struct {
	Duration Duration `toml:"duration,omitempty"` // Default toast lifetime
}

// Duration is a time.Duration that reads and writes "5s" style strings in TOML.
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// NewDefaultConfig returns the configuration used when no file exists.
func NewDefaultConfig() *Config {
	return &Config{
		API:   APIConfig{BaseURL: DefaultAPIURL},
		Log:   LogConfig{Level: "info"},
		Toast: ToastConfig{Duration: Duration(DefaultToastDuration)},
	}
}

// ToastDuration returns the configured toast lifetime, falling back to the default.
func (c *Config) ToastDuration() time.Duration {
	if c.Toast.Duration <= 0 {
		return DefaultToastDuration
	}
	return time.Duration(c.Toast.Duration)
}

// GlobalConfigDir returns the application directory under the user config home.
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, "todo")
}

// LogPath returns the log file path under dir.
func LogPath(dir string) string {
	return filepath.Join(dir, "logs", "todo.log")
}

// CredentialsPath returns the credential file path under dir.
func CredentialsPath(dir string) string {
	return filepath.Join(dir, CredentialsFileName)
}

// ConfigInfo describes a configuration file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// ConfigTemplate is written by "todo config init".
const ConfigTemplate = `# todo client configuration

[api]
# Origin of the task API. The /api/v1 prefix is added automatically.
# Overridden by the TODO_API_URL environment variable and --api-url.
base_url = "http://localhost:8000"
# timeout = "10s"

[log]
# debug, info, warn, error
level = "info"

[toast]
# How long notifications stay visible. "0s" keeps them until dismissed.
duration = "5s"

[metrics]
# Write request metrics in Prometheus text format on exit.
# file = "/tmp/todo.prom"
`
