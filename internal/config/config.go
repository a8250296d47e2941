// Package config provides configuration types and defaults for hanktui.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/hankchat/hanktui/internal/log"
)

// Config holds all configuration options for hanktui.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	UI      UIConfig      `mapstructure:"ui"`
	Sync    SyncConfig    `mapstructure:"sync"`
	History HistoryConfig `mapstructure:"history"`
}

// ServerConfig identifies the chat server to talk to.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar  bool   `mapstructure:"show_status_bar"`
	ShowTimestamps bool   `mapstructure:"show_timestamps"`
	TimeFormat     string `mapstructure:"time_format"`
}

// SyncConfig controls transcript polling.
type SyncConfig struct {
	// PollInterval is how often the client asks the server for new
	// messages. Values below one second are rejected by Validate.
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// HistoryConfig controls local persistence of sent messages and the
// transcript.
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Limit caps both the stored transcript and the input history
	// per server.
	Limit int `mapstructure:"limit"`
}

// ServerURL returns the base URL for the configured server.
func (c Config) ServerURL() string {
	return fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Host: "localhost",
			Port: 3000,
		},
		UI: UIConfig{
			ShowStatusBar:  true,
			ShowTimestamps: true,
			TimeFormat:     "15:04:05",
		},
		Sync: SyncConfig{
			PollInterval: 2 * time.Second,
		},
		History: HistoryConfig{
			Enabled: true,
			Limit:   100,
		},
	}
}

// Validate checks a fully resolved configuration for errors. Defaults for
// omitted keys are applied by viper during loading, before this runs.
func Validate(cfg Config) error {
	if cfg.Server.Host == "" {
		return fmt.Errorf("server.host is required")
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}
	if _, err := url.Parse(cfg.ServerURL()); err != nil {
		return fmt.Errorf("invalid server address: %w", err)
	}
	if cfg.Sync.PollInterval < time.Second {
		return fmt.Errorf("sync.poll_interval must be at least 1s, got %v", cfg.Sync.PollInterval)
	}
	if cfg.History.Limit < 1 {
		return fmt.Errorf("history.limit must be positive, got %d", cfg.History.Limit)
	}
	return nil
}

// DefaultConfigDir returns ~/.config/hanktui or empty string if the home
// directory is unavailable.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hanktui")
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// DefaultHistoryDBPath returns the default location of the local history
// database.
func DefaultHistoryDBPath() string {
	dir := DefaultConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "history.db")
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Hanktui Configuration

# Chat server to connect to. Both values can be overridden with the
# -H/--host and -p/--port flags, or HANK_HOST / HANK_PORT env vars.
server:
  host: localhost
  port: 3000

# UI settings
ui:
  show_status_bar: true   # Show connection status bar at bottom
  show_timestamps: true   # Prefix messages with their arrival time
  # time_format: "15:04:05"  # Go time layout for message timestamps

# Transcript polling
sync:
  poll_interval: 2s  # How often to ask the server for new messages

# Local history (sent messages and transcript, per server)
history:
  enabled: true
  limit: 100  # Newest entries kept per server
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
