package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Sync.PollInterval)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 100, cfg.History.Limit)
	assert.True(t, cfg.UI.ShowStatusBar)
}

func TestServerURL(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, "http://localhost:3000", cfg.ServerURL())

	cfg.Server = ServerConfig{Host: "chat.example.com", Port: 8080}
	assert.Equal(t, "http://chat.example.com:8080", cfg.ServerURL())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty host",
			mutate:  func(c *Config) { c.Server.Host = "" },
			wantErr: "server.host",
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "server.port",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "server.port",
		},
		{
			name:    "poll interval below 1s",
			mutate:  func(c *Config) { c.Sync.PollInterval = 100 * time.Millisecond },
			wantErr: "poll_interval",
		},
		{
			name:    "history limit zero",
			mutate:  func(c *Config) { c.History.Limit = 0 },
			wantErr: "history.limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, WriteDefaultConfig(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// The template parses and matches the compiled defaults.
	var raw struct {
		Server struct {
			Host string `yaml:"host"`
			Port int    `yaml:"port"`
		} `yaml:"server"`
		History struct {
			Limit int `yaml:"limit"`
		} `yaml:"history"`
	}
	require.NoError(t, yaml.Unmarshal(data, &raw))
	assert.Equal(t, "localhost", raw.Server.Host)
	assert.Equal(t, 3000, raw.Server.Port)
	assert.Equal(t, 100, raw.History.Limit)
}
