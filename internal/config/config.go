// ABOUTME: Trainlog configuration management with backend selection.
// ABOUTME: JSON config file under XDG config, overridable via TRAINLOG_* env vars.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"

	"github.com/harperreed/trainlog/internal/kv"
)

// Config stores trainlog configuration.
type Config struct {
	// Backend selects the storage backend: "badger" (default, local) or
	// "charm" (Charm Cloud KV, synced across machines).
	Backend string `json:"backend,omitempty" env:"TRAINLOG_BACKEND"`

	// DataDir is the root directory for local data storage. Badger puts
	// its value log here. Supports ~ expansion for home directory.
	// Defaults to ~/.local/share/trainlog.
	DataDir string `json:"data_dir,omitempty" env:"TRAINLOG_DATA_DIR"`

	// Debug enables verbose logging.
	Debug bool `json:"debug,omitempty" env:"TRAINLOG_DEBUG"`
}

// GetBackend returns the configured backend, defaulting to "badger".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "badger"
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DataDir()
	}
	return ExpandPath(c.DataDir)
}

// DataDir returns the default XDG data directory for trainlog.
func DataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, _ := os.UserHomeDir()
		dataDir = filepath.Join(homeDir, ".local", "share")
	}
	return filepath.Join(dataDir, "trainlog")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenBackend creates a KV backend based on the configured storage.
func (c *Config) OpenBackend() (kv.Backend, error) {
	switch c.GetBackend() {
	case "badger":
		dir := filepath.Join(c.GetDataDir(), "badger")
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, err
		}
		return kv.OpenBadger(dir)
	case "charm":
		return kv.OpenCharm("trainlog")
	default:
		return nil, fmt.Errorf("unknown backend: %q", c.Backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "trainlog", "config.json")
}

// Load reads config from disk, then applies environment overrides.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	var cfg Config
	if len(data) > 0 {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
