// Package config loads application configuration from a YAML file and
// LEARNPATH_ environment variables. Environment variables win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Config holds all application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`
	Profile ProfileConfig `yaml:"profile"`
	Source  SourceConfig  `yaml:"source"`
	Fixture FixtureConfig `yaml:"fixture"`
}

// StoreConfig selects where the profile is kept.
type StoreConfig struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"` // database file or profile directory; empty means the default location
	Key     string `yaml:"key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Mode string `yaml:"mode"` // "prod", "debug" or "dev"
}

// ProfileConfig holds learner settings.
type ProfileConfig struct {
	Username string `yaml:"username"`
	Timezone string `yaml:"timezone"` // IANA name; empty means local time
}

// SourceConfig selects the content source adapter.
type SourceConfig struct {
	Kind string `yaml:"kind"`
}

// FixtureConfig configures the demo content source.
type FixtureConfig struct {
	Seed uint64 `yaml:"seed"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Store:   StoreConfig{Backend: BackendSQLite, Key: "default"},
		Log:     LogConfig{Mode: "dev"},
		Profile: ProfileConfig{Username: "Learner"},
		Source:  SourceConfig{Kind: "fixture"},
		Fixture: FixtureConfig{Seed: 42},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/learnpath/config.yaml, falling back to
// ~/.config/learnpath/config.yaml.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "learnpath", "config.yaml"), nil
}

// Load reads path (when it exists), then applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Store.Backend = envStr("LEARNPATH_STORE_BACKEND", c.Store.Backend)
	c.Store.Path = envStr("LEARNPATH_STORE_PATH", c.Store.Path)
	c.Store.Key = envStr("LEARNPATH_STORE_KEY", c.Store.Key)
	c.Log.Mode = envStr("LEARNPATH_LOG_MODE", c.Log.Mode)
	c.Profile.Username = envStr("LEARNPATH_USERNAME", c.Profile.Username)
	c.Profile.Timezone = envStr("LEARNPATH_TIMEZONE", c.Profile.Timezone)
	c.Source.Kind = envStr("LEARNPATH_SOURCE", c.Source.Kind)

	if v := os.Getenv("LEARNPATH_FIXTURE_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("LEARNPATH_FIXTURE_SEED must be an unsigned integer, got %q", v)
		}
		c.Fixture.Seed = seed
	}
	return nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch c.Store.Backend {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("store.backend must be one of sqlite, file, memory, got %q", c.Store.Backend)
	}
	if c.Store.Key == "" {
		return errors.New("store.key must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Profile.Timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Profile.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Profile.Timezone)
	if err != nil {
		return nil, fmt.Errorf("profile.timezone: %w", err)
	}
	return loc, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
