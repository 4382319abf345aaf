// Package config resolves listy's settings: built-in defaults, then an
// optional config.yaml in the XDG config directory, then LISTY_* environment
// variables. Command-line flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	// AppName is the directory name under the XDG base directories.
	AppName = "listy"

	// FileName is the optional config file inside the config directory.
	FileName = "config.yaml"

	// LogFileName receives logs while the TUI owns the terminal.
	LogFileName = "listy.log"

	DefaultBaseURL   = "https://listy.app/"
	DefaultHideAfter = 10 * time.Second
)

// Storage backends.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	// Dir is the configuration directory the file was looked up in.
	Dir string `yaml:"-"`

	// DataDir holds the list store and the TUI log.
	DataDir string        `yaml:"data_dir"`
	Storage StorageConfig `yaml:"storage"`
	Share   ShareConfig   `yaml:"share"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
}

type StorageConfig struct {
	Backend string `yaml:"backend"`
}

type ShareConfig struct {
	BaseURL string `yaml:"base_url"`
	// HideAfter is a Go duration string; "0" keeps the link visible.
	HideAfter string `yaml:"hide_after"`
}

type UIConfig struct {
	Theme string `yaml:"theme"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Load resolves the configuration. configDir overrides the XDG lookup.
// A missing config file is not an error.
func Load(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	c := &Config{Dir: dir}

	b, err := os.ReadFile(c.Path())
	switch {
	case err == nil:
		parsed, err := Parse(b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.Path(), err)
		}
		parsed.Dir = dir
		c = parsed
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read config: %w", err)
	}

	c.applyEnv()
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse decodes YAML strictly; unknown keys are errors.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.UnmarshalWithOptions(data, &c, yaml.Strict()); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("LISTY_DATA_DIR")); v != "" {
		c.DataDir = v
	}
	if v := strings.TrimSpace(os.Getenv("LISTY_BACKEND")); v != "" {
		c.Storage.Backend = v
	}
	if v := strings.TrimSpace(os.Getenv("LISTY_BASE_URL")); v != "" {
		c.Share.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("LISTY_THEME")); v != "" {
		c.UI.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv("LISTY_LOG_LEVEL")); v != "" {
		c.Log.Level = v
	}
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir()
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = BackendJSON
	}
	c.Storage.Backend = strings.ToLower(c.Storage.Backend)
	if c.Share.BaseURL == "" {
		c.Share.BaseURL = DefaultBaseURL
	}
	if c.Share.HideAfter == "" {
		c.Share.HideAfter = DefaultHideAfter.String()
	}
	if c.UI.Theme == "" {
		c.UI.Theme = "classic"
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendJSON, BackendSQLite, BackendMemory:
	default:
		return fmt.Errorf("storage.backend: unknown backend %q (want json, sqlite or memory)", c.Storage.Backend)
	}
	if _, err := time.ParseDuration(c.Share.HideAfter); err != nil {
		return fmt.Errorf("share.hide_after: %w", err)
	}
	return nil
}

// HideAfter is the parsed share.hide_after.
func (c *Config) HideAfter() time.Duration {
	d, err := time.ParseDuration(c.Share.HideAfter)
	if err != nil {
		return DefaultHideAfter
	}
	return d
}

// Path returns the config file path.
func (c *Config) Path() string { return filepath.Join(c.Dir, FileName) }

// LogPath returns the TUI log file path.
func (c *Config) LogPath() string { return filepath.Join(c.DataDir, LogFileName) }

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0o755)
}

// DefaultConfigDir uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultDataDir uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", AppName)
}
