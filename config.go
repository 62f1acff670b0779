package repel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nao1215/repel/editor"
)

// Environment variables read by LoadConfig.
const (
	EnvConfig   = "REPEL_CONFIG"
	EnvTheme    = "REPEL_THEME"
	EnvLogFile  = "REPEL_LOG_FILE"
	EnvLogLevel = "REPEL_LOG_LEVEL"
	EnvNoColor  = "NO_COLOR"
)

// Config controls how sessions are created and where diagnostics go.
//
// Example config.toml:
//
//	theme = "dark"
//	max_history = 200
//	log_file = "/tmp/repel.log"
//	log_level = "debug"
type Config struct {
	Theme        string `toml:"theme"`          // built-in color theme, "none" for plain output
	Color        bool   `toml:"color"`          // false disables color regardless of theme
	MaxHistory   int    `toml:"max_history"`    // in-session history entries
	KillRingSize int    `toml:"kill_ring_size"` // killed texts available to yank
	LogFile      string `toml:"log_file"`       // empty discards diagnostics
	LogLevel     string `toml:"log_level"`      // debug, info, warn or error
	LogFormat    string `toml:"log_format"`     // text or json
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Theme:        "default",
		Color:        true,
		MaxHistory:   1000,
		KillRingSize: 16,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// ConfigPath returns the config file LoadConfig reads: $REPEL_CONFIG if set,
// otherwise repel/config.toml under the user's config directory.
func ConfigPath() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "repel", "config.toml")
}

// LoadConfig reads the config file, applies environment overrides and
// validates the result. A missing file yields the defaults.
func LoadConfig() (*Config, error) {
	cfg, err := loadConfigFromFile(ConfigPath())
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

func loadConfigFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("decode TOML: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies REPEL_* and NO_COLOR from the environment.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvTheme); v != "" {
		c.Theme = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	// https://no-color.org: any non-empty value disables color
	if os.Getenv(EnvNoColor) != "" {
		c.Color = false
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error
	if _, ok := editor.ThemeByName(c.Theme); !ok {
		errs = append(errs, fmt.Errorf("unknown theme: %q", c.Theme))
	}
	if c.MaxHistory < 0 {
		errs = append(errs, fmt.Errorf("max_history must not be negative: %d", c.MaxHistory))
	}
	if c.KillRingSize < 0 {
		errs = append(errs, fmt.Errorf("kill_ring_size must not be negative: %d", c.KillRingSize))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format: %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// colorScheme resolves the theme, honoring the Color switch.
func (c *Config) colorScheme() *editor.ColorScheme {
	if !c.Color {
		return nil
	}
	cs, _ := editor.ThemeByName(c.Theme)
	return cs
}
