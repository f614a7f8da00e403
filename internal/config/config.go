// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/skema/internal/assign"
	"github.com/javiermolinar/skema/internal/board"
	"github.com/javiermolinar/skema/internal/logx"
	"github.com/javiermolinar/skema/internal/slot"
)

// Config holds the application configuration.
type Config struct {
	Grid   GridConfig   `toml:"grid"`
	Assign AssignConfig `toml:"assign"`
	UI     UIConfig     `toml:"ui"`
	Log    LogConfig    `toml:"log"`
}

// GridConfig describes the droppable slots. It is fixed for a session.
type GridConfig struct {
	Shape     string   `toml:"shape"`      // "two-axis" or "single-axis"
	HourStart int      `toml:"hour_start"` // first hour, inclusive
	HourEnd   int      `toml:"hour_end"`   // last hour, inclusive
	Days      []string `toml:"days"`       // e.g., ["monday", "tuesday", ...]
}

// AssignConfig selects what a drop onto an occupied slot does.
type AssignConfig struct {
	Policy string `toml:"policy"` // "multi" or "single"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte", "light"
	Mouse bool   `toml:"mouse"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
	File  string `toml:"file"`  // JSON log file; empty disables file logging
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Shape:     string(slot.TwoAxis),
			HourStart: 8,
			HourEnd:   16,
			Days:      []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		},
		Assign: AssignConfig{
			Policy: string(assign.Multi),
		},
		UI: UIConfig{
			Theme: "frappe",
			Mouse: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "skema", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	// Grid overrides
	if v := os.Getenv("SKEMA_GRID_SHAPE"); v != "" {
		cfg.Grid.Shape = v
	}
	if v := os.Getenv("SKEMA_HOUR_START"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SKEMA_HOUR_START: %w", err)
		}
		cfg.Grid.HourStart = n
	}
	if v := os.Getenv("SKEMA_HOUR_END"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SKEMA_HOUR_END: %w", err)
		}
		cfg.Grid.HourEnd = n
	}
	if v := os.Getenv("SKEMA_DAYS"); v != "" {
		cfg.Grid.Days = splitList(v)
	}

	if v := os.Getenv("SKEMA_ASSIGN_POLICY"); v != "" {
		cfg.Assign.Policy = v
	}

	// UI overrides
	if v := os.Getenv("SKEMA_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}

	// Log overrides
	if v := os.Getenv("SKEMA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SKEMA_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := c.BoardConfig(); err != nil {
		return err
	}
	if c.Log.Level != "" && !logx.ValidLevel(c.Log.Level) {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	if c.UI.Theme == "" {
		return errors.New("ui theme must be set")
	}
	return nil
}

// BoardConfig converts the grid and assign sections into a board.Config.
// The grid itself is validated by building it.
func (c *Config) BoardConfig() (board.Config, error) {
	shape, err := slot.ParseShape(c.Grid.Shape)
	if err != nil {
		return board.Config{}, err
	}
	policy, err := assign.ParsePolicy(c.Assign.Policy)
	if err != nil {
		return board.Config{}, err
	}
	gc := slot.Config{
		Shape:     shape,
		HourStart: c.Grid.HourStart,
		HourEnd:   c.Grid.HourEnd,
	}
	if shape == slot.TwoAxis {
		gc.Days = append([]string(nil), c.Grid.Days...)
	}
	if _, err := slot.NewGrid(gc); err != nil {
		return board.Config{}, err
	}
	return board.Config{Grid: gc, Policy: policy}, nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
