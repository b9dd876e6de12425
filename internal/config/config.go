package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// HomeEnv overrides the base directory (default ~/.habits).
const HomeEnv = "HABITS_HOME"

// Config holds application configuration.
type Config struct {
	// Timezone is the IANA zone used to decide calendar days.
	// Empty means the machine's local zone.
	Timezone string `json:"timezone,omitempty" toml:"timezone"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// 0 means use sql.DB default (unlimited).
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty" toml:"db_max_open_conns"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty" toml:"db_max_idle_conns"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty" toml:"disabled_tools"`

	// WebBind is the interface the dashboard listens on.
	WebBind string `json:"web_bind,omitempty" toml:"web_bind"`

	// WebPort is the dashboard port.
	WebPort int `json:"web_port,omitempty" toml:"web_port"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty" toml:"log_level"`

	// LogFormat is json or console.
	LogFormat string `json:"log_format,omitempty" toml:"log_format"`

	// ReportDays is how many days the report grid covers by default.
	ReportDays int `json:"report_days,omitempty" toml:"report_days"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		WebBind:    "127.0.0.1",
		WebPort:    8642,
		LogLevel:   "info",
		LogFormat:  "console",
		ReportDays: 7,
	}
}

// BaseDir returns the data directory: $HABITS_HOME, else ~/.habits.
func BaseDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(HomeEnv)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".habits"), nil
}

// Load loads configuration from baseDir/config.json, or baseDir/config.toml
// when no JSON file exists. Returns default config if neither exists.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.habits.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFileRaw(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg, err = loadTOMLRaw(filepath.Join(baseDir, "config.toml"))
		if err != nil {
			return nil, err
		}
	}
	if cfg == nil {
		cfg = &Config{}
	}

	merged := Merge(DefaultConfig(), cfg)
	if _, err := merged.Location(); err != nil {
		return nil, err
	}
	return merged, nil
}

// loadFileRaw loads a JSON config file. Returns nil (not defaults) if the
// file doesn't exist.
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}
	return cfg, nil
}

// loadTOMLRaw loads a TOML config file. Returns nil if the file doesn't exist.
func loadTOMLRaw(configPath string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}
	return cfg, nil
}

// Location resolves Timezone. Empty means time.Local.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", tz, err)
	}
	return loc, nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	// Scalars: overlay wins if non-zero, else base
	result.Timezone = firstNonEmpty(overlay.Timezone, base.Timezone)
	result.WebBind = firstNonEmpty(overlay.WebBind, base.WebBind)
	result.LogLevel = firstNonEmpty(overlay.LogLevel, base.LogLevel)
	result.LogFormat = firstNonEmpty(overlay.LogFormat, base.LogFormat)

	result.DBMaxOpenConns = firstNonZero(overlay.DBMaxOpenConns, base.DBMaxOpenConns)
	result.DBMaxIdleConns = firstNonZero(overlay.DBMaxIdleConns, base.DBMaxIdleConns)
	result.WebPort = firstNonZero(overlay.WebPort, base.WebPort)
	result.ReportDays = firstNonZero(overlay.ReportDays, base.ReportDays)

	// Arrays: merge and deduplicate
	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

func firstNonZero(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string(nil), a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
