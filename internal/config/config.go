// Package config loads gantt settings from an optional YAML file and
// GANTT_* environment variables.
//
// Lookup order, later wins:
//   - built-in defaults
//   - $GANTT_CONFIG, or config.yaml in the XDG config directory
//   - environment overrides
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/gantt/internal/domain"
	"github.com/alexanderramin/gantt/internal/timeline"
)

// Config holds all runtime settings.
type Config struct {
	DBPath                string `yaml:"db_path,omitempty"`
	DefaultGranularity    string `yaml:"default_granularity,omitempty"`
	FallbackHorizonMonths int    `yaml:"fallback_horizon_months,omitempty"`
	ClampBars             bool   `yaml:"clamp_bars,omitempty"`
	LogLevel              string `yaml:"log_level,omitempty"`  // debug, info, warn, error
	LogFormat             string `yaml:"log_format,omitempty"` // text, json
	HTTPAddr              string `yaml:"http_addr,omitempty"`
	CacheEntries          int    `yaml:"cache_entries,omitempty"`
	WatchDebounceMs       int    `yaml:"watch_debounce_ms,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults. DBPath is left empty
// and resolved by ResolveDBPath.
func DefaultConfig() Config {
	return Config{
		DefaultGranularity:    string(domain.GranularityMonths),
		FallbackHorizonMonths: timeline.DefaultFallbackHorizonMonths,
		LogLevel:              "warn",
		LogFormat:             "text",
		HTTPAddr:              "127.0.0.1:8080",
		CacheEntries:          64,
		WatchDebounceMs:       300,
	}
}

// Dir returns the XDG config directory for gantt.
func Dir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "gantt")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gantt")
}

// Path returns the config file path, honoring GANTT_CONFIG.
func Path() string {
	if p := os.Getenv("GANTT_CONFIG"); p != "" {
		return p
	}
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file, applies environment overrides and validates
// the result. A missing file is not an error.
func Load() (Config, error) {
	cfg, err := LoadFrom(Path())
	if err != nil {
		return cfg, err
	}
	applyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFrom reads config from a specific path without environment overrides.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.DBPath = expandHome(cfg.DBPath)
	return cfg, nil
}

// Validate rejects values the rest of the program cannot work with.
func (c Config) Validate() error {
	if _, err := domain.ParseGranularity(c.DefaultGranularity); err != nil {
		return fmt.Errorf("default_granularity: %w", err)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format: unknown format %q (want text or json)", c.LogFormat)
	}
	if c.FallbackHorizonMonths < 0 {
		return fmt.Errorf("fallback_horizon_months must not be negative")
	}
	return nil
}

// Granularity returns the parsed default granularity, or months when unset.
func (c Config) Granularity() domain.Granularity {
	g, err := domain.ParseGranularity(c.DefaultGranularity)
	if err != nil {
		return domain.GranularityMonths
	}
	return g
}

// ResolveDBPath returns DBPath, or ~/.gantt/gantt.db when unset.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".gantt", "gantt.db"), nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("GANTT_DB"); v != "" {
		cfg.DBPath = expandHome(v)
	}
	if v := os.Getenv("GANTT_GRANULARITY"); v != "" {
		cfg.DefaultGranularity = v
	}
	if v := os.Getenv("GANTT_FALLBACK_MONTHS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FallbackHorizonMonths = n
		}
	}
	if v := os.Getenv("GANTT_CLAMP_BARS"); v != "" {
		cfg.ClampBars, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("GANTT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("GANTT_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("GANTT_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("GANTT_CACHE_ENTRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.CacheEntries = n
		}
	}
	if v := os.Getenv("GANTT_WATCH_DEBOUNCE_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.WatchDebounceMs = n
		}
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
