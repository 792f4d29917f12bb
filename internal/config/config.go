// ABOUTME: Viper-backed configuration for modscmd
// ABOUTME: Loads config.yaml, applies MODSCMD_ env overrides and writes defaults when missing

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Config keys, also used as MODSCMD_<KEY> environment overrides.
const (
	KeyPageSize     = "page_size"
	KeyColorScheme  = "color_scheme"
	KeyHiddenModIDs = "hidden_mod_ids"
	KeyLabel        = "label"
	KeyLogLevel     = "log_level"
	KeyModsDir      = "mods_dir"
)

// EnvPrefix is prepended to upper-cased keys for environment overrides.
const EnvPrefix = "MODSCMD"

// ColorSchemes lists the accepted color_scheme values.
var ColorSchemes = []string{"default", "mono", "vivid"}

// Config is the effective modscmd configuration.
type Config struct {
	PageSize     int      `mapstructure:"page_size" yaml:"page_size" json:"page_size"`
	ColorScheme  string   `mapstructure:"color_scheme" yaml:"color_scheme" json:"color_scheme"`
	HiddenModIDs []string `mapstructure:"hidden_mod_ids" yaml:"hidden_mod_ids" json:"hidden_mod_ids"`
	Label        string   `mapstructure:"label" yaml:"label" json:"label"`
	LogLevel     string   `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	ModsDir      string   `mapstructure:"mods_dir" yaml:"mods_dir" json:"mods_dir"`
}

// DefaultConfig returns a new config with default values
func DefaultConfig() *Config {
	return &Config{
		PageSize:     8,
		ColorScheme:  "default",
		HiddenModIDs: []string{},
		Label:        "mods",
		LogLevel:     "warn",
	}
}

// LoadError describes a config file that exists but could not be used.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf(`Could not load configuration:

  File: %s
  Problem: %v

Fix or delete the file; a fresh one with defaults is written on the next run.
To see the values in effect:
  modscmd config show`, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads the config at path (DefaultConfigPath when empty). A missing
// file is created with defaults. MODSCMD_* environment variables override
// file values.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	v := newViper(path)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
		if err := v.SafeWriteConfigAs(path); err != nil {
			return nil, &LoadError{Path: path, Err: err}
		}
	} else if err := v.ReadInConfig(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	cfg.HiddenModIDs = normalizeIDs(cfg.HiddenModIDs)
	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return cfg, nil
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := DefaultConfig()
	v.SetDefault(KeyPageSize, defaults.PageSize)
	v.SetDefault(KeyColorScheme, defaults.ColorScheme)
	v.SetDefault(KeyHiddenModIDs, defaults.HiddenModIDs)
	v.SetDefault(KeyLabel, defaults.Label)
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyModsDir, defaults.ModsDir)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Validate checks value ranges that the file format cannot express.
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", KeyPageSize, c.PageSize)
	}
	if !slices.Contains(ColorSchemes, c.ColorScheme) {
		return fmt.Errorf("%s must be one of %s, got %q", KeyColorScheme, strings.Join(ColorSchemes, ", "), c.ColorScheme)
	}
	if strings.TrimSpace(c.Label) == "" {
		return fmt.Errorf("%s must not be empty", KeyLabel)
	}
	return nil
}

// normalizeIDs accepts ids from a YAML list or a comma separated env value.
func normalizeIDs(ids []string) []string {
	out := []string{}
	for _, id := range ids {
		for _, part := range strings.Split(id, ",") {
			if part = strings.TrimSpace(part); part != "" && !slices.Contains(out, part) {
				out = append(out, part)
			}
		}
	}
	return out
}
