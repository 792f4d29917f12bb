// ABOUTME: Centralized path resolution for modscmd directories
// ABOUTME: Respects MODSCMD_HOME and MODSCMD_MODS_DIR environment variables for isolation

package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// HomeEnv overrides the modscmd home directory.
	HomeEnv = "MODSCMD_HOME"
	// ModsDirEnv names the mods directory when neither flag nor config does.
	ModsDirEnv = "MODSCMD_MODS_DIR"
	// DefaultModsDir is used when nothing else configures the mods directory.
	DefaultModsDir = "mods"
)

// MustHome returns the modscmd home directory.
// Checks MODSCMD_HOME env var first, falls back to ~/.modscmd.
// Panics if MODSCMD_HOME is set but invalid (whitespace-only or relative path).
// Panics if home directory cannot be determined.
func MustHome() string {
	if home := os.Getenv(HomeEnv); home != "" {
		home = strings.TrimSpace(home)
		if home == "" {
			panic(HomeEnv + " is set but contains only whitespace")
		}
		if !filepath.IsAbs(home) {
			panic(HomeEnv + " must be an absolute path: " + home)
		}
		return home
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic("cannot determine home directory: " + err.Error())
	}
	return filepath.Join(homeDir, ".modscmd")
}

// DefaultConfigPath returns $MODSCMD_HOME/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(MustHome(), "config.yaml")
}

// ResolveModsDir picks the mods directory: the flag value, then
// MODSCMD_MODS_DIR, then the config value, then ./mods. It also reports
// which one won. The environment variable is also the viper override for
// mods_dir, so it is checked before the config value.
func ResolveModsDir(flagValue string, cfg *Config) (dir, source string) {
	if flagValue != "" {
		return flagValue, "--mods-dir"
	}
	if env := strings.TrimSpace(os.Getenv(ModsDirEnv)); env != "" {
		return env, ModsDirEnv
	}
	if cfg != nil && cfg.ModsDir != "" {
		return cfg.ModsDir, "config (" + KeyModsDir + ")"
	}
	return DefaultModsDir, "default (./" + DefaultModsDir + ")"
}
