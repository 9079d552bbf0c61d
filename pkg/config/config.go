// Package config loads cmlayout settings from a TOML file.
//
// The file has one table per concern. Every key is optional; anything left
// out keeps its built-in default, and command-line flags override the file.
//
//	[codec]
//	compact = true
//	optimize_wires = true
//	rounding = 1
//
//	[optimize]
//	iterations = 1000000
//	initial_temperature = 100.0
//	criterion = "metropolis"
//	kernel = "planar"
//	seed = 42
//
//	[cache]
//	disabled = false
//	dir = "/tmp/cmlayout"
//
// Unknown keys are rejected so that typos do not silently fall back to
// defaults.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cmlayout/pkg/anneal"
	"github.com/matzehuels/cmlayout/pkg/codec"
	"github.com/matzehuels/cmlayout/pkg/errors"
)

const appName = "cmlayout"

// Config is the full settings file.
type Config struct {
	Codec    codec.Options `toml:"codec"`
	Optimize anneal.Config `toml:"optimize"`
	Cache    Cache         `toml:"cache"`
}

// Cache configures the result cache.
type Cache struct {
	Disabled bool `toml:"disabled"`

	// Dir overrides the XDG cache directory.
	Dir string `toml:"dir"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Codec:    codec.DefaultOptions(),
		Optimize: anneal.DefaultConfig(),
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Codec.Validate(); err != nil {
		return err
	}
	return c.Optimize.Validate()
}

// Load reads the file at path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads [DefaultPath] when it exists and returns the defaults
// otherwise.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/cmlayout/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the cache directory: the configured override, else the
// XDG cache home (~/.cache/cmlayout/).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
