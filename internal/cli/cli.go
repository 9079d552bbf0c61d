// Package cli implements the cmlayout command-line interface.
//
// The commands read and write Circuit Maker 2 save files:
//   - stats: summarize one or more saves and check wire consistency
//   - optimize: anneal component placement to shorten wires
//   - export: render a save as DOT, SVG or node-link JSON
//   - fmt: rewrite a save with different codec options
//   - cache: manage the optimizer result cache
//
// Settings come from a TOML file (see package config); command flags
// override it.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cmlayout/pkg/buildinfo"
	"github.com/matzehuels/cmlayout/pkg/cache"
	"github.com/matzehuels/cmlayout/pkg/config"
	"github.com/matzehuels/cmlayout/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "cmlayout"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output. Status lines and logs go to stderr.
	Out io.Writer

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "cmlayout analyzes and optimizes Circuit Maker 2 builds",
		Long:         `cmlayout reads Circuit Maker 2 save strings, reports on their wiring, and rearranges component placement with simulated annealing to shorten wires.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/cmlayout/config.toml)")

	root.AddCommand(c.statsCommand())
	root.AddCommand(c.optimizeCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.fmtCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the --config file, or the default file when present.
func (c *CLI) loadConfig() error {
	var err error
	if c.configPath != "" {
		c.cfg, err = config.Load(c.configPath)
	} else {
		c.cfg, err = config.LoadDefault()
	}
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded config", "path", c.configPath, "cache_disabled", c.cfg.Cache.Disabled)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(noCache || c.cfg.Cache.Disabled)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the configured cache directory, else the XDG default
// (~/.cache/cmlayout/).
func (c *CLI) cacheDir() (string, error) {
	return c.cfg.CacheDir()
}

// options builds pipeline options from the loaded config.
func (c *CLI) options() pipeline.Options {
	return pipeline.Options{
		Codec:    c.cfg.Codec,
		Optimize: c.cfg.Optimize,
		Logger:   c.Logger,
	}
}
