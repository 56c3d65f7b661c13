// Package cli implements the chordwheel command-line interface.
//
// This package provides commands for computing chord layouts from word
// datasets, rendering them, inspecting them in the terminal, serving the
// pipeline over HTTP and managing the layout cache. The CLI is built using
// cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a layout.json from a word dataset
//   - visualize: Render a layout.json to SVG, PNG, PDF or scene JSON
//   - render: Layout and visualize in one step
//   - inspect: Browse nodes and ribbons in an interactive table
//   - convert: Convert a dataset between JSON, YAML, TOML and CSV
//   - serve: Run the HTTP render service
//   - cache: Manage the layout cache
//   - config: Show or initialize the config file
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
//
// # Configuration
//
// Settings are read from the TOML file found by [config.Find], or the file
// named with --config. Flags override file values.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chordwheel/pkg/buildinfo"
	"github.com/matzehuels/chordwheel/pkg/cache"
	"github.com/matzehuels/chordwheel/pkg/config"
	"github.com/matzehuels/chordwheel/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "chordwheel"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     config.Config
	configUsed string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
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
		Short:        "Chordwheel draws weighted words as a sentiment chord diagram",
		Long:         `Chordwheel is a CLI tool for visualizing weighted words as a radial chord diagram: one arc per node sized by its words, and one ribbon per node pair colored by shared sentiment.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: search "+config.LocalFile+", then the user config dir)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file once per invocation.
func (c *CLI) loadConfig() error {
	cfg, used, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	c.configUsed = used
	if used != "" {
		c.Logger.Debug("loaded config", "path", used)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, nil, c.Logger)
	runner.LayoutTTL = c.config.Cache.LayoutTTL.Std()
	runner.ArtifactTTL = c.config.Cache.ArtifactTTL.Std()
	return runner, nil
}

func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	opts, err := c.config.CacheOptions()
	if err != nil {
		return nil, err
	}
	store, err := cache.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open cache (%s): %w", opts, err)
	}
	c.Logger.Debug("opened cache", "backend", opts)
	return store, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// options fills unset flag values from the config file.
func (c *CLI) options(opts pipeline.Options) pipeline.Options {
	c.config.ApplyTo(&opts)
	opts.Logger = c.Logger
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil so the config or pipeline default applies.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// =============================================================================
// Output Helpers
// =============================================================================

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty or "-", it returns os.Stdout wrapped in nopCloser.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
