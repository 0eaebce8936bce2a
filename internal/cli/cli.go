// Package cli implements the gridlock command-line interface.
//
// This package provides commands for running placement operations on board
// files, previewing boards interactively, rendering them to PNG, managing
// the board store, and serving the placement API over HTTP. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - optimize: Compact a board's widgets toward the top
//   - resolve: Reflow a board around a dragged widget
//   - place: Find (and optionally add) the best position for a new widget
//   - board: Save, load, list and delete boards in the configured store
//   - render: Rasterize a board to PNG
//   - preview: Interactive terminal preview with live drag resolution
//   - serve: Expose the placement operations over HTTP
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tessella/gridlock/pkg/board"
	"github.com/tessella/gridlock/pkg/buildinfo"
	"github.com/tessella/gridlock/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "gridlock"

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

	verbose    bool
	configPath string
	config     *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Gridlock places dashboard widgets on a grid",
		Long:         `Gridlock is the placement engine behind grid dashboards: it keeps rectangular widgets non-overlapping, compacts them toward the top, and resolves the conflicts that arise while a widget is dragged.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/gridlock/config.toml)")

	// Register all subcommands
	root.AddCommand(c.optimizeCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.placeCommand())
	root.AddCommand(c.boardCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Store Access
// =============================================================================

// loadConfig loads and caches the TOML config for the current invocation.
func (c *CLI) loadConfig() (*Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	cfg, err := LoadConfig(c.configPath)
	if err != nil {
		return nil, err
	}
	c.config = cfg
	return cfg, nil
}

// openStore opens the configured board store, honoring a --store override.
func (c *CLI) openStore(ctx context.Context, backendOverride string) (store.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	backend := cfg.Store.Backend
	if backendOverride != "" {
		backend = backendOverride
	}

	dsn, err := cfg.StoreDSN(backend)
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, backend, dsn)
}

// =============================================================================
// Board I/O Helpers
// =============================================================================

// writeResult writes a board to the output path, or to stdout when path is
// empty or "-".
func writeResult(b *board.Board, path string) error {
	if path == "" || path == "-" {
		return board.WriteBoard(b, os.Stdout)
	}
	if err := board.WriteBoardFile(b, path); err != nil {
		return err
	}
	printFile(path)
	return nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/gridlock/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// dataDir returns the data directory using XDG standard
// (~/.local/share/gridlock/), where the file store keeps boards.
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
