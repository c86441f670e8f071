// Package cli implements the plotgrid command-line interface.
//
// This package provides commands for solving chart layouts from TOML chart
// definitions, inspecting them interactively, and rendering the scale
// dependency graph. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - layout: Solve a chart definition and report the computed geometry
//   - inspect: Explore a chart interactively, re-solving on terminal resize
//   - scales: Render the scale dependency graph as DOT or SVG
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/plotgrid/plotgrid/pkg/buildinfo"
)

// appName is the application name used for display and completion scripts.
const appName = "plotgrid"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
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
		Short:        "Plotgrid computes chart coordinate systems and layouts",
		Long:         `Plotgrid is a CLI tool for the plotgrid chart layout engine: it solves axis bands, tick plans, and plot rectangles from declarative chart definitions.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.scalesCommand())
	root.AddCommand(c.completionCommand())

	return root
}
