package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plotgrid/plotgrid/pkg/chart"
	"github.com/plotgrid/plotgrid/pkg/config"
	"github.com/plotgrid/plotgrid/pkg/render/scaledot"
)

// scalesCommand creates the scales command for rendering the scale graph.
func (c *CLI) scalesCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "scales <chart.toml>",
		Short: "Render the scale dependency graph",
		Long: `Render the scale dependency graph.

Every derived scale points at the scale it inherits its range from, which is
the path commit cascades travel. The graph is emitted as Graphviz DOT by
default; --format svg renders it with the embedded Graphviz engine.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScales(cmd.Context(), args[0], output, format, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot, svg")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include orientation and ranges in node labels")

	return cmd
}

func (c *CLI) runScales(ctx context.Context, input, output, format string, detailed bool) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(input)
	if err != nil {
		return err
	}
	ch, err := chart.New(cfg)
	if err != nil {
		return err
	}

	dot := scaledot.ToDOT(ch.Registry(), scaledot.Options{Detailed: detailed})
	logger.Debug("scale graph built", "scales", len(ch.Registry().Keys()), "format", format)

	var out []byte
	switch format {
	case "dot":
		out = []byte(dot)
	case "svg":
		out, err = scaledot.RenderSVG(dot)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q (want dot or svg)", format)
	}

	if output == "" {
		fmt.Print(string(out))
		return nil
	}
	if err := os.WriteFile(output, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	printFile(output)
	return nil
}
