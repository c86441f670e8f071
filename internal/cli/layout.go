package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plotgrid/plotgrid/pkg/chart"
	"github.com/plotgrid/plotgrid/pkg/config"
	"github.com/plotgrid/plotgrid/pkg/render/svg"
)

// layoutCommand creates the layout command for solving chart definitions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		width  float64
		height float64
		svgOut string
		grid   bool
		title  string
	)

	cmd := &cobra.Command{
		Use:   "layout <chart.toml>",
		Short: "Solve a chart definition and report the computed geometry",
		Long: `Solve a chart definition and report the computed geometry.

The layout command loads a TOML chart definition, runs the axis sizing
convergence loop, and prints the resulting plot rectangle, axis bands, and
tick plans. With --svg the solved chart is also drawn to a standalone SVG
file for visual inspection.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], width, height, svgOut, grid, title)
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "override chart width")
	cmd.Flags().Float64Var(&height, "height", 0, "override chart height")
	cmd.Flags().StringVarP(&svgOut, "svg", "o", "", "write the solved chart to an SVG file")
	cmd.Flags().BoolVar(&grid, "grid", false, "draw grid lines in the SVG output")
	cmd.Flags().StringVar(&title, "title", "", "chart title in the SVG output")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input string, width, height float64, svgOut string, grid bool, title string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cfg, err := config.Load(input)
	if err != nil {
		return err
	}
	if width > 0 {
		cfg.Width = width
	}
	if height > 0 {
		cfg.Height = height
	}
	cfg.Logger = logger

	ch, err := chart.New(cfg)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Solved %s", input))

	printLayoutSummary(ch, cfg)

	if svgOut != "" {
		var opts []svg.Option
		if grid {
			opts = append(opts, svg.WithGrid())
		}
		if title != "" {
			opts = append(opts, svg.WithTitle(title))
		}
		out := svg.Render(ch, cfg.Width, cfg.Height, opts...)
		if err := os.WriteFile(svgOut, out, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", svgOut, err)
		}
		printFile(svgOut)
	}
	return nil
}

func printLayoutSummary(ch *chart.Chart, cfg chart.Config) {
	res := ch.Layout()
	plot := ch.PlotRect()

	fmt.Println(StyleTitle.Render("Chart Layout"))
	printKeyValue("canvas", fmt.Sprintf("%gx%g @%gx", cfg.Width, cfg.Height, cfg.PixelRatio))
	printKeyValue("plot", fmt.Sprintf("%g,%g %gx%g", plot.Left, plot.Top, plot.Width, plot.Height))
	printKeyValue("padding", fmt.Sprintf("t%g r%g b%g l%g",
		res.Padding[0], res.Padding[1], res.Padding[2], res.Padding[3]))

	if res.Converged {
		printSuccess("converged in %d cycles", res.Cycles)
	} else {
		printWarning("did not converge after %d cycles, using last geometry", res.Cycles)
	}

	for _, a := range ch.Axes() {
		if !a.Active {
			printDetail("%s axis on %q: hidden", a.Side, a.Scale)
			continue
		}
		printInfo("%s axis on %q: band %g, %d ticks, increment %g",
			a.Side, a.Scale, a.FullSize, len(a.Plan.Splits), a.Plan.Incr)
	}
}
