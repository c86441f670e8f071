package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/plotgrid/plotgrid/pkg/chart"
	"github.com/plotgrid/plotgrid/pkg/config"
	"github.com/plotgrid/plotgrid/pkg/layout"
)

var (
	inspectLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Width(10)
	inspectValueStyle = lipgloss.NewStyle().Foreground(colorWhite)
	inspectDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for interactive chart exploration.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <chart.toml>",
		Short: "Explore a chart interactively, re-solving on terminal resize",
		Long: `Explore a chart interactively.

The inspect command loads a TOML chart definition and re-solves the layout
every time the terminal is resized, treating the terminal cell grid as the
chart canvas. This makes convergence behavior and axis band sizing directly
observable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			cfg.Logger = loggerFromContext(cmd.Context())
			ch, err := chart.New(cfg)
			if err != nil {
				return err
			}

			p := tea.NewProgram(newInspectModel(args[0], ch), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
	return cmd
}

// inspectModel is the bubbletea model for interactive chart inspection.
type inspectModel struct {
	source string
	chart  *chart.Chart
	w, h   float64 // current chart canvas size in terminal cells
	err    error
}

func newInspectModel(source string, ch *chart.Chart) inspectModel {
	return inspectModel{source: source, chart: ch}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// Treat terminal cells as chart pixels, leaving room for the
		// status lines below the chart summary.
		w, h := float64(msg.Width), float64(msg.Height-8)
		if w < 20 {
			w = 20
		}
		if h < 10 {
			h = 10
		}
		m.w, m.h = w, h
		m.err = m.chart.Resize(w, h, 1)
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Inspect " + m.source))
	b.WriteString("\n")
	b.WriteString(inspectDimStyle.Render("resize the terminal to re-solve · q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(StyleWarning.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	res := m.chart.Layout()
	plot := m.chart.PlotRect()

	writeInspectRow(&b, "plot", fmt.Sprintf("%g,%g %gx%g", plot.Left, plot.Top, plot.Width, plot.Height))
	writeInspectRow(&b, "padding", fmt.Sprintf("t%g r%g b%g l%g",
		res.Padding[0], res.Padding[1], res.Padding[2], res.Padding[3]))

	state := fmt.Sprintf("converged in %d cycles", res.Cycles)
	if !res.Converged {
		state = fmt.Sprintf("not converged after %d cycles", res.Cycles)
	}
	writeInspectRow(&b, "solver", state)
	b.WriteString("\n")

	for _, a := range m.chart.Axes() {
		if !a.Active {
			writeInspectRow(&b, a.Side.String(), fmt.Sprintf("%q hidden", a.Scale))
			continue
		}
		writeInspectRow(&b, a.Side.String(), fmt.Sprintf("%q band %g · %d ticks · incr %g",
			a.Scale, a.FullSize, len(a.Plan.Splits), a.Plan.Incr))
	}

	if m.w > 0 {
		b.WriteString("\n")
		b.WriteString(inspectDimStyle.Render(m.boxView()))
	}

	return b.String()
}

// boxView draws the solved plot rectangle on the terminal cell grid, with
// tick marks from the planned splits on the border.
func (m inspectModel) boxView() string {
	w, h := int(m.w), int(m.h)
	plot := m.chart.PlotRect()
	left, top := int(plot.Left), int(plot.Top)
	right, bottom := int(plot.Left+plot.Width)-1, int(plot.Top+plot.Height)-1
	if right <= left || bottom <= top || right >= w || bottom >= h {
		return ""
	}

	grid := make([][]rune, h)
	for y := range grid {
		grid[y] = make([]rune, w)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}
	for x := left; x <= right; x++ {
		grid[top][x], grid[bottom][x] = '─', '─'
	}
	for y := top; y <= bottom; y++ {
		grid[y][left], grid[y][right] = '│', '│'
	}
	grid[top][left], grid[top][right] = '┌', '┐'
	grid[bottom][left], grid[bottom][right] = '└', '┘'

	for _, a := range m.chart.Axes() {
		if !a.Active {
			continue
		}
		for _, v := range a.Plan.Splits {
			pos, err := m.splitCell(a, v, plot)
			if err != nil {
				continue
			}
			switch a.Side {
			case layout.SideTop:
				m.mark(grid, top, pos, '┬', w, h)
			case layout.SideRight:
				m.mark(grid, pos, right, '├', w, h)
			case layout.SideBottom:
				m.mark(grid, bottom, pos, '┴', w, h)
			case layout.SideLeft:
				m.mark(grid, pos, left, '┤', w, h)
			}
		}
	}

	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteString("\n")
		}
		b.WriteString(strings.TrimRight(string(row), " "))
	}
	return b.String()
}

func (m inspectModel) splitCell(a *layout.Axis, v float64, plot layout.Rect) (int, error) {
	if a.Side.Vertical() {
		pos, err := m.chart.GetPosition(v, a.Scale, plot.Height, plot.Top)
		return int(pos), err
	}
	pos, err := m.chart.GetPosition(v, a.Scale, plot.Width, plot.Left)
	return int(pos), err
}

func (m inspectModel) mark(grid [][]rune, y, x int, r rune, w, h int) {
	if y >= 0 && y < h && x >= 0 && x < w {
		grid[y][x] = r
	}
}

func writeInspectRow(b *strings.Builder, label, value string) {
	b.WriteString(inspectLabelStyle.Render(label))
	b.WriteString(" ")
	b.WriteString(inspectValueStyle.Render(value))
	b.WriteString("\n")
}
