// Package svg renders a chart's computed geometry as a standalone SVG: the
// plot frame, per-axis tick marks and labels, and optional grid lines. It
// draws only what the layout engine produced, so the output doubles as a
// visual check of axis reservation and tick planning.
package svg

import (
	"bytes"
	"fmt"

	"github.com/plotgrid/plotgrid/pkg/chart"
	"github.com/plotgrid/plotgrid/pkg/layout"
)

const (
	tickLen      = 6
	labelPad     = 4
	fontSize     = 11
	frameColor   = "#444444"
	gridColor    = "#dddddd"
	labelColor   = "#222222"
	canvasColor  = "#ffffff"
	titleSize    = 14
	titleBandPad = 6
)

// Option configures the renderer.
type Option func(*renderer)

// WithGrid extends tick marks into grid lines across the plot rectangle.
func WithGrid() Option { return func(r *renderer) { r.grid = true } }

// WithTitle draws a centered title above the plot.
func WithTitle(title string) Option { return func(r *renderer) { r.title = title } }

type renderer struct {
	grid  bool
	title string
}

// Render draws the chart into an SVG document.
func Render(c *chart.Chart, w, h float64, opts ...Option) []byte {
	var r renderer
	for _, opt := range opts {
		opt(&r)
	}

	plot := c.PlotRect()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n", w, h, canvasColor)

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-size="%d" text-anchor="middle" fill="%s">%s</text>`+"\n",
			plot.Left+plot.Width/2, float64(titleSize+titleBandPad), titleSize, labelColor, escape(r.title))
	}

	if r.grid {
		renderGrid(&buf, c, plot)
	}
	renderFrame(&buf, plot)
	renderAxes(&buf, c, plot)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderFrame(buf *bytes.Buffer, plot layout.Rect) {
	fmt.Fprintf(buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="%s"/>`+"\n",
		plot.Left, plot.Top, plot.Width, plot.Height, frameColor)
}

func renderGrid(buf *bytes.Buffer, c *chart.Chart, plot layout.Rect) {
	for _, a := range c.Axes() {
		if !a.Active {
			continue
		}
		for _, v := range a.Plan.Splits {
			pos, err := splitPosition(c, a, v, plot)
			if err != nil {
				continue
			}
			if a.Side.Vertical() {
				fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
					plot.Left, pos, plot.Left+plot.Width, pos, gridColor)
			} else {
				fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
					pos, plot.Top, pos, plot.Top+plot.Height, gridColor)
			}
		}
	}
}

func renderAxes(buf *bytes.Buffer, c *chart.Chart, plot layout.Rect) {
	for _, a := range c.Axes() {
		if !a.Active {
			continue
		}
		for i, v := range a.Plan.Splits {
			pos, err := splitPosition(c, a, v, plot)
			if err != nil {
				continue
			}
			label := ""
			if i < len(a.Plan.Labels) {
				label = a.Plan.Labels[i]
			}
			renderTick(buf, a, pos, label, plot)
		}
	}
}

// splitPosition maps one split value onto the plot rectangle along the
// axis's scale.
func splitPosition(c *chart.Chart, a *layout.Axis, v float64, plot layout.Rect) (float64, error) {
	if a.Side.Vertical() {
		return c.GetPosition(v, a.Scale, plot.Height, plot.Top)
	}
	return c.GetPosition(v, a.Scale, plot.Width, plot.Left)
}

func renderTick(buf *bytes.Buffer, a *layout.Axis, pos float64, label string, plot layout.Rect) {
	var x1, y1, x2, y2 float64
	var lx, ly float64
	var anchor string

	switch a.Side {
	case layout.SideTop:
		x1, y1, x2, y2 = pos, plot.Top, pos, plot.Top-tickLen
		lx, ly, anchor = pos, plot.Top-tickLen-labelPad, "middle"
	case layout.SideRight:
		x1, y1, x2, y2 = plot.Left+plot.Width, pos, plot.Left+plot.Width+tickLen, pos
		lx, ly, anchor = plot.Left+plot.Width+tickLen+labelPad, pos+fontSize/3, "start"
	case layout.SideBottom:
		x1, y1, x2, y2 = pos, plot.Top+plot.Height, pos, plot.Top+plot.Height+tickLen
		lx, ly, anchor = pos, plot.Top+plot.Height+tickLen+labelPad+fontSize, "middle"
	case layout.SideLeft:
		x1, y1, x2, y2 = plot.Left, pos, plot.Left-tickLen, pos
		lx, ly, anchor = plot.Left-tickLen-labelPad, pos+fontSize/3, "end"
	}

	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s"/>`+"\n",
		x1, y1, x2, y2, frameColor)
	if label != "" {
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-size="%d" text-anchor="%s" fill="%s">%s</text>`+"\n",
			lx, ly, fontSize, anchor, labelColor, escape(label))
	}
}

func escape(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
