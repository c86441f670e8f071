package layout

import (
	"github.com/charmbracelet/log"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/plotgrid/plotgrid/pkg/scale"
	"github.com/plotgrid/plotgrid/pkg/tick"
)

// CycleLimit bounds the convergence loop. Three cycles stabilize every
// well-behaved configuration: one to measure, one to apply, one to confirm.
// Adversarial padding or size functions that keep oscillating are cut off
// here and the last computed geometry is used as-is — degraded output, not
// failure.
const CycleLimit = 3

// padTolerance is the per-side slack when comparing padding across cycles.
// Padding comes from user-supplied policies, so exact float equality would
// mistake representation noise for real movement.
const padTolerance = 1e-9

// SizeFunc computes an axis's content size in pixels from its planned tick
// labels. This is where the host's label-measurement callback (font metrics)
// plugs in; the engine never measures text itself. A nil SizeFunc falls back
// to each axis's configured Size.
type SizeFunc func(a *Axis, labels []string) float64

// Solver computes chart geometry for one set of axes against one scale
// registry. It holds no per-invocation state: everything a convergence run
// mutates lives on the axes (by design, they are the shared output) or in
// the returned Result.
type Solver struct {
	Registry *scale.Registry
	Axes     []*Axis

	// Pad supplies one optional padding policy per side.
	Pad [4]PadFunc

	// Logger, when set, reports per-cycle geometry at debug level.
	Logger *log.Logger
}

// Result is the outcome of one convergence run.
type Result struct {
	Plot      Rect
	Padding   Padding
	Converged bool // false when CycleLimit passed without stabilizing
	Cycles    int  // sizing passes actually executed
}

// CalcPlotRect computes the plot rectangle: the full chart dimensions minus
// every active axis band, minus padding.
//
// Axis reservation happens strictly before padding reservation, so padding
// is measured against the axis-reduced rectangle, not the full canvas.
// Width and height only ever decrease within a pass.
func (s *Solver) CalcPlotRect(w, h float64, pad Padding) Rect {
	plot := Rect{Width: w, Height: h}
	for _, a := range s.Axes {
		if !a.Active {
			continue
		}
		switch a.Side {
		case SideTop:
			plot.Top += a.FullSize
			plot.Height -= a.FullSize
		case SideRight:
			plot.Width -= a.FullSize
		case SideBottom:
			plot.Height -= a.FullSize
		case SideLeft:
			plot.Left += a.FullSize
			plot.Width -= a.FullSize
		}
	}
	plot.Left += pad[SideLeft]
	plot.Top += pad[SideTop]
	plot.Width -= pad[SideLeft] + pad[SideRight]
	plot.Height -= pad[SideTop] + pad[SideBottom]
	return plot
}

// CalcAxesRects assigns each active axis its signed offset along the
// perpendicular dimension. Four independent accumulators increment outward
// from the plot rectangle edges, so axes stacked on the same side never
// overlap.
func CalcAxesRects(axes []*Axis, plot Rect) {
	var used [4]float64
	for _, a := range axes {
		if !a.Active {
			a.Offset = 0
			continue
		}
		switch a.Side {
		case SideTop:
			a.Offset = plot.Top - used[SideTop] - a.FullSize
		case SideRight:
			a.Offset = plot.Left + plot.Width + used[SideRight]
		case SideBottom:
			a.Offset = plot.Top + plot.Height + used[SideBottom]
		case SideLeft:
			a.Offset = plot.Left - used[SideLeft] - a.FullSize
		}
		used[a.Side] += a.FullSize
	}
}

// Converge runs the fixed-point sizing loop, bounded at CycleLimit cycles.
//
// Each cycle: resolve axis visibility from scale ranges, recompute padding
// from the visibility vector, recompute the plot and axis rectangles,
// re-plan every active axis's ticks against the new plot dimension, and
// resize the axes from their labels. The loop exits early once a full cycle
// leaves sizes, padding, and visibility untouched.
//
// All cycle-to-cycle comparison state is local to this call; nothing global
// tracks the iteration.
func (s *Solver) Converge(w, h float64, sizeFn SizeFunc) Result {
	if sizeFn == nil {
		sizeFn = func(a *Axis, _ []string) float64 { return a.Size }
	}

	var (
		res        Result
		prevSizes  = make([]float64, len(s.Axes))
		prevActive = make([]bool, len(s.Axes))
		prevPad    Padding
	)

	for cycle := 1; cycle <= CycleLimit; cycle++ {
		res.Cycles = cycle

		for _, a := range s.Axes {
			sc, ok := s.Registry.Get(a.Scale)
			a.Active = a.Show && ok && sc.Resolved()
		}
		vis := s.visibleSides()

		var pad Padding
		for side := range s.Pad {
			if s.Pad[side] != nil {
				pad[side] = s.Pad[side](vis)
			}
		}

		plot := s.CalcPlotRect(w, h, pad)
		CalcAxesRects(s.Axes, plot)

		sizes := make([]float64, len(s.Axes))
		active := make([]bool, len(s.Axes))
		for i, a := range s.Axes {
			active[i] = a.Active
			if !a.Active {
				a.Plan = tick.Plan{}
				a.FullSize = 0
				continue
			}
			sc, _ := s.Registry.Get(a.Scale)
			min, max, err := sc.Bounds()
			if err != nil {
				// Range vanished mid-cycle; treat as hidden this pass.
				a.Active = false
				active[i] = false
				continue
			}
			dim := plot.Width
			if a.Side.Vertical() {
				dim = plot.Height
			}
			a.Plan = tick.PlanAxis(sc, min, max, dim, tick.Options{
				Increments: a.Increments,
				MinSpacing: a.MinSpacing,
				Format:     a.Format,
			})
			a.FullSize = sizeFn(a, a.Plan.Labels) + a.LabelSize
			sizes[i] = a.FullSize
		}

		res.Plot = plot
		res.Padding = pad

		if s.Logger != nil {
			s.Logger.Debug("convergence cycle",
				"cycle", cycle,
				"plot", plot,
				"padding", pad,
			)
		}

		if cycle > 1 && stable(sizes, prevSizes, active, prevActive, pad, prevPad) {
			res.Converged = true
			return res
		}
		copy(prevSizes, sizes)
		copy(prevActive, active)
		prevPad = pad
	}
	return res
}

// visibleSides reports which sides currently carry at least one active axis.
func (s *Solver) visibleSides() [4]bool {
	var vis [4]bool
	for _, a := range s.Axes {
		if a.Active {
			vis[a.Side] = true
		}
	}
	return vis
}

// stable reports whether a full cycle left axis sizes, visibility, and
// padding unchanged. Sizes compare exactly (they are produced by the same
// pure computation each cycle); padding compares within padTolerance.
func stable(sizes, prevSizes []float64, active, prevActive []bool, pad, prevPad Padding) bool {
	for i := range sizes {
		if sizes[i] != prevSizes[i] || active[i] != prevActive[i] {
			return false
		}
	}
	for side := range pad {
		if !scalar.EqualWithinAbs(pad[side], prevPad[side], padTolerance) {
			return false
		}
	}
	return true
}
