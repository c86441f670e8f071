// Package chart assembles the scale registry, coordinate mapper, tick
// planner, and layout solver into one chart instance.
//
// A Chart owns its scales and axes exclusively. All external range writes go
// through [Chart.SetScale] followed by [Chart.Commit], which applies queued
// changes in a single pass, re-runs the convergence loop, and reports which
// scales changed so consumers can invalidate cached geometry. The engine is
// single-threaded by design; a concurrent host must serialize whole
// resize/data/scale-change cycles around the chart, not individual fields.
package chart

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/plotgrid/plotgrid/pkg/coord"
	"github.com/plotgrid/plotgrid/pkg/errors"
	"github.com/plotgrid/plotgrid/pkg/layout"
	"github.com/plotgrid/plotgrid/pkg/scale"
	"github.com/plotgrid/plotgrid/pkg/tick"
)

// ScaleDef names one scale definition in chart construction order.
// Definition order is preserved so parent resolution and commit cascades are
// deterministic.
type ScaleDef struct {
	Key string
	Def scale.Def
}

// AxisDef configures one axis band.
type AxisDef struct {
	Side       layout.Side
	Scale      string
	Hide       bool    // axes default to shown
	Size       float64 // base band size in px
	LabelSize  float64 // extra band for an axis label
	Increments []float64
	MinSpacing float64
	Format     tick.Formatter
}

// Config describes a chart. Width and Height are logical (CSS) pixels;
// PixelRatio scales the derived device-pixel rectangle.
type Config struct {
	Width, Height float64
	PixelRatio    float64 // zero defaults to 1

	Scales []ScaleDef
	Axes   []AxisDef

	// Pad supplies optional per-side padding policies, evaluated each
	// convergence cycle against the axis-visibility vector.
	Pad [4]layout.PadFunc

	// MeasureLabel is the host's font-metrics callback, used to size axis
	// bands from their tick labels. Nil falls back to each axis's
	// configured Size. The engine never measures text itself.
	MeasureLabel layout.SizeFunc

	// Logger, when set, reports commits and convergence at debug level.
	Logger *log.Logger
}

// Chart is a live chart instance.
type Chart struct {
	id     uuid.UUID
	reg    *scale.Registry
	axes   []*layout.Axis
	solver *layout.Solver
	logger *log.Logger

	sizeFn  layout.SizeFunc
	w, h    float64
	pxRatio float64

	// plot and device are fully overwritten by every solve; they are never
	// accumulated across passes.
	plot   layout.Rect
	device layout.Rect
	last   layout.Result
}

// New builds a chart from cfg. Configuration errors (self-referential scale
// parents, missing custom transforms, axes bound to unknown scales) are
// fatal: they return an INVALID_CONFIGURATION error and no chart.
func New(cfg Config) (*Chart, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "chart dimensions must be positive, got %vx%v", cfg.Width, cfg.Height)
	}
	if cfg.PixelRatio == 0 {
		cfg.PixelRatio = 1
	}

	reg := scale.New()
	for _, sd := range cfg.Scales {
		if err := reg.Define(sd.Key, sd.Def); err != nil {
			return nil, err
		}
	}
	if err := reg.Build(); err != nil {
		return nil, err
	}

	axes := make([]*layout.Axis, len(cfg.Axes))
	for i, ad := range cfg.Axes {
		if _, ok := reg.Get(ad.Scale); !ok {
			return nil, errors.New(errors.ErrCodeInvalidConfiguration, "axis %d references unknown scale %q", i, ad.Scale)
		}
		if ad.Side < layout.SideTop || ad.Side > layout.SideLeft {
			return nil, errors.New(errors.ErrCodeInvalidConfiguration, "axis %d has invalid side %d", i, ad.Side)
		}
		axes[i] = &layout.Axis{
			Side:       ad.Side,
			Scale:      ad.Scale,
			Show:       !ad.Hide,
			Size:       ad.Size,
			LabelSize:  ad.LabelSize,
			Increments: ad.Increments,
			MinSpacing: ad.MinSpacing,
			Format:     ad.Format,
		}
	}

	c := &Chart{
		id:      uuid.New(),
		reg:     reg,
		axes:    axes,
		logger:  cfg.Logger,
		sizeFn:  cfg.MeasureLabel,
		w:       cfg.Width,
		h:       cfg.Height,
		pxRatio: cfg.PixelRatio,
	}
	c.solver = &layout.Solver{
		Registry: reg,
		Axes:     axes,
		Pad:      cfg.Pad,
		Logger:   cfg.Logger,
	}
	c.solve()
	return c, nil
}

// ID returns the chart instance identifier used in logs and diagnostics.
func (c *Chart) ID() string { return c.id.String() }

// GetPosition maps value on the named scale to a pixel coordinate within a
// band of dimPx pixels starting at offPx. It is a pure function of the
// scale's committed range.
func (c *Chart) GetPosition(value float64, scaleKey string, dimPx, offPx float64) (float64, error) {
	s, ok := c.reg.Get(scaleKey)
	if !ok {
		return 0, errors.New(errors.ErrCodeUnknownScale, "scale %q is not defined", scaleKey)
	}
	return coord.Position(s, value, dimPx, offPx)
}

// GetValue recovers the data value at a pixel coordinate inside the plot
// rectangle. canvasSpace selects the device-pixel rectangle as the basis
// instead of the logical-pixel one.
func (c *Chart) GetValue(posPx float64, scaleKey string, canvasSpace bool) (float64, error) {
	s, ok := c.reg.Get(scaleKey)
	if !ok {
		return 0, errors.New(errors.ErrCodeUnknownScale, "scale %q is not defined", scaleKey)
	}
	rect := c.plot
	if canvasSpace {
		rect = c.device
	}
	dim, off := rect.Width, rect.Left
	if !s.Horizontal {
		dim, off = rect.Height, rect.Top
	}
	return coord.Value(s, posPx, dim, off)
}

// SetScale queues a range change for the named scale. Nothing is applied
// until Commit.
func (c *Chart) SetScale(key string, min, max float64) error {
	return c.reg.SetRange(key, min, max)
}

// ClearScale queues an un-resolve for the named scale; after Commit any axis
// bound to it hides.
func (c *Chart) ClearScale(key string) error {
	return c.reg.ClearRange(key)
}

// Commit applies all queued scale changes in one pass, re-runs the
// convergence loop, and returns the changed scale keys so consumers know
// which cached geometry to invalidate.
func (c *Chart) Commit() ([]string, error) {
	changed, err := c.reg.Commit()
	if err != nil {
		return nil, err
	}
	if len(changed) > 0 {
		c.solve()
	}
	if c.logger != nil {
		c.logger.Debug("commit", "chart", c.ID(), "changed", changed, "converged", c.last.Converged)
	}
	return changed, nil
}

// Resize sets new logical chart dimensions and pixel-density ratio, then
// recomputes the full geometry.
func (c *Chart) Resize(w, h, pxRatio float64) error {
	if w <= 0 || h <= 0 {
		return errors.New(errors.ErrCodeDegenerateDimension, "chart dimensions must be positive, got %vx%v", w, h)
	}
	if pxRatio <= 0 {
		pxRatio = 1
	}
	c.w, c.h, c.pxRatio = w, h, pxRatio
	c.solve()
	return nil
}

// PlotRect returns the current plot rectangle in logical pixels.
func (c *Chart) PlotRect() layout.Rect { return c.plot }

// DeviceRect returns the plot rectangle in device pixels.
func (c *Chart) DeviceRect() layout.Rect { return c.device }

// Axes returns the chart's axes. Computed fields on them are overwritten by
// every commit and resize.
func (c *Chart) Axes() []*layout.Axis { return c.axes }

// Registry exposes the chart's scale registry for read-mostly collaborators
// such as DOT rendering.
func (c *Chart) Registry() *scale.Registry { return c.reg }

// Layout returns the outcome of the most recent convergence run.
func (c *Chart) Layout() layout.Result { return c.last }

func (c *Chart) solve() {
	c.last = c.solver.Converge(c.w, c.h, c.sizeFn)
	c.plot = c.last.Plot
	c.device = c.plot.Scaled(c.pxRatio)
}
