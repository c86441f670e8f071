// Package config loads chart definitions from TOML files and maps them onto
// [chart.Config] values.
package config

import (
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/plotgrid/plotgrid/pkg/chart"
	"github.com/plotgrid/plotgrid/pkg/errors"
	"github.com/plotgrid/plotgrid/pkg/layout"
	"github.com/plotgrid/plotgrid/pkg/scale"
	"github.com/plotgrid/plotgrid/pkg/tick"
)

// File is the on-disk chart definition.
type File struct {
	Width      float64 `toml:"width"`
	Height     float64 `toml:"height"`
	PixelRatio float64 `toml:"pixel_ratio"`

	Scales map[string]ScaleEntry `toml:"scales"`
	Axes   []AxisEntry           `toml:"axes"`
}

// ScaleEntry is one [scales.<key>] table.
type ScaleEntry struct {
	// Distr is the distribution code: 1 linear, 2 ordinal, 3 log,
	// 4 asinh, 100 and above custom. Zero defaults to linear.
	Distr int `toml:"distr"`

	// Time marks a linear scale that carries unix-millisecond values and
	// plans calendar-aware ticks.
	Time bool `toml:"time"`

	Parent     string `toml:"parent"`
	Horizontal bool   `toml:"horizontal"`
	Dir        int    `toml:"dir"`

	// Min and Max pin the range. Both absent leaves the scale auto-ranged
	// and unresolved until a commit supplies data bounds.
	Min *float64 `toml:"min"`
	Max *float64 `toml:"max"`

	// Snap rounds committed ranges outward to tick boundaries.
	Snap bool `toml:"snap"`

	LinThresh float64 `toml:"lin_thresh"`
}

// AxisEntry is one [[axes]] table.
type AxisEntry struct {
	Side       string    `toml:"side"`
	Scale      string    `toml:"scale"`
	Hide       bool      `toml:"hide"`
	Size       float64   `toml:"size"`
	LabelSize  float64   `toml:"label_size"`
	Increments []float64 `toml:"increments"`
	MinSpacing float64   `toml:"min_spacing"`

	// Format selects the label formatter: "number", "si", or empty for
	// the per-distribution default. Unit suffixes SI labels.
	Format string `toml:"format"`
	Unit   string `toml:"unit"`
}

// Load reads and parses a chart definition file.
func Load(path string) (chart.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return chart.Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "read chart definition %s", path)
	}
	return Parse(data)
}

// Parse maps TOML bytes onto a chart configuration.
func Parse(data []byte) (chart.Config, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return chart.Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "parse chart definition")
	}
	return f.ChartConfig()
}

// ChartConfig converts the parsed file into a chart configuration.
// Scales are emitted in key order so construction is deterministic.
func (f File) ChartConfig() (chart.Config, error) {
	cfg := chart.Config{
		Width:      f.Width,
		Height:     f.Height,
		PixelRatio: f.PixelRatio,
	}

	keys := make([]string, 0, len(f.Scales))
	for k := range f.Scales {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		def, err := f.Scales[k].scaleDef(k)
		if err != nil {
			return chart.Config{}, err
		}
		cfg.Scales = append(cfg.Scales, chart.ScaleDef{Key: k, Def: def})
	}

	for i, a := range f.Axes {
		ad, err := a.axisDef(i)
		if err != nil {
			return chart.Config{}, err
		}
		cfg.Axes = append(cfg.Axes, ad)
	}
	return cfg, nil
}

func (e ScaleEntry) scaleDef(key string) (scale.Def, error) {
	def := scale.Def{
		Parent:     e.Parent,
		Horizontal: e.Horizontal,
		Dir:        e.Dir,
		LinThresh:  e.LinThresh,
	}

	switch {
	case e.Time:
		if e.Distr != 0 && e.Distr != int(scale.Linear) {
			return scale.Def{}, errors.New(errors.ErrCodeInvalidConfiguration,
				"scale %q: time applies to linear scales only, got distr %d", key, e.Distr)
		}
		def.Distribution = scale.Time
	case e.Distr != 0:
		d, err := scale.ParseDistribution(e.Distr)
		if err != nil {
			return scale.Def{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "scale %q", key)
		}
		if d == scale.Custom {
			return scale.Def{}, errors.New(errors.ErrCodeInvalidConfiguration,
				"scale %q: custom distributions need transform functions and cannot be declared in TOML", key)
		}
		def.Distribution = d
	}

	switch {
	case e.Min != nil && e.Max != nil:
		def.Range = scale.FixedRange{Min: *e.Min, Max: *e.Max}
	case e.Min != nil || e.Max != nil:
		return scale.Def{}, errors.New(errors.ErrCodeInvalidConfiguration,
			"scale %q: min and max must be set together", key)
	case e.Snap:
		def.Range = scale.SnapRange{Fn: tick.NiceBounds}
	}
	if e.Snap && def.Range != nil {
		if _, fixed := def.Range.(scale.FixedRange); fixed {
			return scale.Def{}, errors.New(errors.ErrCodeInvalidConfiguration,
				"scale %q: snap conflicts with a fixed range", key)
		}
	}
	return def, nil
}

func (e AxisEntry) axisDef(idx int) (chart.AxisDef, error) {
	side, err := ParseSide(e.Side)
	if err != nil {
		return chart.AxisDef{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "axis %d", idx)
	}
	if e.Scale == "" {
		return chart.AxisDef{}, errors.New(errors.ErrCodeInvalidConfiguration, "axis %d: scale is required", idx)
	}

	var format tick.Formatter
	switch strings.ToLower(e.Format) {
	case "":
	case "number":
		format = tick.Number()
	case "si":
		format = tick.SI(e.Unit)
	default:
		return chart.AxisDef{}, errors.New(errors.ErrCodeInvalidConfiguration,
			"axis %d: unknown format %q", idx, e.Format)
	}

	return chart.AxisDef{
		Side:       side,
		Scale:      e.Scale,
		Hide:       e.Hide,
		Size:       e.Size,
		LabelSize:  e.LabelSize,
		Increments: e.Increments,
		MinSpacing: e.MinSpacing,
		Format:     format,
	}, nil
}

// ParseSide maps a side name to its layout constant.
func ParseSide(name string) (layout.Side, error) {
	switch strings.ToLower(name) {
	case "top":
		return layout.SideTop, nil
	case "right":
		return layout.SideRight, nil
	case "bottom":
		return layout.SideBottom, nil
	case "left":
		return layout.SideLeft, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidConfiguration, "unknown side %q", name)
}
