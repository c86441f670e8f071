package chart

import (
	"math"
	"testing"

	"github.com/plotgrid/plotgrid/pkg/errors"
	"github.com/plotgrid/plotgrid/pkg/layout"
	"github.com/plotgrid/plotgrid/pkg/scale"
)

func TestGetPosition_LinearX(t *testing.T) {
	c, err := New(Config{
		Width: 800, Height: 600,
		Scales: []ScaleDef{
			{Key: "x", Def: scale.Def{Horizontal: true, Range: scale.FixedRange{Min: 0, Max: 10}}},
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	got, err := c.GetPosition(5, "x", 400, 0)
	if err != nil {
		t.Fatalf("GetPosition() error: %v", err)
	}
	if got != 200 {
		t.Errorf("GetPosition(5) = %v, want 200", got)
	}
}

func TestGetPosition_LogY(t *testing.T) {
	c, err := New(Config{
		Width: 800, Height: 600,
		Scales: []ScaleDef{
			// Value-ascending vertical scale: positions grow with values.
			{Key: "y", Def: scale.Def{Distribution: scale.Log, Dir: -1, Range: scale.FixedRange{Min: 1, Max: 1000}}},
		},
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	got, err := c.GetPosition(10, "y", 300, 0)
	if err != nil {
		t.Fatalf("GetPosition() error: %v", err)
	}
	if got != 100 {
		t.Errorf("GetPosition(10) = %v, want 100 (one third of the log range)", got)
	}
}

func TestGetPosition_UnknownScale(t *testing.T) {
	c := mustChart(t, Config{
		Width: 100, Height: 100,
		Scales: []ScaleDef{{Key: "x", Def: scale.Def{Horizontal: true}}},
	})

	_, err := c.GetPosition(1, "ghost", 100, 0)
	if !errors.Is(err, errors.ErrCodeUnknownScale) {
		t.Errorf("GetPosition() error = %v, want UNKNOWN_SCALE", err)
	}
}

func TestResize_PlotRect(t *testing.T) {
	c := mustChart(t, Config{
		Width: 800, Height: 600,
		Scales: []ScaleDef{
			{Key: "x", Def: scale.Def{Horizontal: true, Range: scale.FixedRange{Min: 0, Max: 10}}},
			{Key: "y", Def: scale.Def{Range: scale.FixedRange{Min: 0, Max: 1}}},
		},
		Axes: []AxisDef{
			{Side: layout.SideBottom, Scale: "x", Size: 50},
			{Side: layout.SideLeft, Scale: "y", Size: 50},
		},
	})

	if err := c.Resize(400, 300, 1); err != nil {
		t.Fatalf("Resize() error: %v", err)
	}

	want := layout.Rect{Left: 50, Top: 0, Width: 350, Height: 250}
	if c.PlotRect() != want {
		t.Errorf("PlotRect() = %+v, want %+v", c.PlotRect(), want)
	}
}

func TestDeviceRect_PixelRatio(t *testing.T) {
	c := mustChart(t, Config{
		Width: 400, Height: 300, PixelRatio: 2,
		Scales: []ScaleDef{
			{Key: "x", Def: scale.Def{Horizontal: true, Range: scale.FixedRange{Min: 0, Max: 10}}},
		},
		Axes: []AxisDef{{Side: layout.SideBottom, Scale: "x", Size: 50}},
	})

	plot, dev := c.PlotRect(), c.DeviceRect()
	if dev.Width != plot.Width*2 || dev.Height != plot.Height*2 {
		t.Errorf("DeviceRect() = %+v, want double of %+v", dev, plot)
	}
}

func TestGetValue_RoundTripThroughPlot(t *testing.T) {
	c := mustChart(t, Config{
		Width: 400, Height: 300,
		Scales: []ScaleDef{
			{Key: "x", Def: scale.Def{Horizontal: true, Range: scale.FixedRange{Min: 0, Max: 100}}},
		},
	})

	plot := c.PlotRect()
	pos, err := c.GetPosition(50, "x", plot.Width, plot.Left)
	if err != nil {
		t.Fatalf("GetPosition() error: %v", err)
	}
	v, err := c.GetValue(pos, "x", false)
	if err != nil {
		t.Fatalf("GetValue() error: %v", err)
	}
	if math.Abs(v-50) > 1e-9 {
		t.Errorf("round trip = %v, want 50", v)
	}
}

func TestGetValue_CanvasSpace(t *testing.T) {
	c := mustChart(t, Config{
		Width: 400, Height: 300, PixelRatio: 2,
		Scales: []ScaleDef{
			{Key: "x", Def: scale.Def{Horizontal: true, Range: scale.FixedRange{Min: 0, Max: 100}}},
		},
	})

	// The chart is 400 logical / 800 device pixels wide with no axes, so
	// the same fraction sits at doubled device coordinates.
	logical, err := c.GetValue(100, "x", false)
	if err != nil {
		t.Fatalf("GetValue(logical) error: %v", err)
	}
	device, err := c.GetValue(200, "x", true)
	if err != nil {
		t.Fatalf("GetValue(device) error: %v", err)
	}
	if math.Abs(logical-device) > 1e-9 {
		t.Errorf("logical %v != device %v for equivalent coordinates", logical, device)
	}
}

func TestCommit_ReturnsChangedKeys(t *testing.T) {
	c := mustChart(t, Config{
		Width: 400, Height: 300,
		Scales: []ScaleDef{
			{Key: "x", Def: scale.Def{Horizontal: true, Range: scale.FixedRange{Min: 0, Max: 10}}},
			{Key: "y", Def: scale.Def{Range: scale.FixedRange{Min: 0, Max: 1}}},
			{Key: "y2", Def: scale.Def{Parent: "y"}},
		},
	})

	if err := c.SetScale("y", 0, 5); err != nil {
		t.Fatalf("SetScale() error: %v", err)
	}
	changed, err := c.Commit()
	if err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	want := []string{"y", "y2"}
	if len(changed) != len(want) {
		t.Fatalf("Commit() changed = %v, want %v", changed, want)
	}
	for i := range want {
		if changed[i] != want[i] {
			t.Errorf("changed[%d] = %q, want %q", i, changed[i], want[i])
		}
	}
}

func TestCommit_HidesAxisOnClearedScale(t *testing.T) {
	c := mustChart(t, Config{
		Width: 400, Height: 300,
		Scales: []ScaleDef{
			{Key: "x", Def: scale.Def{Horizontal: true, Range: scale.FixedRange{Min: 0, Max: 10}}},
			{Key: "y", Def: scale.Def{Range: scale.FixedRange{Min: 0, Max: 1}}},
		},
		Axes: []AxisDef{
			{Side: layout.SideBottom, Scale: "x", Size: 50},
			{Side: layout.SideLeft, Scale: "y", Size: 50},
		},
	})

	if got := c.PlotRect().Width; got != 350 {
		t.Fatalf("initial plot width = %v, want 350", got)
	}

	if err := c.ClearScale("y"); err != nil {
		t.Fatalf("ClearScale() error: %v", err)
	}
	if _, err := c.Commit(); err != nil {
		t.Fatalf("Commit() error: %v", err)
	}

	// The left axis hides and returns its band to the plot.
	if got := c.PlotRect().Width; got != 400 {
		t.Errorf("plot width after hide = %v, want 400", got)
	}
}

func TestNew_FatalConfiguration(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			"self-referential parent",
			Config{Width: 100, Height: 100, Scales: []ScaleDef{{Key: "a", Def: scale.Def{Parent: "a"}}}},
		},
		{
			"axis on unknown scale",
			Config{Width: 100, Height: 100, Axes: []AxisDef{{Side: layout.SideLeft, Scale: "nope"}}},
		},
		{
			"axis side out of range",
			Config{
				Width: 100, Height: 100,
				Scales: []ScaleDef{{Key: "x", Def: scale.Def{}}},
				Axes:   []AxisDef{{Side: 7, Scale: "x"}},
			},
		},
		{
			"zero dimensions",
			Config{Width: 0, Height: 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg); !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
				t.Errorf("New() error = %v, want INVALID_CONFIGURATION", err)
			}
		})
	}
}

func TestID_Unique(t *testing.T) {
	cfg := Config{
		Width: 100, Height: 100,
		Scales: []ScaleDef{{Key: "x", Def: scale.Def{Horizontal: true}}},
	}
	a := mustChart(t, cfg)
	b := mustChart(t, cfg)
	if a.ID() == b.ID() {
		t.Error("chart IDs must be unique per instance")
	}
}

func mustChart(t *testing.T, cfg Config) *Chart {
	t.Helper()
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return c
}
