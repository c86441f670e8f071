package layout

import (
	"github.com/plotgrid/plotgrid/pkg/tick"
)

// Side identifies the chart edge an axis occupies. The numeric values match
// the side indices used by existing chart configuration data.
type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

// String returns the side name.
func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	}
	return "unknown"
}

// Vertical reports whether axes on this side run vertically.
func (s Side) Vertical() bool {
	return s == SideRight || s == SideLeft
}

// Axis is one axis band. Configured fields are set once at chart
// construction; computed fields are overwritten on every convergence pass.
//
// Visibility is a two-state machine: an axis with Show set is resolved
// visible exactly when its scale has a committed range. Active can therefore
// differ from Show transiently during convergence, and each transition
// forces at least one more sizing cycle because hiding or showing an axis
// changes the available plot dimension.
type Axis struct {
	// Configured.
	Side       Side
	Scale      string  // key of the scale this axis reads
	Show       bool    // configured visibility
	Size       float64 // base band size in px, excluding the label band
	LabelSize  float64 // extra band for an axis label, if any
	Increments []float64
	MinSpacing float64
	Format     tick.Formatter

	// Computed per convergence pass.
	Active   bool      // resolved visibility
	Plan     tick.Plan // increment, splits, formatted values
	FullSize float64   // band size including the label band
	Offset   float64   // signed offset along the perpendicular dimension
}
