// Package layout computes the plot rectangle and axis band positions, and
// drives the bounded convergence loop that stabilizes padding, axis
// visibility, and axis sizes against each other.
package layout

// Rect is a rectangle in logical (CSS) pixels.
type Rect struct {
	Left, Top, Width, Height float64
}

// Scaled returns the rectangle in device pixels for the given pixel-density
// ratio.
func (r Rect) Scaled(ratio float64) Rect {
	return Rect{
		Left:   r.Left * ratio,
		Top:    r.Top * ratio,
		Width:  r.Width * ratio,
		Height: r.Height * ratio,
	}
}

// Padding holds one value per side, indexed by [Side]. Each side is
// recomputed independently per convergence cycle from a policy function of
// the current axis visibility, and fully overwritten — never accumulated.
type Padding [4]float64

// PadFunc computes one side's padding from the set of sides that currently
// have visible axes.
type PadFunc func(visible [4]bool) float64
