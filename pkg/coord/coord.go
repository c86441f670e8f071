// Package coord converts between data values and pixel coordinates.
//
// The conversion composes a scale's value↔fraction transform with an
// orientation- and direction-aware pixel mapping. Screen y grows downward,
// so vertical scales mirror by default; a direction of -1 flips whichever
// mapping the orientation selected. The four orientation×direction
// combinations are written out explicitly because they are not symmetric
// shortcuts of each other.
package coord

import (
	"github.com/plotgrid/plotgrid/pkg/errors"
	"github.com/plotgrid/plotgrid/pkg/scale"
)

// Position maps value to a pixel coordinate inside a band of dimPx pixels
// starting at offPx.
//
// Per-query failures (an unresolved range, a log-domain violation) are
// recoverable: the expected caller reaction is to skip drawing for this
// scale, not to tear down the chart.
func Position(s *scale.Scale, value, dimPx, offPx float64) (float64, error) {
	frac, err := s.Fraction(value)
	if err != nil {
		return 0, err
	}
	if s.Horizontal {
		if s.Dir == -1 {
			return offPx + dimPx*(1-frac), nil
		}
		return offPx + dimPx*frac, nil
	}
	// Vertical: larger values sit closer to the top of the band.
	if s.Dir == -1 {
		return offPx + dimPx*frac, nil
	}
	return offPx + dimPx*(1-frac), nil
}

// Value recovers the data value at a pixel coordinate: the algebraic inverse
// of Position. It fails with DEGENERATE_DIMENSION when dimPx is zero and
// with INVALID_CONFIGURATION when a custom scale has no inverse transform.
func Value(s *scale.Scale, posPx, dimPx, offPx float64) (float64, error) {
	if dimPx == 0 {
		return 0, errors.New(errors.ErrCodeDegenerateDimension, "scale %q: cannot invert position in zero-sized dimension", s.Key)
	}
	frac := (posPx - offPx) / dimPx
	if s.Horizontal {
		if s.Dir == -1 {
			frac = 1 - frac
		}
	} else {
		if s.Dir != -1 {
			frac = 1 - frac
		}
	}
	return s.ValueAt(frac)
}
