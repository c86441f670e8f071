// Package tick selects tick increments and produces split positions and
// labels for one axis under a pixel budget.
package tick

import (
	"math"
	"strconv"
)

// maxSigDigits caps the combined integer-digit count and decimal precision
// of a tick increment. Labels beyond 17 significant digits cannot be
// represented cleanly in a float64 and render as noise.
const maxSigDigits = 17

// FindIncrement picks the smallest candidate increment that keeps adjacent
// ticks at least minSpacingPx apart across availablePx pixels.
//
// Candidates must be in ascending order. The scan starts at the candidate
// closest to the increment that would exactly satisfy the spacing and moves
// upward, so the common case inspects one or two candidates. A candidate is
// rejected when its on-screen spacing falls short or when its label would
// need more than 17 significant digits.
//
// When no candidate qualifies it returns (0, 0): the documented "no ticks
// fit" outcome, which callers render as an unticked axis rather than an
// error.
func FindIncrement(min, max float64, incrs []float64, availablePx, minSpacingPx float64) (incr, spacing float64) {
	delta := max - min
	if delta <= 0 || availablePx <= 0 || len(incrs) == 0 {
		return 0, 0
	}

	intDigits := numIntDigits(min)
	if d := numIntDigits(max); d > intDigits {
		intDigits = d
	}

	ideal := (minSpacingPx / availablePx) * delta
	for i := closestIdx(ideal, incrs); i < len(incrs); i++ {
		space := availablePx * incrs[i] / delta
		if space < minSpacingPx {
			continue
		}
		if intDigits+numDecDigits(incrs[i]) > maxSigDigits {
			continue
		}
		return incrs[i], space
	}
	return 0, 0
}

// NiceBounds widens [min, max] outward to the default increment grid: the
// increment nearest a tenth of the span is chosen from the standard
// 1-2-2.5-5 series and both bounds are rounded away from the range. The
// signature matches a snap-range policy function.
func NiceBounds(min, max float64) (float64, float64) {
	delta := max - min
	if delta <= 0 {
		return min, max
	}
	incr := numIncrs[closestIdx(delta/10, numIncrs)]
	lo := roundDec(math.Floor(min/incr)*incr, numDecDigits(incr))
	hi := roundDec(math.Ceil(max/incr)*incr, numDecDigits(incr))
	return lo, hi
}

// closestIdx returns the index of the candidate nearest to target.
func closestIdx(target float64, incrs []float64) int {
	best, bestDist := 0, math.Inf(1)
	for i, incr := range incrs {
		if d := math.Abs(incr - target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// numIntDigits counts the digits of the integer part of v.
func numIntDigits(v float64) int {
	v = math.Abs(v)
	if v < 1 {
		return 1
	}
	return int(math.Floor(math.Log10(v))) + 1
}

// numDecDigits counts the decimal digits needed to print v exactly.
func numDecDigits(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return len(s) - i - 1
		}
	}
	return 0
}
