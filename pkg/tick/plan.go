package tick

import (
	"math"

	"github.com/plotgrid/plotgrid/pkg/scale"
)

// Plan is the tick layout computed for one axis: an ordered split array and
// a parallel label array. An empty label marks a split that is intentionally
// unlabeled (a secondary sub-tick). A zero Incr means no ticks fit the
// available pixels.
type Plan struct {
	Incr    float64
	Spacing float64
	Splits  []float64
	Labels  []string
}

// Options tunes planning for one axis.
type Options struct {
	// Increments are the candidate increments, ascending. Nil selects a
	// default 1-2-2.5-5 decade series (integers only for ordinal scales,
	// calendar steps for time scales). For asinh scales the candidates
	// apply in asinh space, where ticks are evenly spaced.
	Increments []float64

	// MinSpacing is the minimum on-screen distance between adjacent ticks
	// in pixels. Zero defaults to 40.
	MinSpacing float64

	// Format renders split values into labels. Nil defaults to Number.
	// Time scales ignore it and use calendar-unit formats.
	Format Formatter
}

// DefaultMinSpacing is the tick spacing floor applied when Options leaves
// MinSpacing unset.
const DefaultMinSpacing = 40.0

// numIncrs is the default candidate series: {1, 2, 2.5, 5} mantissas across
// a wide decade span, ascending.
var numIncrs = genIncrs(-12, 12, []float64{1, 2, 2.5, 5})

// ordinalIncrs restricts candidates to whole numbers so ordinal ticks land
// on data indices.
var ordinalIncrs = genIncrs(0, 12, []float64{1, 2, 5})

func genIncrs(minExp, maxExp int, mults []float64) []float64 {
	incrs := make([]float64, 0, (maxExp-minExp+1)*len(mults))
	for e := minExp; e <= maxExp; e++ {
		mag := math.Pow(10, float64(e))
		for _, m := range mults {
			// Round away accumulated fp error for sub-unit increments so
			// 0.1 stays 0.1 and not 0.1000000000000003.
			incr := m * mag
			if e < 0 {
				incr = roundDec(incr, -e+1)
			}
			incrs = append(incrs, incr)
		}
	}
	return incrs
}

func roundDec(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

// PlanAxis computes the tick plan for one axis given the scale's resolved
// range and the pixels available along the axis.
//
// The split/value strategy is distribution-specific: evenly spaced numeric
// splits for linear and custom scales, power splits with unlabeled sub-ticks
// in log space, asinh-space splits, index-snapped integer splits for ordinal
// scales, and multi-unit calendar splits for time scales.
func PlanAxis(s *scale.Scale, min, max, availablePx float64, opts Options) Plan {
	if opts.MinSpacing == 0 {
		opts.MinSpacing = DefaultMinSpacing
	}
	if opts.Format == nil {
		opts.Format = Number()
	}

	switch s.Distr {
	case scale.Time:
		return planTime(min, max, availablePx, opts)
	case scale.Ordinal:
		return planOrdinal(min, max, availablePx, opts)
	case scale.Log:
		return planLog(min, max, availablePx, opts)
	case scale.Asinh:
		return planAsinh(s, min, max, availablePx, opts)
	default:
		return planLinear(min, max, availablePx, opts)
	}
}

func planLinear(min, max, availablePx float64, opts Options) Plan {
	incrs := opts.Increments
	if incrs == nil {
		incrs = numIncrs
	}
	incr, space := FindIncrement(min, max, incrs, availablePx, opts.MinSpacing)
	if incr == 0 {
		return Plan{}
	}

	p := Plan{Incr: incr, Spacing: space}
	for v := firstSplit(min, incr); v <= max+incr*1e-9; v += incr {
		v = snapSplit(v, incr)
		p.Splits = append(p.Splits, v)
		p.Labels = append(p.Labels, opts.Format(v))
	}
	return p
}

func planOrdinal(min, max, availablePx float64, opts Options) Plan {
	incrs := opts.Increments
	if incrs == nil {
		incrs = ordinalIncrs
	}
	incr, space := FindIncrement(min, max, incrs, availablePx, opts.MinSpacing)
	if incr == 0 {
		return Plan{}
	}
	// Ticks must land on integer data indices.
	incr = math.Max(1, math.Round(incr))

	p := Plan{Incr: incr, Spacing: space}
	for v := math.Ceil(min); v <= max; v += incr {
		p.Splits = append(p.Splits, v)
		p.Labels = append(p.Labels, opts.Format(v))
	}
	return p
}

// planLog emits major splits at powers of 10 inside the range, labeled, and
// fills in 2×..9× sub-splits unlabeled when each decade has room for them.
func planLog(min, max, availablePx float64, opts Options) Plan {
	if min <= 0 || max <= min {
		return Plan{}
	}
	emin := math.Floor(math.Log10(min))
	emax := math.Ceil(math.Log10(max))
	decades := emax - emin
	if decades == 0 {
		decades = 1
	}

	pxPerDecade := availablePx / decades
	if pxPerDecade < opts.MinSpacing {
		// Thin out: keep every k-th power so majors still clear MinSpacing.
		k := math.Ceil(opts.MinSpacing / pxPerDecade)
		return logMajorsOnly(min, max, emin, emax, k, opts)
	}

	withMinors := pxPerDecade >= 9*opts.MinSpacing

	p := Plan{Incr: 1} // one decade per major split, in log space
	for e := emin; e <= emax; e++ {
		pow := math.Pow(10, e)
		if pow >= min && pow <= max {
			p.Splits = append(p.Splits, pow)
			p.Labels = append(p.Labels, opts.Format(pow))
		}
		if !withMinors {
			continue
		}
		for m := 2.0; m <= 9; m++ {
			v := m * pow
			if v >= min && v <= max {
				p.Splits = append(p.Splits, v)
				p.Labels = append(p.Labels, "")
			}
		}
	}
	sortPlan(&p)
	return p
}

func logMajorsOnly(min, max, emin, emax, step float64, opts Options) Plan {
	p := Plan{Incr: step}
	for e := emin; e <= emax; e += step {
		pow := math.Pow(10, e)
		if pow >= min && pow <= max {
			p.Splits = append(p.Splits, pow)
			p.Labels = append(p.Labels, opts.Format(pow))
		}
	}
	return p
}

// planAsinh selects an increment in asinh space, where ticks are evenly
// spaced, and maps the grid splits back through sinh, so ticks crowd toward
// zero the same way the data does.
func planAsinh(s *scale.Scale, min, max, availablePx float64, opts Options) Plan {
	tmin := math.Asinh(min / s.LinThresh())
	tmax := math.Asinh(max / s.LinThresh())

	incrs := opts.Increments
	if incrs == nil {
		incrs = numIncrs
	}
	tIncr, space := FindIncrement(tmin, tmax, incrs, availablePx, opts.MinSpacing)
	if tIncr == 0 {
		return Plan{}
	}

	p := Plan{Incr: tIncr, Spacing: space}
	for t := firstSplit(tmin, tIncr); t <= tmax+tIncr*1e-9; t += tIncr {
		t = snapSplit(t, tIncr)
		v := math.Sinh(t) * s.LinThresh()
		// Clean near-zero noise from the sinh round trip.
		if math.Abs(v) < (max-min)*1e-12 {
			v = 0
		}
		p.Splits = append(p.Splits, v)
		p.Labels = append(p.Labels, opts.Format(roundDec(v, 6)))
	}
	return p
}

// firstSplit returns the smallest multiple of incr at or above min.
func firstSplit(min, incr float64) float64 {
	return math.Ceil(min/incr-1e-9) * incr
}

// snapSplit rounds v to the increment grid, clearing fp drift from repeated
// addition.
func snapSplit(v, incr float64) float64 {
	snapped := math.Round(v/incr) * incr
	return roundDec(snapped, numDecDigits(incr))
}

func sortPlan(p *Plan) {
	// Insertion sort keeping Splits and Labels parallel; split counts are
	// small enough that asymptotics are irrelevant.
	for i := 1; i < len(p.Splits); i++ {
		for j := i; j > 0 && p.Splits[j] < p.Splits[j-1]; j-- {
			p.Splits[j], p.Splits[j-1] = p.Splits[j-1], p.Splits[j]
			p.Labels[j], p.Labels[j-1] = p.Labels[j-1], p.Labels[j]
		}
	}
}
