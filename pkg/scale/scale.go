// Package scale owns scale definitions and the value↔fraction transforms
// that drive pixel mapping.
//
// A scale is a named value range with a distribution: the numeric transform
// family that maps raw values into the space where ticks are evenly spaced.
// Scales are defined up front on a [Registry], resolved once by [Registry.Build]
// (which detects parent cycles and validates custom transforms), and mutated
// afterwards only through the queued [Registry.SetRange]/[Registry.Commit]
// pair so that dependent scales observe range changes atomically.
package scale

import (
	"math"

	"github.com/plotgrid/plotgrid/pkg/errors"
)

// Distribution identifies the transform family governing a scale.
//
// The numeric values mirror the discriminants used by existing chart
// configuration data and must not be renumbered. Codes above Custom are
// treated as user-assigned custom distributions rather than rejected, since
// upstream configs do not document an upper bound.
type Distribution int

const (
	// Linear spaces values evenly: the transform is the identity.
	Linear Distribution = 1
	// Ordinal snaps positions to integer data indices.
	Ordinal Distribution = 2
	// Log spaces values by their base-10 logarithm. Non-positive values are
	// rejected with OUT_OF_RANGE unless the scale configures a Clamp.
	Log Distribution = 3
	// Asinh applies the inverse hyperbolic sine, giving log-like compression
	// for large magnitudes while staying linear (and defined) around zero.
	Asinh Distribution = 4
	// Time is linear over unix-millisecond values; it differs from Linear
	// only in tick planning, which is calendar-aware.
	Time Distribution = 5
	// Custom delegates to caller-supplied Forward/Inverse functions.
	Custom Distribution = 100
)

// ParseDistribution maps a configuration discriminant to a Distribution.
// Codes at or above Custom are passed through as custom.
func ParseDistribution(code int) (Distribution, error) {
	switch Distribution(code) {
	case Linear, Ordinal, Log, Asinh, Time:
		return Distribution(code), nil
	}
	if code >= int(Custom) {
		return Custom, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidConfiguration, "unknown distribution code %d", code)
}

// String returns the distribution name used in logs and DOT output.
func (d Distribution) String() string {
	switch d {
	case Linear:
		return "linear"
	case Ordinal:
		return "ordinal"
	case Log:
		return "log"
	case Asinh:
		return "asinh"
	case Time:
		return "time"
	case Custom:
		return "custom"
	}
	return "unknown"
}

// RangePolicy controls how a scale's effective range is produced when a
// range change is committed. Exactly one of the three variants applies;
// dispatch is explicit rather than shape-based.
type RangePolicy interface {
	isRangePolicy()
}

// FixedRange pins the scale to a configured [Min, Max] pair. Queued range
// changes still override it; the policy only supplies the initial range.
type FixedRange struct {
	Min, Max float64
}

// AutoRange resolves the scale's range from its parent (for derived scales)
// or leaves it unresolved until the host queues one. An unresolved range
// hides any axis bound to the scale.
type AutoRange struct{}

// SnapRange post-processes every committed range through Fn, typically to
// widen it to "nice" bounds.
type SnapRange struct {
	Fn func(min, max float64) (float64, float64)
}

func (FixedRange) isRangePolicy() {}
func (AutoRange) isRangePolicy()  {}
func (SnapRange) isRangePolicy()  {}

// Def describes a scale before resolution. Defs are registered with
// [Registry.Define] and turned into live [Scale] values by [Registry.Build].
type Def struct {
	// Distribution selects the transform family. Zero defaults to Linear.
	Distribution Distribution

	// Parent names a scale this one derives from. A derived scale inherits
	// the parent's resolved fields verbatim; any non-zero field on the Def
	// overrides the inherited value.
	Parent string

	// Range supplies the initial range policy. Nil defaults to AutoRange.
	Range RangePolicy

	// Horizontal is true for scales that run along the x dimension.
	Horizontal bool

	// Dir flips the pixel mapping when -1. Zero defaults to +1.
	Dir int

	// LinThresh is the asinh linear threshold (the divisor inside asinh).
	// Zero defaults to 1.
	LinThresh float64

	// Clamp, when set on a Log scale, maps non-positive values into the
	// transform's domain instead of failing with OUT_OF_RANGE.
	Clamp func(v float64) float64

	// Forward and Inverse are required for Custom distributions.
	Forward func(v float64) float64
	Inverse func(t float64) float64
}

// Scale is a resolved scale. It is created by [Registry.Build] and mutated
// in place for the chart's lifetime; external range writes go through the
// owning registry's SetRange/Commit pair.
type Scale struct {
	Key        string
	Distr      Distribution
	Parent     string
	Horizontal bool
	Dir        int

	// Range is the live range policy, carried over from the Def.
	Range RangePolicy

	// Min and Max are the raw range bounds. A nil Min marks the range as
	// unresolved: position queries fail with UNINITIALIZED and any axis
	// bound to this scale is hidden during layout.
	Min, Max *float64

	// tmin and tmax cache the transformed bounds. They are recomputed
	// together whenever the raw range changes and are never read stale.
	tmin, tmax float64

	linThresh float64
	clamp     func(float64) float64
	forward   func(float64) float64
	inverse   func(float64) float64
}

// Resolved reports whether the scale's range has been committed.
func (s *Scale) Resolved() bool {
	return s.Min != nil && s.Max != nil
}

// Bounds returns the raw range. It fails with UNINITIALIZED before the first
// successful commit.
func (s *Scale) Bounds() (min, max float64, err error) {
	if !s.Resolved() {
		return 0, 0, errors.New(errors.ErrCodeUninitialized, "scale %q has no resolved range", s.Key)
	}
	return *s.Min, *s.Max, nil
}

// Transform applies the forward transform for the scale's distribution
// without normalizing. Log scales reject non-positive input unless a clamp
// is configured.
func (s *Scale) Transform(v float64) (float64, error) {
	switch s.Distr {
	case Log:
		if v <= 0 {
			if s.clamp == nil {
				return 0, errors.New(errors.ErrCodeOutOfRange, "scale %q: log of non-positive value %v", s.Key, v)
			}
			v = s.clamp(v)
		}
		return math.Log10(v), nil
	case Asinh:
		return math.Asinh(v / s.linThresh), nil
	case Custom:
		return s.forward(v), nil
	default:
		// Linear, Ordinal and Time are identity in transform space.
		return v, nil
	}
}

// Untransform applies the inverse transform, recovering a raw value from
// transformed space.
func (s *Scale) Untransform(t float64) (float64, error) {
	switch s.Distr {
	case Log:
		return math.Pow(10, t), nil
	case Asinh:
		return math.Sinh(t) * s.linThresh, nil
	case Custom:
		if s.inverse == nil {
			return 0, errors.New(errors.ErrCodeInvalidConfiguration, "scale %q: custom distribution has no inverse", s.Key)
		}
		return s.inverse(t), nil
	default:
		return t, nil
	}
}

// Fraction maps a raw value to [0,1] in transformed space.
//
// A degenerate range (tmax == tmin) returns exactly 0.5 for every input:
// the flat-line rendering policy, not an error.
func (s *Scale) Fraction(v float64) (float64, error) {
	if !s.Resolved() {
		return 0, errors.New(errors.ErrCodeUninitialized, "scale %q has no resolved range", s.Key)
	}
	t, err := s.Transform(v)
	if err != nil {
		return 0, err
	}
	if s.tmax == s.tmin {
		return 0.5, nil
	}
	return (t - s.tmin) / (s.tmax - s.tmin), nil
}

// ValueAt inverts Fraction: given a fraction in [0,1], it interpolates in
// transformed space and applies the inverse transform.
func (s *Scale) ValueAt(frac float64) (float64, error) {
	if !s.Resolved() {
		return 0, errors.New(errors.ErrCodeUninitialized, "scale %q has no resolved range", s.Key)
	}
	return s.Untransform(s.tmin + frac*(s.tmax-s.tmin))
}

// TransformedBounds returns the cached transformed range.
func (s *Scale) TransformedBounds() (tmin, tmax float64) {
	return s.tmin, s.tmax
}

// LinThresh returns the asinh linear threshold.
func (s *Scale) LinThresh() float64 { return s.linThresh }

// recompute refreshes the transformed cache from the raw range. Both bounds
// are recomputed together so readers never observe a half-updated cache.
func (s *Scale) recompute() error {
	if !s.Resolved() {
		return nil
	}
	tmin, err := s.Transform(*s.Min)
	if err != nil {
		return err
	}
	tmax, err := s.Transform(*s.Max)
	if err != nil {
		return err
	}
	s.tmin, s.tmax = tmin, tmax
	return nil
}
