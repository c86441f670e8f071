package scale

import (
	"slices"

	"github.com/plotgrid/plotgrid/pkg/errors"
)

// Registry owns every scale of one chart instance.
//
// Usage follows three phases: Define each scale, Build once (resolving the
// parent DAG and validating configuration — fatal on error), then at runtime
// queue range changes with SetRange/ClearRange and apply them with Commit.
// Registry is not safe for concurrent use; a multi-threaded host must guard
// the whole registry+solver pair with a single mutex around each full
// resize/data/scale-change cycle, not per field.
type Registry struct {
	defs   map[string]Def
	order  []string // definition order, used for deterministic resolution
	scales map[string]*Scale

	// children indexes the parent DAG edges (parent key → child keys) so
	// Commit can cascade without re-walking every scale.
	children map[string][]string

	// overridden marks scales whose range was set directly, which stops
	// them from tracking their parent on later commits.
	overridden map[string]bool

	pending map[string]*pendingChange
}

type pendingChange struct {
	clear    bool
	min, max float64
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		defs:       make(map[string]Def),
		scales:     make(map[string]*Scale),
		children:   make(map[string][]string),
		overridden: make(map[string]bool),
		pending:    make(map[string]*pendingChange),
	}
}

// Define registers a scale definition under key. Definitions are inert until
// Build resolves them. Defining the same key twice is a configuration error.
func (r *Registry) Define(key string, def Def) error {
	if key == "" {
		return errors.New(errors.ErrCodeInvalidConfiguration, "scale key must not be empty")
	}
	if _, ok := r.defs[key]; ok {
		return errors.New(errors.ErrCodeInvalidConfiguration, "scale %q defined twice", key)
	}
	r.defs[key] = def
	r.order = append(r.order, key)
	return nil
}

// Build resolves all defined scales into live Scale values.
//
// Parent chains are resolved over an index arena with cycle detection done
// once here, so later lookups never need re-entry guards. All configuration
// errors surface from Build and are fatal: self-referential parents, parents
// that do not exist, and custom distributions missing a forward transform.
func (r *Registry) Build() error {
	// Arena of definition indices for cycle detection.
	idx := make(map[string]int, len(r.order))
	for i, key := range r.order {
		idx[key] = i
	}

	const (
		white = iota // unvisited
		gray         // on the current chain
		black        // fully resolved
	)
	color := make([]int, len(r.order))

	var resolve func(key string) (*Scale, error)
	resolve = func(key string) (*Scale, error) {
		i, ok := idx[key]
		if !ok {
			return nil, errors.New(errors.ErrCodeUnknownScale, "scale %q is not defined", key)
		}
		if s, ok := r.scales[key]; ok && color[i] == black {
			return s, nil
		}
		if color[i] == gray {
			return nil, errors.New(errors.ErrCodeInvalidConfiguration, "scale %q is part of a parent cycle", key)
		}
		color[i] = gray

		def := r.defs[key]
		if def.Parent == key {
			return nil, errors.New(errors.ErrCodeInvalidConfiguration, "scale %q references itself as parent", key)
		}

		s := &Scale{Key: key}
		if def.Parent != "" {
			parent, err := resolve(def.Parent)
			if err != nil {
				if errors.Is(err, errors.ErrCodeUnknownScale) {
					return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, err, "scale %q: parent chain cannot be resolved", key)
				}
				return nil, err
			}
			// Inherit the parent's resolved fields verbatim, then apply
			// overrides below.
			*s = *parent
			s.Key = key
			s.Parent = def.Parent
			s.Range = AutoRange{}
			r.children[def.Parent] = append(r.children[def.Parent], key)
		}

		applyDef(s, def)

		if s.Distr == Custom && s.forward == nil {
			return nil, errors.New(errors.ErrCodeInvalidConfiguration, "scale %q: custom distribution requires a forward transform", key)
		}

		if fixed, ok := s.Range.(FixedRange); ok {
			min, max := fixed.Min, fixed.Max
			s.Min, s.Max = &min, &max
		}
		// A derived scale may override the parent's distribution, which
		// invalidates the inherited transformed cache even when the raw
		// range is unchanged.
		if err := s.recompute(); err != nil {
			return nil, err
		}

		r.scales[key] = s
		color[i] = black
		return s, nil
	}

	for _, key := range r.order {
		if _, err := resolve(key); err != nil {
			return err
		}
	}
	return nil
}

// applyDef copies the non-zero fields of def onto s. For derived scales this
// implements the "inherit verbatim plus overrides" rule.
func applyDef(s *Scale, def Def) {
	if def.Distribution != 0 {
		s.Distr = def.Distribution
	}
	if s.Distr == 0 {
		s.Distr = Linear
	}
	if def.Range != nil {
		s.Range = def.Range
	}
	if s.Range == nil {
		s.Range = AutoRange{}
	}
	if def.Parent == "" {
		s.Horizontal = def.Horizontal
	} else if def.Horizontal {
		s.Horizontal = true
	}
	if def.Dir != 0 {
		s.Dir = def.Dir
	}
	if s.Dir == 0 {
		s.Dir = 1
	}
	if def.LinThresh != 0 {
		s.linThresh = def.LinThresh
	}
	if s.linThresh == 0 {
		s.linThresh = 1
	}
	if def.Clamp != nil {
		s.clamp = def.Clamp
	}
	if def.Forward != nil {
		s.forward = def.Forward
	}
	if def.Inverse != nil {
		s.inverse = def.Inverse
	}
}

// Get returns the resolved scale for key.
func (r *Registry) Get(key string) (*Scale, bool) {
	s, ok := r.scales[key]
	return s, ok
}

// Keys returns all scale keys in definition order.
func (r *Registry) Keys() []string {
	return slices.Clone(r.order)
}

// SetRange queues a range change for key. Nothing is applied until Commit,
// so a burst of changes across several scales lands atomically.
func (r *Registry) SetRange(key string, min, max float64) error {
	if _, ok := r.scales[key]; !ok {
		return errors.New(errors.ErrCodeUnknownScale, "scale %q is not defined", key)
	}
	r.pending[key] = &pendingChange{min: min, max: max}
	return nil
}

// ClearRange queues an un-resolve for key: after Commit the scale reports
// Resolved() == false and any axis bound to it hides.
func (r *Registry) ClearRange(key string) error {
	if _, ok := r.scales[key]; !ok {
		return errors.New(errors.ErrCodeUnknownScale, "scale %q is not defined", key)
	}
	r.pending[key] = &pendingChange{clear: true}
	return nil
}

// Commit applies all queued range changes in one pass and returns the keys
// whose effective range changed, sorted.
//
// Each directly-changed scale has its transformed cache recomputed, then the
// change cascades through the parent DAG: every descendant that has not been
// explicitly overridden picks up the new effective range in the same commit.
func (r *Registry) Commit() ([]string, error) {
	changed := make(map[string]bool)

	for _, key := range r.order {
		p, ok := r.pending[key]
		if !ok {
			continue
		}
		s := r.scales[key]
		if p.clear {
			if s.Resolved() {
				s.Min, s.Max = nil, nil
				changed[key] = true
			}
			r.overridden[key] = false
			continue
		}
		min, max := p.min, p.max
		if snap, ok := s.Range.(SnapRange); ok && snap.Fn != nil {
			min, max = snap.Fn(min, max)
		}
		if r.applyRange(s, min, max) {
			changed[key] = true
		}
		if err := s.recompute(); err != nil {
			return nil, err
		}
		r.overridden[key] = s.Parent != ""
	}
	clear(r.pending)

	// Cascade each directly-changed scale through the parent DAG. The
	// recursion revisits a child at most once per changed ancestor, and
	// applyRange is idempotent, so overlap between changed keys is harmless.
	for _, key := range r.order {
		if !changed[key] {
			continue
		}
		if err := r.cascade(key, changed); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(changed))
	for k := range changed {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys, nil
}

func (r *Registry) cascade(parent string, changed map[string]bool) error {
	p := r.scales[parent]
	for _, childKey := range r.children[parent] {
		if r.overridden[childKey] {
			continue
		}
		c := r.scales[childKey]
		if !p.Resolved() {
			if c.Resolved() {
				c.Min, c.Max = nil, nil
				changed[childKey] = true
			}
		} else {
			min, max := *p.Min, *p.Max
			if snap, ok := c.Range.(SnapRange); ok && snap.Fn != nil {
				min, max = snap.Fn(min, max)
			}
			if r.applyRange(c, min, max) {
				changed[childKey] = true
			}
			if err := c.recompute(); err != nil {
				return err
			}
		}
		if err := r.cascade(childKey, changed); err != nil {
			return err
		}
	}
	return nil
}

// applyRange sets the raw range and reports whether it differs from the
// previous one.
func (r *Registry) applyRange(s *Scale, min, max float64) bool {
	if s.Resolved() && *s.Min == min && *s.Max == max {
		return false
	}
	s.Min, s.Max = &min, &max
	return true
}
