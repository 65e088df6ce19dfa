package filtereval

import (
	"fmt"
	"slices"
)

// FilterSpec binds a name to a filter capability and its parameters.
// A FilterSpec is immutable once registered.
type FilterSpec struct {
	name   string
	filter Filter
	params Params
}

// Name returns the registered name.
func (s *FilterSpec) Name() string { return s.name }

// Filter returns the capability.
func (s *FilterSpec) Filter() Filter { return s.filter }

// Params returns a copy of the parameter bag.
func (s *FilterSpec) Params() Params { return s.params.Clone() }

// Registry is an insertion-ordered set of named filter specs. It is plain
// configuration data and is not safe for concurrent mutation.
type Registry struct {
	specs []*FilterSpec
	index map[string]int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds a filter under name. A name that is already registered
// fails with *DuplicateFilterError; use Overwrite to replace it.
func (r *Registry) Register(name string, f Filter, params Params) error {
	spec, err := newFilterSpec(name, f, params)
	if err != nil {
		return err
	}
	if _, ok := r.index[name]; ok {
		return &DuplicateFilterError{Name: name}
	}
	r.add(spec)
	return nil
}

// Overwrite registers a filter, replacing any existing entry with the same
// name. A replaced entry keeps its original position.
func (r *Registry) Overwrite(name string, f Filter, params Params) error {
	spec, err := newFilterSpec(name, f, params)
	if err != nil {
		return err
	}
	if i, ok := r.index[name]; ok {
		r.specs[i] = spec
		return nil
	}
	r.add(spec)
	return nil
}

// MustRegister is like Register but panics on error. It is meant for
// static filter sets built at program start.
func (r *Registry) MustRegister(name string, f Filter, params Params) {
	if err := r.Register(name, f, params); err != nil {
		panic(err)
	}
}

// Get returns the spec registered under name.
func (r *Registry) Get(name string) (*FilterSpec, error) {
	i, ok := r.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFilterNotFound, name)
	}
	return r.specs[i], nil
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.specs))
	for i, s := range r.specs {
		names[i] = s.name
	}
	return names
}

// Specs returns the registered specs in registration order.
func (r *Registry) Specs() []*FilterSpec {
	return slices.Clone(r.specs)
}

// Len returns the number of registered filters.
func (r *Registry) Len() int { return len(r.specs) }

func (r *Registry) add(spec *FilterSpec) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	r.index[spec.name] = len(r.specs)
	r.specs = append(r.specs, spec)
}

func newFilterSpec(name string, f Filter, params Params) (*FilterSpec, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidFilterSpec)
	}
	if f == nil {
		return nil, fmt.Errorf("%w: %q has no filter", ErrInvalidFilterSpec, name)
	}
	return &FilterSpec{name: name, filter: f, params: params.Clone()}, nil
}
