package filtereval

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Params is the opaque parameter bag handed to a filter capability.
// The pipeline never interprets it; filters read and validate their own
// entries through the typed accessors.
type Params map[string]any

// Clone returns a shallow copy of p. A nil bag clones to an empty one.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// String renders the bag with sorted keys so error messages are stable.
func (p Params) String() string {
	if len(p) == 0 {
		return "{}"
	}
	keys := slices.Sorted(maps.Keys(p))
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, p[k])
	}
	b.WriteByte('}')
	return b.String()
}

// Float returns the named parameter as float64. Integer values are widened.
func (p Params) Float(name string) (float64, error) {
	v, ok := p[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q is required", ErrInvalidParam, name)
	}
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case uint:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("%w: %q must be a number, got %T", ErrInvalidParam, name, v)
	}
}

// Int returns the named parameter as int. Floats are accepted only when
// they hold an integral value, which is how YAML and JSON decoders hand
// numbers over.
func (p Params) Int(name string) (int, error) {
	v, ok := p[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q is required", ErrInvalidParam, name)
	}
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case int32:
		return int(x), nil
	case uint:
		return int(x), nil
	case float64:
		if x != float64(int(x)) {
			return 0, fmt.Errorf("%w: %q must be an integer, got %v", ErrInvalidParam, name, x)
		}
		return int(x), nil
	default:
		return 0, fmt.Errorf("%w: %q must be an integer, got %T", ErrInvalidParam, name, v)
	}
}

// Str returns the named parameter as a string.
func (p Params) Str(name string) (string, error) {
	v, ok := p[name]
	if !ok {
		return "", fmt.Errorf("%w: %q is required", ErrInvalidParam, name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %T", ErrInvalidParam, name, v)
	}
	return s, nil
}

// FloatOr is like Float but returns def when the parameter is absent.
func (p Params) FloatOr(name string, def float64) (float64, error) {
	if _, ok := p[name]; !ok {
		return def, nil
	}
	return p.Float(name)
}

// IntOr is like Int but returns def when the parameter is absent.
func (p Params) IntOr(name string, def int) (int, error) {
	if _, ok := p[name]; !ok {
		return def, nil
	}
	return p.Int(name)
}

// StrOr is like Str but returns def when the parameter is absent.
func (p Params) StrOr(name, def string) (string, error) {
	if _, ok := p[name]; !ok {
		return def, nil
	}
	return p.Str(name)
}
