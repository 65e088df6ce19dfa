package filtereval

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// Filter is a pluggable filtering capability. Apply must not retain or
// modify samples beyond the call; it may return a sequence of any length.
// Parameters are validated by the filter itself.
type Filter interface {
	Apply(samples []float64, params Params) ([]float64, error)
}

// FilterFunc adapts an ordinary function to the Filter interface.
type FilterFunc func(samples []float64, params Params) ([]float64, error)

// Apply calls f(samples, params).
func (f FilterFunc) Apply(samples []float64, params Params) ([]float64, error) {
	return f(samples, params)
}

// LengthAdjustmentKind describes how a filter output was reconciled with
// the input length.
type LengthAdjustmentKind int

const (
	// LengthUnchanged means the filter returned exactly len(input) samples.
	LengthUnchanged LengthAdjustmentKind = iota

	// LengthPadded means a short output was zero-padded at the tail.
	LengthPadded

	// LengthTruncated means a long output was cut from the end.
	LengthTruncated
)

func (k LengthAdjustmentKind) String() string {
	switch k {
	case LengthUnchanged:
		return "unchanged"
	case LengthPadded:
		return "padded"
	case LengthTruncated:
		return "truncated"
	default:
		return "unknown"
	}
}

// LengthAdjustment records a recovered length mismatch. It is informational
// and never an error.
type LengthAdjustment struct {
	Kind LengthAdjustmentKind

	// Delta is the number of samples added (padded) or removed (truncated).
	Delta int
}

// Recovered reports whether the output length had to be reconciled.
func (a LengthAdjustment) Recovered() bool { return a.Kind != LengthUnchanged }

// Invoker calls filter capabilities and enforces the output length contract.
type Invoker struct {
	logger *zap.Logger
}

// NewInvoker creates an Invoker. Only WithLogger is meaningful here.
func NewInvoker(opts ...Option) *Invoker {
	o := newOptions(opts)
	return &Invoker{logger: o.logger}
}

// Apply runs f on w with a no-op logger. See Invoker.Apply.
func Apply(w Waveform, f Filter, params Params) (Waveform, error) {
	out, _, err := NewInvoker().Apply("", w, f, params)
	return out, err
}

// Apply runs f on a private copy of w's samples and returns a new Waveform
// of the same length and sample rate. A short result is zero-padded at the
// tail, a long one is truncated keeping the first len(w.Samples) samples.
//
// Errors returned by f, panics inside f and non-finite output are reported
// as *FilterExecutionError carrying name and params.
func (inv *Invoker) Apply(name string, w Waveform, f Filter, params Params) (Waveform, LengthAdjustment, error) {
	fail := func(err error) (Waveform, LengthAdjustment, error) {
		return Waveform{}, LengthAdjustment{}, &FilterExecutionError{Filter: name, Params: params.Clone(), Err: err}
	}

	if f == nil {
		return fail(fmt.Errorf("%w: nil filter", ErrInvalidFilterSpec))
	}

	out, err := callFilter(f, slices.Clone(w.Samples), params)
	if err != nil {
		return fail(err)
	}
	if i := firstNonFinite(out); i >= 0 {
		return fail(fmt.Errorf("%w: sample %d is %v", ErrInvalidOutput, i, out[i]))
	}

	samples, adj := fitLength(out, len(w.Samples))
	if adj.Recovered() {
		inv.logger.Debug("filter output length recovered",
			zap.String("filter", name),
			zap.Stringer("adjustment", adj.Kind),
			zap.Int("delta", adj.Delta),
			zap.Int("input_len", len(w.Samples)),
			zap.Int("output_len", len(out)))
	}

	return Waveform{Samples: samples, SampleRate: w.SampleRate}, adj, nil
}

// callFilter invokes f, converting a panic into an error.
func callFilter(f Filter, samples []float64, params Params) (out []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrFilterPanic, r)
		}
	}()
	return f.Apply(samples, params.Clone())
}

// fitLength reconciles out with the expected length n.
func fitLength(out []float64, n int) ([]float64, LengthAdjustment) {
	switch {
	case len(out) == n:
		return out, LengthAdjustment{Kind: LengthUnchanged}
	case len(out) < n:
		padded := make([]float64, n)
		copy(padded, out)
		return padded, LengthAdjustment{Kind: LengthPadded, Delta: n - len(out)}
	default:
		return slices.Clone(out[:n]), LengthAdjustment{Kind: LengthTruncated, Delta: len(out) - n}
	}
}
