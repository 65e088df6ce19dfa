package filtereval

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-filtereval/internal/testutil"
)

func TestApply_SameLength(t *testing.T) {
	w := testWaveform(100, 8000)
	out, adj, err := NewInvoker().Apply("double", w, scaleFilter(2), nil)
	require.NoError(t, err)
	assert.Equal(t, LengthUnchanged, adj.Kind)
	assert.False(t, adj.Recovered())
	assert.Equal(t, w.SampleRate, out.SampleRate)
	for i := range w.Samples {
		assert.Equal(t, 2*w.Samples[i], out.Samples[i])
	}
}

func TestApply_TruncatedOutputIsPadded(t *testing.T) {
	w := testWaveform(1000, 8000)
	short := FilterFunc(func(s []float64, _ Params) ([]float64, error) {
		return s[:900], nil
	})

	out, adj, err := NewInvoker().Apply("short", w, short, nil)
	require.NoError(t, err)
	require.Len(t, out.Samples, 1000)
	assert.Equal(t, LengthAdjustment{Kind: LengthPadded, Delta: 100}, adj)
	assert.Equal(t, w.Samples[:900], out.Samples[:900])
	testutil.AssertZeroFrom(t, out.Samples, 900)
}

func TestApply_LongOutputIsTruncated(t *testing.T) {
	w := testWaveform(50, 8000)
	long := FilterFunc(func(s []float64, _ Params) ([]float64, error) {
		return append(s, 7, 7, 7), nil
	})

	out, adj, err := NewInvoker().Apply("long", w, long, nil)
	require.NoError(t, err)
	assert.Equal(t, w.Samples, out.Samples)
	assert.Equal(t, LengthAdjustment{Kind: LengthTruncated, Delta: 3}, adj)
}

func TestApply_EmptyOutputIsAllZero(t *testing.T) {
	w := testWaveform(10, 8000)
	empty := FilterFunc(func([]float64, Params) ([]float64, error) { return nil, nil })

	out, err := Apply(w, empty, nil)
	require.NoError(t, err)
	assert.Equal(t, make([]float64, 10), out.Samples)
}

func TestApply_InputIsNotModified(t *testing.T) {
	w := testWaveform(32, 8000)
	before := w.Clone()
	mutating := FilterFunc(func(s []float64, p Params) ([]float64, error) {
		for i := range s {
			s[i] = 0
		}
		p["touched"] = true
		return s, nil
	})

	params := Params{"k": 1}
	_, err := Apply(w, mutating, params)
	require.NoError(t, err)
	assert.Equal(t, before.Samples, w.Samples)
	assert.NotContains(t, params, "touched")
}

func TestApply_Failures(t *testing.T) {
	w := testWaveform(16, 8000)
	tests := []struct {
		name    string
		f       Filter
		wantErr error
	}{
		{"returns_error", failingFilter(errBoom), errBoom},
		{"panics", FilterFunc(func([]float64, Params) ([]float64, error) { panic("kaboom") }), ErrFilterPanic},
		{"nan_output", FilterFunc(func(s []float64, _ Params) ([]float64, error) {
			return []float64{math.NaN()}, nil
		}), ErrInvalidOutput},
		{"nil_filter", nil, ErrInvalidFilterSpec},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := Params{"cutoff": 3000}
			_, _, err := NewInvoker().Apply("lowpass", w, tt.f, params)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrFilterExecution)

			var fe *FilterExecutionError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, "lowpass", fe.Filter)
			assert.Equal(t, Params{"cutoff": 3000}, fe.Params)
			assert.Contains(t, fe.Error(), `"lowpass"`)
			assert.Contains(t, fe.Error(), "cutoff=3000")
		})
	}
}

func TestApply_LogsRecovery(t *testing.T) {
	logger, logs := observedLogger()
	w := testWaveform(20, 8000)
	short := FilterFunc(func(s []float64, _ Params) ([]float64, error) { return s[:5], nil })

	_, _, err := NewInvoker(WithLogger(logger)).Apply("short", w, short, nil)
	require.NoError(t, err)

	entries := logs.FilterMessage("filter output length recovered").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "short", fields["filter"])
	assert.Equal(t, int64(15), fields["delta"])
}

func TestFilterExecutionError_Unnamed(t *testing.T) {
	err := &FilterExecutionError{Err: errors.New("x")}
	assert.Contains(t, err.Error(), "<unnamed>")
}
