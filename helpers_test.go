package filtereval

import (
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// fakeReader returns canned audio for any path.
type fakeReader struct {
	rate     int
	samples  []float64
	channels int
	err      error
}

func (r *fakeReader) Read(string) (int, []float64, int, error) {
	return r.rate, r.samples, r.channels, r.err
}

// fakeWriter records the last write.
type fakeWriter struct {
	path    string
	rate    int
	samples []int16
	err     error
}

func (w *fakeWriter) Write(path string, sampleRate int, samples []int16) error {
	w.path, w.rate, w.samples = path, sampleRate, samples
	return w.err
}

var errBoom = errors.New("boom")

func identityFilter() Filter {
	return FilterFunc(func(s []float64, _ Params) ([]float64, error) { return s, nil })
}

func scaleFilter(k float64) Filter {
	return FilterFunc(func(s []float64, _ Params) ([]float64, error) {
		out := make([]float64, len(s))
		for i, v := range s {
			out[i] = v * k
		}
		return out, nil
	})
}

func failingFilter(err error) Filter {
	return FilterFunc(func([]float64, Params) ([]float64, error) { return nil, err })
}

// countingFilter counts invocations and passes samples through.
func countingFilter(n *atomic.Int32) Filter {
	return FilterFunc(func(s []float64, _ Params) ([]float64, error) {
		n.Add(1)
		return s, nil
	})
}

func testWaveform(n, rate int) Waveform {
	s := make([]float64, n)
	for i := range s {
		s[i] = float64(i%20)/10 - 1
	}
	return Waveform{Samples: s, SampleRate: rate}
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}
