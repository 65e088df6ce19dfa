package filtereval

import (
	"fmt"
	"math"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Waveform is a single-channel, sample-rate-tagged sequence of amplitude
// values. Pipeline stages treat a Waveform as read-only and always produce
// a new one.
type Waveform struct {
	// Samples holds the amplitude values. Normalized waveforms stay
	// within [-1, 1].
	Samples []float64

	// SampleRate is the number of samples per second, always positive.
	SampleRate int
}

// NewWaveform validates samples and sampleRate and returns a Waveform
// owning a copy of samples.
func NewWaveform(samples []float64, sampleRate int) (Waveform, error) {
	w := Waveform{Samples: slices.Clone(samples), SampleRate: sampleRate}
	if err := w.Validate(); err != nil {
		return Waveform{}, err
	}
	return w, nil
}

// Validate checks the waveform invariants.
func (w Waveform) Validate() error {
	if len(w.Samples) == 0 {
		return fmt.Errorf("%w: no samples", ErrInvalidWaveform)
	}
	if w.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidWaveform, w.SampleRate)
	}
	if i := firstNonFinite(w.Samples); i >= 0 {
		return fmt.Errorf("%w: sample %d is %v", ErrInvalidWaveform, i, w.Samples[i])
	}
	return nil
}

// Len returns the number of samples.
func (w Waveform) Len() int { return len(w.Samples) }

// Duration returns the playback length of the waveform.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(w.Samples)) / float64(w.SampleRate) * float64(time.Second))
}

// Clone returns a deep copy of w.
func (w Waveform) Clone() Waveform {
	return Waveform{Samples: slices.Clone(w.Samples), SampleRate: w.SampleRate}
}

// Peak returns the largest absolute sample value, 0 for an empty waveform.
func (w Waveform) Peak() float64 {
	return peakAbs(w.Samples)
}

func peakAbs(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return math.Max(math.Abs(floats.Max(s)), math.Abs(floats.Min(s)))
}

// firstNonFinite returns the index of the first NaN or Inf value, or -1.
func firstNonFinite(s []float64) int {
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return i
		}
	}
	return -1
}
