package filtereval

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// AudioReader reads an audio container. samples holds channel-interleaved
// raw sample values; integer PCM is widened to float64 without scaling.
type AudioReader interface {
	Read(path string) (sampleRate int, samples []float64, channels int, err error)
}

// Source loads waveforms through an AudioReader, reducing them to a single
// channel normalized to a peak of 1.0.
type Source struct {
	reader AudioReader
	logger *zap.Logger
}

// NewSource creates a Source reading through reader.
func NewSource(reader AudioReader, opts ...Option) *Source {
	o := newOptions(opts)
	return &Source{reader: reader, logger: o.logger}
}

// Load reads path and returns a mono, peak-normalized Waveform.
// Every failure is a *LoadError.
func (s *Source) Load(path string) (Waveform, error) {
	if s.reader == nil {
		return Waveform{}, &LoadError{Path: path, Err: errors.New("no audio reader configured")}
	}

	rate, samples, channels, err := s.reader.Read(path)
	if err != nil {
		return Waveform{}, &LoadError{Path: path, Err: err}
	}
	if rate <= 0 {
		return Waveform{}, &LoadError{Path: path, Err: fmt.Errorf("invalid sample rate %d", rate)}
	}

	mono, err := Downmix(samples, channels)
	if err != nil {
		return Waveform{}, &LoadError{Path: path, Err: err}
	}
	if len(mono) == 0 {
		return Waveform{}, &LoadError{Path: path, Err: errors.New("no audio frames")}
	}
	if i := firstNonFinite(mono); i >= 0 {
		return Waveform{}, &LoadError{Path: path, Err: fmt.Errorf("sample %d is not finite", i)}
	}

	peak := peakAbs(mono)
	normalized := NormalizePeak(mono)

	s.logger.Debug("loaded waveform",
		zap.String("path", path),
		zap.Int("sample_rate", rate),
		zap.Int("channels", channels),
		zap.Int("frames", len(normalized)),
		zap.Float64("source_peak", peak))

	return Waveform{Samples: normalized, SampleRate: rate}, nil
}

// Downmix averages channel-interleaved samples into one channel.
// A single channel is returned as a copy.
func Downmix(interleaved []float64, channels int) ([]float64, error) {
	if channels < 1 {
		return nil, fmt.Errorf("invalid channel count %d", channels)
	}
	if len(interleaved)%channels != 0 {
		return nil, fmt.Errorf("%d samples do not form whole frames of %d channels", len(interleaved), channels)
	}

	frames := len(interleaved) / channels
	mono := make([]float64, frames)
	if channels == 1 {
		copy(mono, interleaved)
		return mono, nil
	}

	inv := 1.0 / float64(channels)
	for i := range frames {
		base := i * channels
		var sum float64
		for ch := range channels {
			sum += interleaved[base+ch]
		}
		mono[i] = sum * inv
	}
	return mono, nil
}

// NormalizePeak returns samples divided by their largest absolute value.
// Silence (peak of zero) is returned unscaled.
func NormalizePeak(samples []float64) []float64 {
	out := make([]float64, len(samples))
	peak := peakAbs(samples)
	if peak == 0 {
		copy(out, samples)
		return out
	}
	for i, v := range samples {
		out[i] = v / peak
	}
	return out
}
