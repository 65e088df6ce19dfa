package filtereval

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
)

// AudioWriter persists 16-bit PCM mono audio.
type AudioWriter interface {
	Write(path string, sampleRate int, samples []int16) error
}

// ToPCM16 converts normalized samples to 16-bit PCM. Values are clamped to
// [-1, 1], scaled by 32767 and rounded to the nearest integer.
func ToPCM16(w Waveform) []int16 {
	out := make([]int16, len(w.Samples))
	for i, v := range w.Samples {
		switch {
		case math.IsNaN(v):
			v = 0
		case v > normalizedLimit:
			v = normalizedLimit
		case v < -normalizedLimit:
			v = -normalizedLimit
		}
		out[i] = int16(math.Round(v * maxInt16))
	}
	return out
}

// FromPCM16 converts 16-bit PCM back to floats scaled by 1/32767.
func FromPCM16(samples []int16, sampleRate int) Waveform {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s) / maxInt16
	}
	return Waveform{Samples: out, SampleRate: sampleRate}
}

// Sink persists waveforms through an AudioWriter.
type Sink struct {
	writer AudioWriter
	logger *zap.Logger
}

// NewSink creates a Sink writing through writer.
func NewSink(writer AudioWriter, opts ...Option) *Sink {
	o := newOptions(opts)
	return &Sink{writer: writer, logger: o.logger}
}

// Save converts w to 16-bit PCM and writes it to path.
func (s *Sink) Save(path string, w Waveform) error {
	if s.writer == nil {
		return fmt.Errorf("%w: %s: no audio writer configured", ErrSave, path)
	}
	if w.SampleRate <= 0 {
		return fmt.Errorf("%w: %s: %w", ErrSave, path, errors.New("sample rate must be positive"))
	}
	if err := s.writer.Write(path, w.SampleRate, ToPCM16(w)); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSave, path, err)
	}
	s.logger.Debug("saved waveform", zap.String("path", path), zap.Int("samples", w.Len()))
	return nil
}
