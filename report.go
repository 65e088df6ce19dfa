package filtereval

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"github.com/mjibson/go-dsp/spectral"
	"github.com/mjibson/go-dsp/window"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/dsp/fourier"
)

// TimeAxis returns the time in seconds of every sample of w.
func TimeAxis(w Waveform) []float64 {
	t := make([]float64, len(w.Samples))
	if w.SampleRate <= 0 {
		return t
	}
	inv := 1.0 / float64(w.SampleRate)
	for i := range t {
		t[i] = float64(i) * inv
	}
	return t
}

// Spectrum is the one-sided magnitude spectrum of a waveform. The FFT runs
// on first access; a Spectrum is safe for concurrent use.
type Spectrum struct {
	samples    []float64
	sampleRate int

	once  sync.Once
	freqs []float64
	mag   []float64
}

// NewSpectrum prepares a lazy spectrum of w. The samples are copied, so w
// may be discarded afterwards.
func NewSpectrum(w Waveform) *Spectrum {
	return &Spectrum{samples: w.Clone().Samples, sampleRate: w.SampleRate}
}

func (s *Spectrum) compute() {
	s.once.Do(func() {
		n := len(s.samples)
		if n == 0 {
			return
		}
		fft := fourier.NewFFT(n)
		coeffs := fft.Coefficients(nil, s.samples)
		s.freqs = make([]float64, len(coeffs))
		s.mag = make([]float64, len(coeffs))
		scale := 1.0 / float64(n)
		for i, c := range coeffs {
			s.freqs[i] = fft.Freq(i) * float64(s.sampleRate)
			s.mag[i] = cmplx.Abs(c) * scale
		}
	})
}

// Frequencies returns the bin centre frequencies in Hz.
func (s *Spectrum) Frequencies() []float64 {
	s.compute()
	return s.freqs
}

// Magnitude returns the linear magnitude per bin, normalized by the
// transform length.
func (s *Spectrum) Magnitude() []float64 {
	s.compute()
	return s.mag
}

// MagnitudeDB returns the magnitude per bin in decibels.
func (s *Spectrum) MagnitudeDB() []float64 {
	mag := s.Magnitude()
	db := make([]float64, len(mag))
	for i, m := range mag {
		db[i] = magnitudeDB(m)
	}
	return db
}

// PowerSpectralDensity estimates the PSD of w with Welch's method using
// Hann windowed segments of nfft samples and 50% overlap. nfft <= 0 selects
// a default. freqs is in Hz.
func PowerSpectralDensity(w Waveform, nfft int) (psd, freqs []float64) {
	if nfft <= 0 {
		nfft = defaultPSDSize
	}
	return spectral.Pwelch(w.Samples, float64(w.SampleRate), &spectral.PwelchOptions{
		NFFT:     nfft,
		Noverlap: nfft / hermitianDivisor,
		Window:   window.Hann,
	})
}

// SpectrogramData holds short-time Fourier transform magnitudes in dB,
// indexed [frame][bin].
type SpectrogramData struct {
	Times       []float64 // frame start in seconds
	Frequencies []float64 // bin frequency in Hz
	Power       [][]float64
}

// Spectrogram computes Hann windowed STFT frames of frameSize samples
// advanced by hop samples. Frame sizes below 2 and non-positive hops select
// defaults. A signal shorter than one frame yields a single zero-padded
// frame.
func Spectrogram(w Waveform, frameSize, hop int) SpectrogramData {
	if frameSize < 2 {
		frameSize = defaultSpectrogramFrame
	}
	if hop <= 0 {
		hop = defaultSpectrogramHop
	}

	win := window.Hann(frameSize)
	fft := fourier.NewFFT(frameSize)
	bins := frameSize/hermitianDivisor + 1

	freqs := make([]float64, bins)
	for i := range freqs {
		freqs[i] = fft.Freq(i) * float64(w.SampleRate)
	}

	frames := 1
	if len(w.Samples) > frameSize {
		frames += (len(w.Samples) - frameSize) / hop
	}

	data := SpectrogramData{
		Times:       make([]float64, frames),
		Frequencies: freqs,
		Power:       make([][]float64, frames),
	}

	frame := make([]float64, frameSize)
	coeffs := make([]complex128, bins)
	for f := range frames {
		start := f * hop
		clear(frame)
		copy(frame, w.Samples[start:min(start+frameSize, len(w.Samples))])
		for i := range frame {
			frame[i] *= win[i]
		}
		coeffs = fft.Coefficients(coeffs, frame)

		row := make([]float64, bins)
		for i, c := range coeffs {
			row[i] = magnitudeDB(cmplx.Abs(c))
		}
		data.Power[f] = row
		if w.SampleRate > 0 {
			data.Times[f] = float64(start) / float64(w.SampleRate)
		}
	}
	return data
}

// Visualizer renders comparison views. Implementations plot, save or
// export; none of them affect pipeline results.
type Visualizer interface {
	PlotTime(title string, t, samples []float64) error
	PlotSpectrum(title string, s *Spectrum) error
	PlotSpectrogram(title string, samples []float64, sampleRate int) error
}

// PSDVisualizer is implemented by visualizers that also render Welch power
// spectral density estimates. The Renderer detects it at render time.
type PSDVisualizer interface {
	PlotPSD(title string, freqs, psd []float64) error
}

// Renderer hands time and frequency domain views of comparison results to
// a Visualizer. It performs no filtering.
type Renderer struct {
	viz    Visualizer
	logger *zap.Logger
}

// NewRenderer creates a Renderer drawing through viz.
func NewRenderer(viz Visualizer, opts ...Option) *Renderer {
	o := newOptions(opts)
	return &Renderer{viz: viz, logger: o.logger}
}

// RenderResult renders the original and filtered waveform of r. A PSD view
// follows the spectrogram when the visualizer is a PSDVisualizer.
func (rr *Renderer) RenderResult(r *ComparisonResult) error {
	views := []struct {
		title string
		w     Waveform
	}{
		{r.Name + " original", r.Original},
		{r.Name + " filtered", r.Filtered},
	}

	for _, v := range views {
		if err := rr.viz.PlotTime(v.title, TimeAxis(v.w), v.w.Samples); err != nil {
			return fmt.Errorf("render %s time view: %w", r.Name, err)
		}
		if err := rr.viz.PlotSpectrum(v.title, NewSpectrum(v.w)); err != nil {
			return fmt.Errorf("render %s spectrum: %w", r.Name, err)
		}
		if err := rr.viz.PlotSpectrogram(v.title, v.w.Samples, v.w.SampleRate); err != nil {
			return fmt.Errorf("render %s spectrogram: %w", r.Name, err)
		}
		if pv, ok := rr.viz.(PSDVisualizer); ok {
			psd, freqs := PowerSpectralDensity(v.w, 0)
			if err := pv.PlotPSD(v.title, freqs, psd); err != nil {
				return fmt.Errorf("render %s psd: %w", r.Name, err)
			}
		}
	}

	rr.logger.Debug("rendered result", zap.String("filter", r.Name))
	return nil
}

// RenderSet renders every result of set in order, stopping at the first
// visualizer error.
func (rr *Renderer) RenderSet(set *ComparisonSet) error {
	for _, r := range set.Results() {
		if err := rr.RenderResult(r); err != nil {
			return err
		}
	}
	return nil
}

// magnitudeDB converts linear magnitude to decibels with a floor to avoid
// log(0).
func magnitudeDB(m float64) float64 {
	return dbMultiplier * math.Log10(math.Max(m, minMagnitude))
}
