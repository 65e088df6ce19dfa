// Package filter designs Kaiser windowed-sinc FIR filters.
package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-audio-filtereval/internal/mathutil"
	"github.com/tphakala/simd/f64"
)

const (
	windowNormalizationFactor = 2.0
	sincZeroThreshold         = 1e-10
	nyquist                   = 0.5 // normalized frequency of Nyquist
	defaultResponsePoints     = 512
)

// Band selects the pass band shape of a designed filter.
type Band int

const (
	// LowPass keeps frequencies below Cutoff.
	LowPass Band = iota

	// HighPass keeps frequencies above Cutoff.
	HighPass

	// BandPass keeps frequencies between Cutoff and Upper.
	BandPass
)

func (b Band) String() string {
	switch b {
	case LowPass:
		return "lowpass"
	case HighPass:
		return "highpass"
	case BandPass:
		return "bandpass"
	default:
		return "unknown"
	}
}

// KaiserWindow generates a Kaiser window of the specified length and β.
//
//	w[n] = I₀(β·sqrt(1 - ((n-α)/α)²)) / I₀(β),  α = (N-1)/2
//
// The window is symmetric and peaks at 1.0 in the centre.
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)
	if length == 1 {
		window[0] = 1
		return window
	}

	alpha := float64(length-1) / windowNormalizationFactor
	i0Beta := mathutil.BesselI0(beta)
	for n := range length {
		x := (float64(n) - alpha) / alpha
		window[n] = mathutil.BesselI0(beta*math.Sqrt(math.Max(0, 1-x*x))) / i0Beta
	}
	return window
}

// DesignParams holds parameters for filter design. Frequencies are
// normalized to cycles per sample, so Nyquist is 0.5.
type DesignParams struct {
	Band Band

	// NumTaps is the filter length. It must be odd so the filter is a
	// symmetric type I FIR, which high-pass and band-pass designs need.
	NumTaps int

	// Cutoff is the band edge for low/high-pass, the lower edge for
	// band-pass.
	Cutoff float64

	// Upper is the upper band edge, used by BandPass only.
	Upper float64

	// Attenuation is the desired stopband attenuation in dB.
	Attenuation float64
}

// Validate checks if design parameters are valid.
func (p *DesignParams) Validate() error {
	if p.NumTaps < mathutil.MinFilterLength || p.NumTaps > mathutil.MaxFilterLength {
		return fmt.Errorf("filter length %d outside [%d, %d]", p.NumTaps, mathutil.MinFilterLength, mathutil.MaxFilterLength)
	}
	if p.NumTaps%2 == 0 {
		return fmt.Errorf("filter length %d must be odd", p.NumTaps)
	}
	if p.Cutoff <= 0 || p.Cutoff >= nyquist {
		return fmt.Errorf("invalid cutoff frequency: %f (must be in (0, 0.5))", p.Cutoff)
	}
	if p.Band == BandPass && (p.Upper <= p.Cutoff || p.Upper >= nyquist) {
		return fmt.Errorf("invalid upper band edge: %f (must be in (%f, 0.5))", p.Upper, p.Cutoff)
	}
	if p.Attenuation < 0 {
		return fmt.Errorf("invalid attenuation: %f dB (must be non-negative)", p.Attenuation)
	}
	switch p.Band {
	case LowPass, HighPass, BandPass:
	default:
		return fmt.Errorf("unknown band %d", p.Band)
	}
	return nil
}

// Design returns the coefficients of the filter described by p.
//
// Low-pass filters are windowed sincs normalized to unity DC gain.
// High-pass filters are the spectral inversion of the matching low-pass,
// band-pass filters the difference of two low-pass filters.
func Design(p DesignParams) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	window := KaiserWindow(p.NumTaps, mathutil.KaiserBeta(p.Attenuation))
	low := windowedSinc(p.Cutoff, window)

	switch p.Band {
	case HighPass:
		f64.Scale(low, low, -1)
		low[p.NumTaps/2] += 1
		return low, nil
	case BandPass:
		high := windowedSinc(p.Upper, window)
		for i := range high {
			high[i] -= low[i]
		}
		return high, nil
	default:
		return low, nil
	}
}

// windowedSinc returns a unity DC gain low-pass kernel with cutoff fc.
func windowedSinc(fc float64, window []float64) []float64 {
	n := len(window)
	h := make([]float64, n)
	center := float64(n-1) / windowNormalizationFactor

	for i := range n {
		x := float64(i) - center
		var sinc float64
		if math.Abs(x) < sincZeroThreshold {
			sinc = windowNormalizationFactor * fc
		} else {
			sinc = math.Sin(windowNormalizationFactor*math.Pi*fc*x) / (math.Pi * x)
		}
		h[i] = sinc * window[i]
	}

	if sum := f64.Sum(h); math.Abs(sum) > sincZeroThreshold {
		f64.Scale(h, h, 1/sum)
	}
	return h
}

// FilterResponse holds the frequency response of a filter.
type FilterResponse struct {
	// Frequencies is normalized, 0 to 0.5.
	Frequencies []float64

	// Magnitude is linear.
	Magnitude []float64

	// Phase is in radians.
	Phase []float64
}

// ComputeFrequencyResponse evaluates the DTFT of coeffs at numPoints
// frequencies from DC up to (not including) Nyquist.
func ComputeFrequencyResponse(coeffs []float64, numPoints int) FilterResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	response := FilterResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	for k := range numPoints {
		freq := float64(k) / float64(windowNormalizationFactor*float64(numPoints))
		response.Frequencies[k] = freq

		var re, im float64
		omega := windowNormalizationFactor * math.Pi * freq
		for n, h := range coeffs {
			angle := omega * float64(n)
			re += h * math.Cos(angle)
			im -= h * math.Sin(angle)
		}

		response.Magnitude[k] = math.Hypot(re, im)
		response.Phase[k] = math.Atan2(im, re)
	}
	return response
}

// MagnitudeAt evaluates the magnitude response of coeffs at one normalized
// frequency.
func MagnitudeAt(coeffs []float64, freq float64) float64 {
	omega := windowNormalizationFactor * math.Pi * freq
	var re, im float64
	for n, h := range coeffs {
		re += h * math.Cos(omega*float64(n))
		im -= h * math.Sin(omega*float64(n))
	}
	return math.Hypot(re, im)
}

// MagnitudeDB converts linear magnitude to decibels.
func MagnitudeDB(magnitude float64) float64 {
	const (
		minMagnitude = 1e-10
		dbMultiplier = 20.0
	)
	return dbMultiplier * math.Log10(math.Max(magnitude, minMagnitude))
}
