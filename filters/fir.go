package filters

import (
	filtereval "github.com/tphakala/go-audio-filtereval"
	"github.com/tphakala/go-audio-filtereval/internal/conv"
	"github.com/tphakala/go-audio-filtereval/internal/filter"
	"github.com/tphakala/go-audio-filtereval/internal/mathutil"
)

const (
	defaultTaps        = 101
	defaultAttenuation = 60.0
)

// LowPass is a Kaiser windowed-sinc low-pass FIR filter.
//
// Params: cutoff and sample_rate in Hz, taps (odd, default 101),
// attenuation in dB (default 60) and mode ("same", "valid" or "full").
// Instead of taps, transition in Hz sizes the filter from the Kaiser
// length estimate.
type LowPass struct{}

// Apply implements filtereval.Filter.
func (LowPass) Apply(samples []float64, params filtereval.Params) ([]float64, error) {
	return applyFIR(samples, params, filter.LowPass)
}

// HighPass is a Kaiser windowed-sinc high-pass FIR filter. It takes the
// same params as LowPass.
type HighPass struct{}

// Apply implements filtereval.Filter.
func (HighPass) Apply(samples []float64, params filtereval.Params) ([]float64, error) {
	return applyFIR(samples, params, filter.HighPass)
}

// BandPass is a Kaiser windowed-sinc band-pass FIR filter. It takes low
// and high band edges in Hz instead of cutoff.
type BandPass struct{}

// Apply implements filtereval.Filter.
func (BandPass) Apply(samples []float64, params filtereval.Params) ([]float64, error) {
	return applyFIR(samples, params, filter.BandPass)
}

// DesignFIR builds the coefficients for band from Hz params.
func DesignFIR(params filtereval.Params, band filter.Band) ([]float64, error) {
	rate, err := params.Float("sample_rate")
	if err != nil {
		return nil, err
	}
	if rate <= 0 {
		return nil, invalidParam("sample_rate must be positive, got %v", rate)
	}
	atten, err := params.FloatOr("attenuation", defaultAttenuation)
	if err != nil {
		return nil, err
	}
	taps, err := params.IntOr("taps", defaultTaps)
	if err != nil {
		return nil, err
	}
	if _, explicit := params["taps"]; !explicit {
		if _, ok := params["transition"]; ok {
			transition, err := params.Float("transition")
			if err != nil {
				return nil, err
			}
			if transition <= 0 {
				return nil, invalidParam("transition must be positive, got %v", transition)
			}
			taps = mathutil.EstimateFilterLength(atten, transition/rate)
		}
	}

	design := filter.DesignParams{Band: band, NumTaps: taps, Attenuation: atten}
	if band == filter.BandPass {
		low, err := params.Float("low")
		if err != nil {
			return nil, err
		}
		high, err := params.Float("high")
		if err != nil {
			return nil, err
		}
		design.Cutoff, design.Upper = low/rate, high/rate
	} else {
		cutoff, err := params.Float("cutoff")
		if err != nil {
			return nil, err
		}
		design.Cutoff = cutoff / rate
	}

	coeffs, err := filter.Design(design)
	if err != nil {
		return nil, invalidParam("%s design: %v", band, err)
	}
	return coeffs, nil
}

func applyFIR(samples []float64, params filtereval.Params, band filter.Band) ([]float64, error) {
	modeName, err := params.StrOr("mode", conv.Same.String())
	if err != nil {
		return nil, err
	}
	mode, err := conv.ParseMode(modeName)
	if err != nil {
		return nil, invalidParam("%v", err)
	}
	coeffs, err := DesignFIR(params, band)
	if err != nil {
		return nil, err
	}
	return conv.Convolve(samples, coeffs, mode), nil
}
