package main

import (
	"fmt"

	filtereval "github.com/tphakala/go-audio-filtereval"
	"github.com/tphakala/go-audio-filtereval/filters"
	"github.com/tphakala/go-audio-filtereval/internal/filter"
)

const (
	responseResolution = 1024
	responseDecimals   = 2
)

// ResponseCmd prints the magnitude response of a Kaiser FIR design.
type ResponseCmd struct {
	Kind        string  `enum:"lowpass,highpass,bandpass" default:"lowpass" help:"Filter kind"`
	Cutoff      float64 `help:"Cutoff in Hz (lowpass, highpass)"`
	Low         float64 `help:"Lower band edge in Hz (bandpass)"`
	High        float64 `help:"Upper band edge in Hz (bandpass)"`
	SampleRate  int     `required:"" help:"Sample rate in Hz"`
	Taps        int     `default:"101" help:"Number of taps (odd)"`
	Attenuation float64 `default:"60" help:"Stopband attenuation in dB"`
	Points      int     `default:"16" help:"Frequencies to print"`
}

var bands = map[string]filter.Band{
	filters.KindLowPass:  filter.LowPass,
	filters.KindHighPass: filter.HighPass,
	filters.KindBandPass: filter.BandPass,
}

// Run implements the response subcommand.
func (c *ResponseCmd) Run(g *Globals) error {
	coeffs, err := c.design()
	if err != nil {
		return err
	}

	resp := filter.ComputeFrequencyResponse(coeffs, responseResolution)
	t := responseTable(resp, c.SampleRate, c.Points)

	out := g.stdout
	printTitle(out, fmt.Sprintf("%s response", c.Kind))
	printKeyValue(out, "Taps", len(coeffs))
	printKeyValue(out, "DC gain", formatMetric(filter.MagnitudeAt(coeffs, 0), 6))
	printKeyValue(out, "Nyquist gain", formatMetric(filter.MagnitudeAt(coeffs, 0.5), 6))
	fmt.Fprintln(out)
	printTable(out, t)
	return nil
}

func (c *ResponseCmd) design() ([]float64, error) {
	band, ok := bands[c.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown filter kind %q", c.Kind)
	}
	params := filtereval.Params{
		"sample_rate": c.SampleRate,
		"taps":        c.Taps,
		"attenuation": c.Attenuation,
	}
	if band == filter.BandPass {
		params["low"], params["high"] = c.Low, c.High
	} else {
		params["cutoff"] = c.Cutoff
	}
	return filters.DesignFIR(params, band)
}

// responseTable samples resp at points evenly spaced frequencies.
func responseTable(resp filter.FilterResponse, sampleRate, points int) *metricTable {
	points = max(points, 1)
	t := &metricTable{Headers: []string{"Magnitude (dB)", "Phase (rad)"}}
	n := len(resp.Frequencies)
	for p := range points {
		k := p * n / points
		t.Rows = append(t.Rows, metricRow{
			Label: fmt.Sprintf("%.1f Hz", resp.Frequencies[k]*float64(sampleRate)),
			Values: []string{
				formatMetric(filter.MagnitudeDB(resp.Magnitude[k]), responseDecimals),
				formatMetric(resp.Phase[k], responseDecimals),
			},
		})
	}
	return t
}
