package filters

import (
	"slices"

	filtereval "github.com/tphakala/go-audio-filtereval"
)

// Median replaces each sample with the median of a centred window.
// Samples beyond the edges replicate the nearest edge sample.
// Param: size (odd int >= 1).
type Median struct{}

// Apply implements filtereval.Filter.
func (Median) Apply(samples []float64, params filtereval.Params) ([]float64, error) {
	size, err := params.Int("size")
	if err != nil {
		return nil, err
	}
	if size < 1 || size%2 == 0 {
		return nil, invalidParam("size must be an odd integer >= 1, got %d", size)
	}

	n := len(samples)
	out := make([]float64, n)
	half := size / 2
	window := make([]float64, size)
	for i := range n {
		for j := range size {
			idx := min(max(i+j-half, 0), n-1)
			window[j] = samples[idx]
		}
		slices.Sort(window)
		out[i] = window[half]
	}
	return out, nil
}
