package filters

import (
	"math"

	"github.com/tphakala/simd/f64"

	filtereval "github.com/tphakala/go-audio-filtereval"
	"github.com/tphakala/go-audio-filtereval/internal/conv"
)

const defaultGaussianTruncate = 4.0

// MovingAverage averages each sample with its neighbours over a centred
// window of the given width. Param: window (int >= 1).
type MovingAverage struct{}

// Apply implements filtereval.Filter.
func (MovingAverage) Apply(samples []float64, params filtereval.Params) ([]float64, error) {
	window, err := params.Int("window")
	if err != nil {
		return nil, err
	}
	if window < 1 {
		return nil, invalidParam("window must be >= 1, got %d", window)
	}
	return conv.Convolve(samples, uniformKernel(window), conv.Same), nil
}

// Box convolves with a uniform kernel in valid mode, so the output is
// size-1 samples shorter than the input. Param: size (int >= 1).
type Box struct{}

// Apply implements filtereval.Filter.
func (Box) Apply(samples []float64, params filtereval.Params) ([]float64, error) {
	size, err := params.Int("size")
	if err != nil {
		return nil, err
	}
	if size < 1 {
		return nil, invalidParam("size must be >= 1, got %d", size)
	}
	return conv.Convolve(samples, uniformKernel(size), conv.Valid), nil
}

// Gaussian smooths with a normalized Gaussian kernel. Params: sigma (> 0)
// and truncate (> 0, default 4), the kernel radius in standard deviations.
type Gaussian struct{}

// Apply implements filtereval.Filter.
func (Gaussian) Apply(samples []float64, params filtereval.Params) ([]float64, error) {
	sigma, err := params.Float("sigma")
	if err != nil {
		return nil, err
	}
	truncate, err := params.FloatOr("truncate", defaultGaussianTruncate)
	if err != nil {
		return nil, err
	}
	if sigma <= 0 || math.IsInf(sigma, 0) || math.IsNaN(sigma) {
		return nil, invalidParam("sigma must be positive, got %v", sigma)
	}
	if truncate <= 0 {
		return nil, invalidParam("truncate must be positive, got %v", truncate)
	}
	return conv.Convolve(samples, GaussianKernel(sigma, truncate), conv.Same), nil
}

// GaussianKernel returns a unit-sum Gaussian kernel of radius
// round(truncate·sigma).
func GaussianKernel(sigma, truncate float64) []float64 {
	radius := int(truncate*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	inv := -0.5 / (sigma * sigma)
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(x * x * inv)
	}
	f64.Scale(kernel, kernel, 1/f64.Sum(kernel))
	return kernel
}

func uniformKernel(n int) []float64 {
	k := make([]float64, n)
	v := 1 / float64(n)
	for i := range k {
		k[i] = v
	}
	return k
}
