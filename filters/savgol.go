package filters

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	filtereval "github.com/tphakala/go-audio-filtereval"
	"github.com/tphakala/go-audio-filtereval/internal/conv"
)

// SavitzkyGolay smooths by fitting a polynomial of the given order to each
// window by least squares and taking its centre value. Edges are mirrored.
// Params: window (odd int >= 1), order (int, 0 <= order < window).
type SavitzkyGolay struct{}

// Apply implements filtereval.Filter.
func (SavitzkyGolay) Apply(samples []float64, params filtereval.Params) ([]float64, error) {
	window, err := params.Int("window")
	if err != nil {
		return nil, err
	}
	order, err := params.Int("order")
	if err != nil {
		return nil, err
	}
	if window < 1 || window%2 == 0 {
		return nil, invalidParam("window must be an odd integer >= 1, got %d", window)
	}
	if order < 0 || order >= window {
		return nil, invalidParam("order must be in [0, %d), got %d", window, order)
	}

	coeffs, err := SavitzkyGolayCoefficients(window, order)
	if err != nil {
		return nil, err
	}

	n := len(samples)
	if n == 0 {
		return []float64{}, nil
	}
	half := window / 2
	extended := make([]float64, n+2*half)
	for i := range extended {
		extended[i] = samples[reflect(i-half, n)]
	}
	return conv.Convolve(extended, coeffs, conv.Valid), nil
}

// SavitzkyGolayCoefficients returns the smoothing kernel for a centred
// window: the first row of the pseudo-inverse of the window's Vandermonde
// matrix. The kernel is symmetric.
func SavitzkyGolayCoefficients(window, order int) ([]float64, error) {
	half := window / 2
	a := mat.NewDense(window, order+1, nil)
	for i := range window {
		x := float64(i - half)
		for j := 0; j <= order; j++ {
			a.Set(i, j, math.Pow(x, float64(j)))
		}
	}

	identity := mat.NewDense(window, window, nil)
	for i := range window {
		identity.Set(i, i, 1)
	}

	var pinv mat.Dense
	if err := pinv.Solve(a, identity); err != nil {
		return nil, fmt.Errorf("savitzky-golay least squares: %w", err)
	}
	return mat.Row(nil, 0, &pinv), nil
}

// reflect maps an out-of-range index into [0, n) by mirroring about the
// edge samples without repeating them.
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}
