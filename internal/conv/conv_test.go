package conv

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const convTolerance = 1e-9

// naiveFull is the textbook definition used as reference.
func naiveFull(x, h []float64) []float64 {
	out := make([]float64, len(x)+len(h)-1)
	for i, xv := range x {
		for j, hv := range h {
			out[i+j] += xv * hv
		}
	}
	return out
}

func randomSignal(n int, seed uint64) []float64 {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	s := make([]float64, n)
	for i := range s {
		s[i] = r.Float64()*2 - 1
	}
	return s
}

func TestConvolve_Modes(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	h := []float64{1, 0, -1}

	assert.InDeltaSlice(t, []float64{1, 2, 2, 2, 2, -4, -5}, Convolve(x, h, Full), convTolerance)
	assert.InDeltaSlice(t, []float64{2, 2, 2, 2, -4}, Convolve(x, h, Same), convTolerance)
	assert.InDeltaSlice(t, []float64{2, 2, 2}, Convolve(x, h, Valid), convTolerance)
}

func TestConvolve_AsymmetricKernelIsFlipped(t *testing.T) {
	x := []float64{0, 0, 1, 0, 0}
	h := []float64{1, 2, 3}
	// An impulse reproduces the kernel in its original orientation.
	assert.InDeltaSlice(t, []float64{0, 0, 1, 2, 3, 0, 0}, Convolve(x, h, Full), convTolerance)
}

func TestConvolve_ModeLengths(t *testing.T) {
	tests := []struct {
		name      string
		n, k      int
		mode      Mode
		wantLen   int
	}{
		{"same", 100, 9, Same, 100},
		{"valid", 100, 9, Valid, 92},
		{"full", 100, 9, Full, 108},
		{"valid_kernel_longer", 5, 9, Valid, 0},
		{"same_kernel_longer", 5, 9, Same, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Convolve(make([]float64, tt.n), make([]float64, tt.k), tt.mode)
			assert.Len(t, out, tt.wantLen)
			assert.Equal(t, tt.wantLen, OutputLen(tt.n, tt.k, tt.mode))
		})
	}
}

func TestConvolve_Empty(t *testing.T) {
	assert.Empty(t, Convolve(nil, []float64{1}, Full))
	assert.Empty(t, Convolve([]float64{1}, nil, Same))
}

// TestConvolve_FFTMatchesDirect exercises the overlap-save path with a
// kernel long enough to select it.
func TestConvolve_FFTMatchesDirect(t *testing.T) {
	x := randomSignal(3000, 1)
	h := randomSignal(minKernelForFFT+37, 2)

	got := Convolve(x, h, Full)
	want := naiveFull(x, h)
	require.Len(t, got, len(want))
	assert.InDeltaSlice(t, want, got, 1e-8)
}

func TestFFTCorrelator_EmptyKernel(t *testing.T) {
	assert.Nil(t, NewFFTCorrelator(nil))
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{Same, Valid, Full} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := ParseMode("circular")
	assert.Error(t, err)
}
