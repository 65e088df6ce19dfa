package conv

import (
	"github.com/tphakala/simd/c128"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// Kernels at least this long are correlated through the FFT. Direct SIMD
	// correlation wins below roughly 400 taps.
	minKernelForFFT = 400

	defaultFFTBlockSize = 512

	fftHermitianDivisor = 2
)

// FFTCorrelator computes the valid-mode sliding dot product
//
//	y[n] = Σ x[n+k]·h[k]
//
// with overlap-save FFT blocks. It matches f64.ConvolveValid and is
// O(N log N) instead of O(N·M).
//
// Each block of fftSize input samples yields blockSize = fftSize-len(h)+1
// valid outputs; the first len(h)-1 circular outputs are discarded.
type FFTCorrelator struct {
	fft       *fourier.FFT
	fftSize   int
	blockSize int

	kernelFFT []complex128
	kernelLen int
	scale     float64 // 1/fftSize, gonum does not normalize the inverse

	signalBlock []float64
	signalFFT   []complex128
	productFFT  []complex128
	ifftResult  []float64
}

// NewFFTCorrelator transforms kernel once for reuse. It returns nil for an
// empty kernel.
func NewFFTCorrelator(kernel []float64) *FFTCorrelator {
	kernelLen := len(kernel)
	if kernelLen == 0 {
		return nil
	}

	fftSize := defaultFFTBlockSize
	for fftSize < 2*kernelLen {
		fftSize *= 2
	}

	fft := fourier.NewFFT(fftSize)

	// Circular convolution with the reversed kernel is correlation with the
	// kernel itself.
	padded := make([]float64, fftSize)
	for i := range kernelLen {
		padded[i] = kernel[kernelLen-1-i]
	}

	fftLen := fftSize/fftHermitianDivisor + 1
	return &FFTCorrelator{
		fft:         fft,
		fftSize:     fftSize,
		blockSize:   fftSize - kernelLen + 1,
		kernelFFT:   fft.Coefficients(nil, padded),
		kernelLen:   kernelLen,
		scale:       1.0 / float64(fftSize),
		signalBlock: make([]float64, fftSize),
		signalFFT:   make([]complex128, fftLen),
		productFFT:  make([]complex128, fftLen),
		ifftResult:  make([]float64, fftSize),
	}
}

// Correlate writes len(signal)-len(kernel)+1 valid outputs to dst.
// It does nothing when signal is shorter than the kernel or dst is too small.
func (c *FFTCorrelator) Correlate(dst, signal []float64) {
	signalLen := len(signal)
	outputLen := signalLen - c.kernelLen + 1
	if outputLen <= 0 || len(dst) < outputLen {
		return
	}

	overlap := c.kernelLen - 1
	for outIdx := 0; outIdx < outputLen; {
		clear(c.signalBlock)
		copyLen := min(c.fftSize, signalLen-outIdx)
		copy(c.signalBlock, signal[outIdx:outIdx+copyLen])

		c.signalFFT = c.fft.Coefficients(c.signalFFT, c.signalBlock)
		c128.Mul(c.productFFT, c.signalFFT, c.kernelFFT)
		c.ifftResult = c.fft.Sequence(c.ifftResult, c.productFFT)
		f64.Scale(c.ifftResult, c.ifftResult, c.scale)

		valid := min(c.blockSize, outputLen-outIdx)
		copy(dst[outIdx:outIdx+valid], c.ifftResult[overlap:overlap+valid])
		outIdx += valid
	}
}

// correlateValid picks direct or FFT correlation by kernel length.
func correlateValid(dst, signal, kernel []float64) {
	if len(kernel) < minKernelForFFT {
		f64.ConvolveValid(dst, signal, kernel)
		return
	}
	if c := NewFFTCorrelator(kernel); c != nil {
		c.Correlate(dst, signal)
	}
}
