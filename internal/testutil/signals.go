package testutil

import "math"

// Sine returns n samples of amplitude·sin(2πft) at sampleRate.
func Sine(n int, freq, amplitude float64, sampleRate int) []float64 {
	s := make([]float64, n)
	w := 2 * math.Pi * freq / float64(sampleRate)
	for i := range s {
		s[i] = amplitude * math.Sin(w*float64(i))
	}
	return s
}

// Mix returns the element-wise sum of equal-length signals.
func Mix(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return nil
	}
	out := make([]float64, len(signals[0]))
	for _, sig := range signals {
		for i := range out {
			out[i] += sig[i]
		}
	}
	return out
}

// Impulse returns n zeros with a unit sample at index at.
func Impulse(n, at int) []float64 {
	s := make([]float64, n)
	if at >= 0 && at < n {
		s[at] = 1
	}
	return s
}

// Constant returns n copies of v.
func Constant(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// RMS returns the root mean square of s, or 0 when s is empty.
func RMS(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(s)))
}
