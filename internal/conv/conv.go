// Package conv implements one-dimensional linear convolution in the three
// boundary modes filters use: full, same and valid.
package conv

import (
	"fmt"
	"slices"
)

// Mode selects which part of the full convolution is returned.
type Mode int

const (
	// Same returns len(signal) samples centred on the full result.
	Same Mode = iota

	// Valid returns the len(signal)-len(kernel)+1 samples computed without
	// zero padding, or nothing when the kernel is longer than the signal.
	Valid

	// Full returns all len(signal)+len(kernel)-1 samples.
	Full
)

func (m Mode) String() string {
	switch m {
	case Same:
		return "same"
	case Valid:
		return "valid"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

// ParseMode resolves a mode name. The empty string selects Same.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "same", "":
		return Same, nil
	case "valid":
		return Valid, nil
	case "full":
		return Full, nil
	default:
		return Same, fmt.Errorf("unknown convolution mode %q", s)
	}
}

// OutputLen returns the result length of Convolve for the given sizes.
func OutputLen(signalLen, kernelLen int, mode Mode) int {
	if signalLen == 0 || kernelLen == 0 {
		return 0
	}
	switch mode {
	case Full:
		return signalLen + kernelLen - 1
	case Valid:
		return max(signalLen-kernelLen+1, 0)
	default:
		return signalLen
	}
}

// Convolve returns signal * kernel in the requested mode. Empty inputs
// give an empty result.
func Convolve(signal, kernel []float64, mode Mode) []float64 {
	n, k := len(signal), len(kernel)
	if n == 0 || k == 0 {
		return []float64{}
	}

	reversed := slices.Clone(kernel)
	slices.Reverse(reversed)

	if mode == Valid {
		out := make([]float64, OutputLen(n, k, Valid))
		if len(out) > 0 {
			correlateValid(out, signal, reversed)
		}
		return out
	}

	padded := make([]float64, n+2*(k-1))
	copy(padded[k-1:], signal)
	full := make([]float64, n+k-1)
	correlateValid(full, padded, reversed)

	if mode == Full {
		return full
	}
	start := (k - 1) / 2
	return full[start : start+n]
}
