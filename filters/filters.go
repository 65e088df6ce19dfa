// Package filters provides the filter capabilities the evaluation driver
// runs: smoothing kernels, a median filter, Savitzky-Golay smoothing and
// Kaiser windowed-sinc FIR filters.
//
// Every type implements filtereval.Filter and validates its own
// parameters. Validation failures wrap filtereval.ErrInvalidParam.
package filters

import (
	"fmt"
	"slices"

	filtereval "github.com/tphakala/go-audio-filtereval"
)

// Filter kind names accepted by Builtin.
const (
	KindMovingAverage = "moving_average"
	KindBox           = "box"
	KindGaussian      = "gaussian"
	KindMedian        = "median"
	KindSavitzkyGolay = "savitzky_golay"
	KindLowPass       = "lowpass"
	KindHighPass      = "highpass"
	KindBandPass      = "bandpass"
)

var builtins = map[string]filtereval.Filter{
	KindMovingAverage: MovingAverage{},
	KindBox:           Box{},
	KindGaussian:      Gaussian{},
	KindMedian:        Median{},
	KindSavitzkyGolay: SavitzkyGolay{},
	KindLowPass:       LowPass{},
	KindHighPass:      HighPass{},
	KindBandPass:      BandPass{},
}

// Builtin resolves a filter kind name.
func Builtin(kind string) (filtereval.Filter, error) {
	f, ok := builtins[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown filter kind %q", filtereval.ErrFilterNotFound, kind)
	}
	return f, nil
}

// Kinds returns the sorted names Builtin accepts.
func Kinds() []string {
	kinds := make([]string, 0, len(builtins))
	for k := range builtins {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

func invalidParam(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{filtereval.ErrInvalidParam}, args...)...)
}
