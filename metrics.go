package filtereval

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Metric is a scalar comparison between a reference and a test sequence of
// equal length. Compute must be a pure function.
type Metric struct {
	Name    string
	Unit    string
	Compute func(reference, test []float64) float64
}

// MetricValue is one computed metric of a ComparisonResult.
type MetricValue struct {
	Name  string
	Unit  string
	Value float64
}

// Built-in metrics.
var (
	MetricRMSE = Metric{Name: "rmse", Compute: RootMeanSquareError}

	MetricSNR = Metric{Name: "snr", Unit: "dB", Compute: SignalToNoiseRatio}

	MetricPeakError = Metric{Name: "peak_error", Compute: PeakAbsError}

	MetricCorrelation = Metric{Name: "correlation", Compute: PearsonCorrelation}

	MetricLogSpectralDistance = Metric{Name: "lsd", Unit: "dB", Compute: LogSpectralDistance}
)

// DefaultMetrics returns the metrics the driver reports when none are
// selected explicitly.
func DefaultMetrics() []Metric {
	return []Metric{MetricRMSE, MetricSNR, MetricPeakError, MetricCorrelation}
}

// AllMetrics returns every built-in metric.
func AllMetrics() []Metric {
	return append(DefaultMetrics(), MetricLogSpectralDistance)
}

// MetricByName looks up a built-in metric.
func MetricByName(name string) (Metric, bool) {
	for _, m := range AllMetrics() {
		if m.Name == name {
			return m, true
		}
	}
	return Metric{}, false
}

// The metric functions below panic if the lengths differ, matching gonum's
// floats package. The Engine only calls them on equal-length pairs.

// RootMeanSquareError returns sqrt(mean((reference-test)^2)).
func RootMeanSquareError(reference, test []float64) float64 {
	if len(reference) == 0 {
		return 0
	}
	return floats.Distance(reference, test, 2) / math.Sqrt(float64(len(reference)))
}

// SignalToNoiseRatio returns 10*log10 of reference energy over the energy of
// the difference. Identical sequences yield +Inf. A silent reference with a
// non-zero difference yields -Inf.
func SignalToNoiseRatio(reference, test []float64) float64 {
	signal := floats.Dot(reference, reference)
	d := floats.Distance(reference, test, 2)
	noise := d * d
	switch {
	case noise == 0:
		return math.Inf(1)
	case signal == 0:
		return math.Inf(-1)
	}
	return powerDBMultiplier * math.Log10(signal/noise)
}

// PeakAbsError returns the largest absolute sample difference.
func PeakAbsError(reference, test []float64) float64 {
	return floats.Distance(reference, test, math.Inf(1))
}

// PearsonCorrelation returns the correlation coefficient of the two
// sequences, or 0 when either has zero variance.
func PearsonCorrelation(reference, test []float64) float64 {
	if len(reference) < 2 {
		return 0
	}
	c := stat.Correlation(reference, test, nil)
	if math.IsNaN(c) {
		return 0
	}
	return c
}

// LogSpectralDistance returns the RMS difference in dB between the
// magnitude spectra of the two sequences. Magnitudes are floored at 120 dB
// below the louder peak, and bins under the floor in both spectra are left
// out of the average. Two silent sequences have distance 0.
func LogSpectralDistance(reference, test []float64) float64 {
	if len(reference) != len(test) {
		panic("filtereval: length mismatch")
	}
	if len(reference) == 0 {
		return 0
	}
	fft := fourier.NewFFT(len(reference))
	a := magnitudes(fft.Coefficients(nil, reference))
	b := magnitudes(fft.Coefficients(nil, test))

	floor := math.Max(minMagnitude, math.Max(floats.Max(a), floats.Max(b))*lsdDynamicRange)

	var (
		sum  float64
		bins int
	)
	for i := range a {
		if a[i] <= floor && b[i] <= floor {
			continue
		}
		d := magnitudeDB(math.Max(a[i], floor)) - magnitudeDB(math.Max(b[i], floor))
		sum += d * d
		bins++
	}
	if bins == 0 {
		return 0
	}
	return math.Sqrt(sum / float64(bins))
}

func magnitudes(coeffs []complex128) []float64 {
	mag := make([]float64, len(coeffs))
	for i, c := range coeffs {
		mag[i] = cmplx.Abs(c)
	}
	return mag
}

func computeMetrics(metrics []Metric, reference, test []float64) []MetricValue {
	if len(metrics) == 0 {
		return nil
	}
	values := make([]MetricValue, len(metrics))
	for i, m := range metrics {
		values[i] = MetricValue{Name: m.Name, Unit: m.Unit, Value: m.Compute(reference, test)}
	}
	return values
}
