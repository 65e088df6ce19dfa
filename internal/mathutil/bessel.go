// Package mathutil provides the special functions used for FIR filter design.
package mathutil

import "math"

// BesselI0 computes the modified Bessel function of the first kind, order
// zero, by summing its power series
//
//	I₀(x) = Σ ((x/2)^k / k!)²
//
// until the next term no longer changes the sum. The series converges for
// every x; the Kaiser β range (0-20) needs well under 100 terms.
func BesselI0(x float64) float64 {
	half := math.Abs(x) / halfDivisor
	sum, term := 1.0, 1.0
	for k := 1; k < besselMaxTerms; k++ {
		f := half / float64(k)
		term *= f * f
		sum += term
		if term < sum*besselTolerance {
			break
		}
	}
	return sum
}

// KaiserBeta returns the Kaiser window β giving the requested stopband
// attenuation in dB.
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff * (attenuation - kaiserBetaHighOffset)
	case attenuation >= kaiserAttMedium:
		d := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(d, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*d
	default:
		return 0
	}
}

// EstimateFilterLength returns the odd number of taps a Kaiser windowed
// filter needs for attenuation dB over a transition band of transitionBW
// cycles per sample, clamped to [MinFilterLength, MaxFilterLength].
func EstimateFilterLength(attenuation, transitionBW float64) int {
	if transitionBW <= 0 {
		transitionBW = defaultTransitionBW
	}
	n := (attenuation-kaiserLengthOffset)/(kaiserLengthMultiplier*transitionBW) + 1

	taps := int(math.Ceil(n))
	if taps%2 == 0 {
		taps++
	}
	return min(max(taps, MinFilterLength), MaxFilterLength)
}
