package mathutil

// Bessel series constants.
const (
	besselMaxTerms  = 500   // hard stop for the power series
	besselTolerance = 1e-17 // relative size of the last term kept
	halfDivisor     = 2.0
)

// Kaiser window design constants (Kaiser & Schafer empirical formulas).
const (
	kaiserAttHigh   = 50.0 // above: linear β formula
	kaiserAttMedium = 21.0 // below: rectangular window (β = 0)

	kaiserBetaHighCoeff    = 0.1102
	kaiserBetaHighOffset   = 8.7
	kaiserBetaMediumCoeff1 = 0.5842
	kaiserBetaMediumPower  = 0.4
	kaiserBetaMediumCoeff2 = 0.07886

	// N ≈ (A - 7.95) / (14.36 Δf) + 1 with Δf in cycles per sample
	kaiserLengthOffset     = 7.95
	kaiserLengthMultiplier = 14.36
)

// Filter length bounds.
const (
	MinFilterLength = 3
	MaxFilterLength = 8191

	defaultTransitionBW = 0.01 // used when a non-positive width is given
)
