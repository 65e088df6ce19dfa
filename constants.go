package filtereval

// PCM conversion constants.
const (
	// maxInt16 is the largest representable 16-bit PCM magnitude.
	maxInt16 = 32767.0

	// normalizedLimit bounds normalized float samples to [-1, 1].
	normalizedLimit = 1.0
)

// Spectral analysis defaults.
const (
	defaultSpectrogramFrame = 512
	defaultSpectrogramHop   = 128
	defaultPSDSize          = 1024
	minMagnitude            = 1e-12 // floor before log10
	dbMultiplier            = 20.0  // 20*log10 for magnitude
	powerDBMultiplier       = 10.0  // 10*log10 for power
	hermitianDivisor        = 2     // real FFT of size N has N/2+1 unique bins

	// lsdDynamicRange is the floor of the log-spectral distance relative to
	// the louder spectrum's peak (-120 dB). Bins below it on both sides are
	// ignored.
	lsdDynamicRange = 1e-6
)
