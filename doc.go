// Package filtereval evaluates digital filters against recorded voice
// signals.
//
// A [Source] loads a waveform through an [AudioReader], mixes it down to
// mono and normalizes its peak to 1.0. Filters are pluggable capabilities
// implementing [Filter]; they are collected by name in a [Registry] and run
// by an [Engine], which produces an insertion-ordered [ComparisonSet] of
// original/filtered pairs with optional metrics. A [Renderer] hands time and
// frequency domain views to a [Visualizer], and a [Sink] writes filtered
// signals back as 16-bit PCM through an [AudioWriter].
//
// # Quick Start
//
//	src := filtereval.NewSource(wavio.NewReader())
//	w, err := src.Load("voice.wav")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reg := filtereval.NewRegistry()
//	reg.MustRegister("lowpass", filters.LowPass{}, filtereval.Params{
//	    "cutoff": 3000.0, "sample_rate": w.SampleRate, "taps": 101,
//	})
//	reg.MustRegister("median", filters.Median{}, filtereval.Params{"size": 5})
//
//	engine := filtereval.NewEngine(filtereval.WithMetrics(filtereval.DefaultMetrics()...))
//	set, err := engine.RunAll(w, reg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range set.Results() {
//	    snr, _ := r.Metric("snr")
//	    fmt.Printf("%s: %.1f dB\n", r.Name, snr)
//	}
//
// # Length Safety
//
// Filters may return fewer samples than they were given (valid-mode
// convolution) or more (full-mode convolution). The [Invoker] zero-pads a
// short result at the tail and truncates a long one from the end, so every
// [ComparisonResult] holds two waveforms of identical length. The
// adjustment is reported in [ComparisonResult.Adjustment] and logged, but
// it is never an error.
//
// # Errors
//
// Loading failures are [*LoadError], filter failures (returned errors,
// panics and non-finite output) are [*FilterExecutionError] and duplicate
// registrations are [*DuplicateFilterError]. Each matches its sentinel
// through [errors.Is]: [ErrLoad], [ErrFilterExecution] and
// [ErrDuplicateFilter].
//
// # Batch Policy
//
// [Engine.RunAll] fails fast by default: the first failing filter aborts
// the run. [ContinueOnError] runs every filter and returns the partial set
// together with all failures joined. [WithWorkers] runs filters
// concurrently; results keep registration order regardless of completion
// order.
//
// # Thread Safety
//
// [Engine], [Invoker] and [Spectrum] are safe for concurrent use. A
// [Registry] is configuration data and must not be mutated while a batch
// runs.
package filtereval
