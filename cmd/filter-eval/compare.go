package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	filtereval "github.com/tphakala/go-audio-filtereval"
	"github.com/tphakala/go-audio-filtereval/internal/wavio"
)

const (
	outputDirPerm  = 0o755
	metricDecimals = 4
)

// CompareCmd runs a filter set against one recording.
type CompareCmd struct {
	Input   string   `arg:"" type:"existingfile" help:"Input WAV file"`
	Set     string   `type:"existingfile" help:"YAML filter set (default: built-in voice set)"`
	Out     string   `type:"path" default:"filter-eval-out" help:"Output directory"`
	Policy  string   `enum:"fail-fast,continue" default:"fail-fast" help:"Error policy: fail-fast or continue"`
	Workers int      `default:"1" help:"Filters run concurrently"`
	Metrics []string `sep:"," help:"Metrics to report (rmse, snr, peak_error, correlation, lsd)"`
	NoViews bool     `help:"Skip CSV time, spectrum and spectrogram views"`
}

// Run implements the compare subcommand.
func (c *CompareCmd) Run(g *Globals) error {
	logger := newLogger(g.Verbose)
	defer func() { _ = logger.Sync() }()

	start := time.Now()
	w, err := filtereval.NewSource(wavio.NewReader(), filtereval.WithLogger(logger)).Load(c.Input)
	if err != nil {
		return err
	}

	set := defaultFilterSet()
	if c.Set != "" {
		if set, err = loadFilterSet(c.Set); err != nil {
			return err
		}
	}
	reg, err := set.Registry(w.SampleRate)
	if err != nil {
		return err
	}

	engine, err := filtereval.NewEngineFromConfig(&filtereval.Config{
		Policy:  c.Policy,
		Workers: c.Workers,
		Metrics: c.Metrics,
	}, logger)
	if err != nil {
		return err
	}

	results, runErr := engine.RunAll(w, reg)
	if results == nil {
		return runErr
	}

	if err := os.MkdirAll(c.Out, outputDirPerm); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	sink := filtereval.NewSink(wavio.NewWriter(), filtereval.WithLogger(logger))
	for _, r := range results.Results() {
		if err := sink.Save(filepath.Join(c.Out, fileSlug(r.Name)+".wav"), r.Filtered); err != nil {
			return err
		}
	}

	if !c.NoViews {
		renderer := filtereval.NewRenderer(newCSVVisualizer(c.Out), filtereval.WithLogger(logger))
		if err := renderer.RenderSet(results); err != nil {
			return err
		}
	}

	out := g.stdout
	printTitle(out, "Filter comparison")
	printKeyValue(out, "Input", c.Input)
	printKeyValue(out, "Sample rate", fmt.Sprintf("%d Hz", w.SampleRate))
	printKeyValue(out, "Duration", w.Duration().Round(time.Millisecond))
	printKeyValue(out, "Filters", fmt.Sprintf("%d of %d succeeded", results.Len(), reg.Len()))
	fmt.Fprintln(out)
	printTable(out, resultsTable(results))
	fmt.Fprintln(out)
	printKeyValue(out, "Output", c.Out)

	logger.Info("comparison complete",
		zap.String("input", c.Input),
		zap.Int("filters", results.Len()),
		zap.Duration("elapsed", time.Since(start)))
	return runErr
}

// resultsTable lays out one row per filter with one column per metric.
// Length recoveries are noted.
func resultsTable(set *filtereval.ComparisonSet) *metricTable {
	t := &metricTable{}
	for i, r := range set.Results() {
		if i == 0 {
			for _, m := range r.Metrics {
				header := m.Name
				if m.Unit != "" {
					header += " (" + m.Unit + ")"
				}
				t.Headers = append(t.Headers, header)
			}
		}

		row := metricRow{Label: r.Name}
		for _, m := range r.Metrics {
			row.Values = append(row.Values, formatMetric(m.Value, metricDecimals))
		}
		if r.Adjustment.Recovered() {
			row.Note = fmt.Sprintf("%s %d samples", r.Adjustment.Kind, r.Adjustment.Delta)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}
