package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	filtereval "github.com/tphakala/go-audio-filtereval"
	"github.com/tphakala/go-audio-filtereval/internal/testutil"
	"github.com/tphakala/go-audio-filtereval/internal/wavio"
)

func wavioReader() filtereval.AudioReader { return wavio.NewReader() }

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVVisualizer(t *testing.T) {
	dir := t.TempDir()
	viz := &csvVisualizer{dir: dir, frameSize: 64, hop: 32}
	w := filtereval.Waveform{Samples: testutil.Sine(256, 1000, 1, 8000), SampleRate: 8000}

	require.NoError(t, viz.PlotTime("Low Pass original", filtereval.TimeAxis(w), w.Samples))
	require.NoError(t, viz.PlotSpectrum("Low Pass original", filtereval.NewSpectrum(w)))
	require.NoError(t, viz.PlotSpectrogram("Low Pass original", w.Samples, w.SampleRate))

	rows := readCSV(t, filepath.Join(dir, "low_pass_original_time.csv"))
	require.Len(t, rows, 257)
	assert.Equal(t, []string{"time_s", "amplitude"}, rows[0])
	assert.Equal(t, "0.000125", rows[2][0])

	rows = readCSV(t, filepath.Join(dir, "low_pass_original_spectrum.csv"))
	require.Len(t, rows, 130)
	assert.Equal(t, []string{"frequency_hz", "magnitude", "magnitude_db"}, rows[0])

	rows = readCSV(t, filepath.Join(dir, "low_pass_original_spectrogram.csv"))
	// 7 frames of 33 bins.
	require.Len(t, rows, 1+7*33)
	assert.Equal(t, []string{"time_s", "frequency_hz", "power_db"}, rows[0])
}

func TestCSVVisualizer_PSD(t *testing.T) {
	dir := t.TempDir()
	viz := newCSVVisualizer(dir)
	w := filtereval.Waveform{Samples: testutil.Sine(2048, 1000, 1, 8000), SampleRate: 8000}

	psd, freqs := filtereval.PowerSpectralDensity(w, 256)
	require.NoError(t, viz.PlotPSD("hp filtered", freqs, psd))

	rows := readCSV(t, filepath.Join(dir, "hp_filtered_psd.csv"))
	require.Len(t, rows, 1+129)
	assert.Equal(t, []string{"frequency_hz", "power_per_hz", "power_db"}, rows[0])
	assert.Equal(t, "0", rows[1][0])
	assert.Equal(t, "4000", rows[129][0])
	assert.InDelta(t, -240, powerDB(0), 1e-9)
}

func TestCSVVisualizer_MissingDir(t *testing.T) {
	viz := newCSVVisualizer(filepath.Join(t.TempDir(), "absent"))
	err := viz.PlotTime("x", []float64{0}, []float64{0})
	assert.Error(t, err)
}

func TestFileSlug(t *testing.T) {
	assert.Equal(t, "lowpass_3k_filtered", fileSlug("LowPass 3k filtered"))
	assert.Equal(t, "a_b_c", fileSlug("a/b.c"))
}
