package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	filtereval "github.com/tphakala/go-audio-filtereval"
)

const (
	powerDBScale = 10.0
	minPower     = 1e-24
)

// csvVisualizer exports comparison views as CSV files for external
// plotting. File names are derived from the view title.
type csvVisualizer struct {
	dir string

	// spectrogram frame and hop; zero selects the library defaults
	frameSize int
	hop       int
}

func newCSVVisualizer(dir string) *csvVisualizer {
	return &csvVisualizer{dir: dir}
}

// PlotTime writes time_s,amplitude rows.
func (v *csvVisualizer) PlotTime(title string, t, samples []float64) error {
	rows := make([][]string, len(samples))
	for i, s := range samples {
		rows[i] = []string{formatFloat(t[i]), formatFloat(s)}
	}
	return v.write(title, "time", []string{"time_s", "amplitude"}, rows)
}

// PlotSpectrum writes frequency_hz,magnitude,magnitude_db rows.
func (v *csvVisualizer) PlotSpectrum(title string, s *filtereval.Spectrum) error {
	freqs, mag, db := s.Frequencies(), s.Magnitude(), s.MagnitudeDB()
	rows := make([][]string, len(freqs))
	for i := range freqs {
		rows[i] = []string{formatFloat(freqs[i]), formatFloat(mag[i]), formatFloat(db[i])}
	}
	return v.write(title, "spectrum", []string{"frequency_hz", "magnitude", "magnitude_db"}, rows)
}

// PlotSpectrogram writes one time_s,frequency_hz,power_db row per cell.
func (v *csvVisualizer) PlotSpectrogram(title string, samples []float64, sampleRate int) error {
	sg := filtereval.Spectrogram(filtereval.Waveform{Samples: samples, SampleRate: sampleRate}, v.frameSize, v.hop)
	rows := make([][]string, 0, len(sg.Times)*len(sg.Frequencies))
	for f, frame := range sg.Power {
		for b, p := range frame {
			rows = append(rows, []string{formatFloat(sg.Times[f]), formatFloat(sg.Frequencies[b]), formatFloat(p)})
		}
	}
	return v.write(title, "spectrogram", []string{"time_s", "frequency_hz", "power_db"}, rows)
}

// PlotPSD writes frequency_hz,power_per_hz,power_db rows of a Welch estimate.
func (v *csvVisualizer) PlotPSD(title string, freqs, psd []float64) error {
	rows := make([][]string, len(freqs))
	for i := range freqs {
		rows[i] = []string{formatFloat(freqs[i]), formatFloat(psd[i]), formatFloat(powerDB(psd[i]))}
	}
	return v.write(title, "psd", []string{"frequency_hz", "power_per_hz", "power_db"}, rows)
}

func (v *csvVisualizer) write(title, view string, header []string, rows [][]string) (err error) {
	path := filepath.Join(v.dir, fmt.Sprintf("%s_%s.csv", fileSlug(title), view))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// powerDB converts power to decibels, flooring at -240 dB.
func powerDB(p float64) float64 {
	return powerDBScale * math.Log10(math.Max(p, minPower))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// fileSlug maps a title to a file-name-safe lower case token.
func fileSlug(title string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
