package filtereval

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-filtereval/internal/testutil"
)

type plotCall struct {
	kind  string
	title string
	n     int
}

// recordingVisualizer records every plot request and can fail on a title.
type recordingVisualizer struct {
	calls  []plotCall
	failOn string
}

func (v *recordingVisualizer) record(kind, title string, n int) error {
	v.calls = append(v.calls, plotCall{kind, title, n})
	if title == v.failOn {
		return errBoom
	}
	return nil
}

func (v *recordingVisualizer) PlotTime(title string, t, samples []float64) error {
	if len(t) != len(samples) {
		return errors.New("axis length mismatch")
	}
	return v.record("time", title, len(samples))
}

func (v *recordingVisualizer) PlotSpectrum(title string, s *Spectrum) error {
	return v.record("spectrum", title, len(s.Magnitude()))
}

func (v *recordingVisualizer) PlotSpectrogram(title string, samples []float64, _ int) error {
	return v.record("spectrogram", title, len(samples))
}

// psdRecordingVisualizer also records PSD views.
type psdRecordingVisualizer struct {
	recordingVisualizer
	freqs   [][]float64
	failPSD bool
}

func (v *psdRecordingVisualizer) PlotPSD(title string, freqs, psd []float64) error {
	if len(freqs) != len(psd) {
		return errors.New("axis length mismatch")
	}
	v.freqs = append(v.freqs, freqs)
	if v.failPSD {
		return errBoom
	}
	return v.record("psd", title, len(psd))
}

func TestTimeAxis(t *testing.T) {
	axis := TimeAxis(Waveform{Samples: make([]float64, 4), SampleRate: 4})
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75}, axis)
}

func TestSpectrum_PeakAtToneFrequency(t *testing.T) {
	const rate = 8000
	w := Waveform{Samples: testutil.Sine(800, 1000, 1, rate), SampleRate: rate}
	s := NewSpectrum(w)

	freqs, mag := s.Frequencies(), s.Magnitude()
	require.Len(t, freqs, 401)
	require.Len(t, mag, len(freqs))

	peak := 0
	for i := range mag {
		if mag[i] > mag[peak] {
			peak = i
		}
	}
	assert.InDelta(t, 1000, freqs[peak], 1e-9)
	// A unit sine splits its energy between the positive and negative bin.
	assert.InDelta(t, 0.5, mag[peak], 1e-9)
	assert.InDelta(t, -6.0206, s.MagnitudeDB()[peak], testutil.DBTolerance)
}

func TestPowerSpectralDensity(t *testing.T) {
	const rate = 8000
	w := Waveform{Samples: testutil.Sine(8192, 500, 1, rate), SampleRate: rate}
	psd, freqs := PowerSpectralDensity(w, 256)
	require.Len(t, freqs, len(psd))
	require.NotEmpty(t, psd)

	peak := 0
	for i := range psd {
		if psd[i] > psd[peak] {
			peak = i
		}
	}
	assert.InDelta(t, 500, freqs[peak], float64(rate)/256)
}

func TestSpectrogram(t *testing.T) {
	const rate = 8000
	w := Waveform{Samples: testutil.Sine(2048, 2000, 1, rate), SampleRate: rate}
	sg := Spectrogram(w, 256, 128)

	require.Len(t, sg.Times, 15)
	require.Len(t, sg.Power, 15)
	require.Len(t, sg.Frequencies, 129)
	assert.InDelta(t, 128.0/rate, sg.Times[1], 1e-12)

	for _, row := range sg.Power {
		testutil.AssertNoNaNOrInf(t, row)
		peak := 0
		for i := range row {
			if row[i] > row[peak] {
				peak = i
			}
		}
		assert.InDelta(t, 2000, sg.Frequencies[peak], 1e-9)
	}
}

func TestSpectrogram_ShortSignalAndDefaults(t *testing.T) {
	sg := Spectrogram(Waveform{Samples: []float64{1, 0, -1}, SampleRate: 8000}, 0, 0)
	require.Len(t, sg.Power, 1)
	assert.Len(t, sg.Power[0], defaultSpectrogramFrame/2+1)
	for _, v := range sg.Power[0] {
		assert.False(t, math.IsNaN(v))
	}
}

func TestRenderer_RenderSet(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("lp", identityFilter(), nil)
	reg.MustRegister("hp", scaleFilter(0.1), nil)
	set, err := NewEngine().RunAll(testWaveform(64, 8000), reg)
	require.NoError(t, err)

	viz := &recordingVisualizer{}
	require.NoError(t, NewRenderer(viz).RenderSet(set))

	require.Len(t, viz.calls, 12)
	titles := []string{"lp original", "lp filtered", "hp original", "hp filtered"}
	for i, title := range titles {
		for j, kind := range []string{"time", "spectrum", "spectrogram"} {
			c := viz.calls[i*3+j]
			assert.Equal(t, kind, c.kind)
			assert.Equal(t, title, c.title)
		}
	}
	assert.Equal(t, 64, viz.calls[0].n)
	assert.Equal(t, 33, viz.calls[1].n)
}

func TestRenderer_PSDView(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("lp", identityFilter(), nil)
	set, err := NewEngine().RunAll(testWaveform(64, 8000), reg)
	require.NoError(t, err)

	viz := &psdRecordingVisualizer{}
	require.NoError(t, NewRenderer(viz).RenderSet(set))

	require.Len(t, viz.calls, 8)
	kinds := []string{"time", "spectrum", "spectrogram", "psd"}
	for i, c := range viz.calls {
		assert.Equal(t, kinds[i%4], c.kind)
	}
	// Short signals are zero padded to one default-size segment.
	assert.Equal(t, defaultPSDSize/2+1, viz.calls[3].n)
	require.NotEmpty(t, viz.freqs)
	assert.InDelta(t, 4000, viz.freqs[0][len(viz.freqs[0])-1], 1e-9)
}

func TestRenderer_PropagatesPSDError(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("lp", identityFilter(), nil)
	set, err := NewEngine().RunAll(testWaveform(16, 8000), reg)
	require.NoError(t, err)

	viz := &psdRecordingVisualizer{failPSD: true}
	err = NewRenderer(viz).RenderSet(set)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "psd")
	assert.Len(t, viz.calls, 3, "stops after the first view set")
}

func TestRenderer_PropagatesVisualizerError(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("lp", identityFilter(), nil)
	set, err := NewEngine().RunAll(testWaveform(16, 8000), reg)
	require.NoError(t, err)

	viz := &recordingVisualizer{failOn: "lp filtered"}
	err = NewRenderer(viz).RenderSet(set)
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "lp")
	assert.Len(t, viz.calls, 4)
}
