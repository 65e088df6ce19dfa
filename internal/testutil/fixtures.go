package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/require"
)

// WAV format tags accepted by WriteWAVFormat.
const (
	FormatPCM        = 1
	FormatIEEEFloat  = 3
	FormatExtensible = 0xFFFE
)

// WriteWAV encodes interleaved integer samples as a PCM WAV file in a test
// temp directory and returns its path.
func WriteWAV(t *testing.T, name string, sampleRate, bitDepth, channels int, data []int) string {
	t.Helper()
	return WriteWAVFormat(t, name, sampleRate, bitDepth, channels, FormatPCM, data)
}

// WriteWAVFormat is WriteWAV with an explicit format tag. Samples are
// written as raw integers of bitDepth bits, so 8-bit data is unsigned and
// float data must be passed as IEEE bit patterns.
func WriteWAVFormat(t *testing.T, name string, sampleRate, bitDepth, channels, format int, data []int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, bitDepth, channels, format)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: channels},
		SourceBitDepth: bitDepth,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
	return path
}

// ToInts scales normalized samples to integers of the given full-scale value.
func ToInts(samples []float64, fullScale float64) []int {
	out := make([]int, len(samples))
	for i, v := range samples {
		out[i] = int(v * fullScale)
	}
	return out
}
