// Package wavio reads and writes WAV files for the filter evaluation
// pipeline using go-audio/wav.
package wavio

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAV format tags.
const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

const (
	bitDepth8       = 8
	bitDepth16      = 16
	bitDepth32      = 32
	unsigned8Offset = 128
	monoChannels    = 1
)

var (
	// ErrInvalidWAV indicates a file that is not a readable RIFF/WAVE stream.
	ErrInvalidWAV = errors.New("invalid WAV file")

	// ErrUnsupportedFormat indicates a WAV encoding this package cannot decode.
	ErrUnsupportedFormat = errors.New("unsupported WAV format")
)

// Reader decodes whole WAV files into interleaved float64 samples. Integer
// PCM is returned at its native scale; callers normalize.
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read decodes path and returns the sample rate, interleaved samples and
// channel count.
func (r *Reader) Read(path string) (sampleRate int, samples []float64, channels int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, 0, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return 0, nil, 0, fmt.Errorf("%w: %s", ErrInvalidWAV, path)
	}

	format := decoder.WavAudioFormat
	depth := int(decoder.BitDepth)
	// go-audio discards the extensible sub-format GUID, so extensible files
	// are decoded as integer PCM.
	switch {
	case format == formatPCM, format == formatExtensible:
	case format == formatIEEEFloat && depth == bitDepth32:
	default:
		return 0, nil, 0, fmt.Errorf("%w: format tag %d, %d-bit", ErrUnsupportedFormat, format, depth)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return 0, nil, 0, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
	}

	return int(decoder.SampleRate), widen(buf, format, depth), int(decoder.NumChans), nil
}

// widen converts decoded integers to float64. 8-bit PCM is unsigned and
// recentred on zero; 32-bit float data arrives as raw bit patterns.
func widen(buf *audio.IntBuffer, format uint16, depth int) []float64 {
	out := make([]float64, len(buf.Data))
	switch {
	case format == formatIEEEFloat:
		for i, v := range buf.Data {
			out[i] = float64(math.Float32frombits(uint32(int32(v))))
		}
	case depth == bitDepth8:
		for i, v := range buf.Data {
			out[i] = float64(v - unsigned8Offset)
		}
	default:
		for i, v := range buf.Data {
			out[i] = float64(v)
		}
	}
	return out
}

// Writer encodes mono 16-bit PCM WAV files.
type Writer struct{}

// NewWriter creates a Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write creates path and encodes samples at sampleRate.
func (w *Writer) Write(path string, sampleRate int, samples []int16) (err error) {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate %d", sampleRate)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}

	enc := wav.NewEncoder(f, sampleRate, bitDepth16, monoChannels, formatPCM)
	buf := &audio.IntBuffer{
		Data:           data,
		Format:         &audio.Format{SampleRate: sampleRate, NumChannels: monoChannels},
		SourceBitDepth: bitDepth16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("data writing error: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize WAV header: %w", err)
	}
	return nil
}
