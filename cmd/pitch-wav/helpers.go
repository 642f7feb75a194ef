package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	resampler "github.com/tphakala/go-pitch-resampler"
	"github.com/tphakala/go-pitch-resampler/internal/analysis"
)

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file     *os.File
	decoder  *wav.Decoder
	rate     int
	channels int
	bitDepth int
	format   *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	format := decoder.Format()
	bitDepth := int(decoder.BitDepth)

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", format.SampleRate, format.NumChannels, bitDepth)
	}

	return &wavInputInfo{
		file:     inputFile,
		decoder:  decoder,
		rate:     format.SampleRate,
		channels: format.NumChannels,
		bitDepth: bitDepth,
		format:   format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// wavSource streams PCM from a decoder into the renderer. A read error ends
// the stream like EOF does and is kept for Err.
type wavSource struct {
	decoder   *wav.Decoder
	buf       *audio.IntBuffer
	view      audio.IntBuffer
	channels  int
	invMaxVal float32
	err       error
}

func newWAVSource(input *wavInputInfo, blockFrames int) *wavSource {
	return &wavSource{
		decoder: input.decoder,
		buf: &audio.IntBuffer{
			Data:   make([]int, blockFrames*input.channels),
			Format: input.format,
		},
		channels:  input.channels,
		invMaxVal: float32(1 / getMaxValue(input.bitDepth)),
	}
}

// GetSamples implements resampler.AudioSource.
func (s *wavSource) GetSamples(output []float32, numFramesRequested, numChannels int) int {
	if s.err != nil {
		return 0
	}

	need := numFramesRequested * s.channels
	if cap(s.buf.Data) < need {
		s.buf.Data = make([]int, need)
	}
	s.buf.Data = s.buf.Data[:need]

	// PCMBuffer stops at whatever one read returns; keep reading until the
	// block is full or the data chunk ends.
	got := 0
	for got < need {
		s.view.Data = s.buf.Data[got:need]
		n, err := s.decoder.PCMBuffer(&s.view)
		got += n
		if err != nil && !errors.Is(err, io.EOF) {
			s.err = err
			break
		}
		if n == 0 || err != nil {
			break
		}
	}
	frames := got / s.channels

	for f := range frames {
		src := s.buf.Data[f*s.channels:]
		dst := output[f*numChannels:]
		for c := range numChannels {
			dst[c] = float32(src[c%s.channels]) * s.invMaxVal
		}
	}
	return frames
}

// Err returns the first read error, if any.
func (s *wavSource) Err() error {
	return s.err
}

// loadSampleTable decodes the whole input into memory.
func loadSampleTable(input *wavInputInfo) (*resampler.SampleTable, error) {
	buf, err := input.decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	frames := len(buf.Data) / input.channels
	samples := make([]float32, frames*input.channels)
	invMaxVal := 1 / getMaxValue(input.bitDepth)
	for i := range samples {
		samples[i] = float32(float64(buf.Data[i]) * invMaxVal)
	}
	return resampler.NewSampleTable(samples, input.channels)
}

// wavOutputWriter wraps the output file and encoder.
type wavOutputWriter struct {
	file    *os.File
	encoder *wav.Encoder
	buf     *audio.IntBuffer
	maxVal  float64
}

// createWAVOutput creates output file and encoder.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	return &wavOutputWriter{
		file:    outputFile,
		encoder: wav.NewEncoder(outputFile, sampleRate, bitDepth, channels, 1),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
			SourceBitDepth: bitDepth,
		},
		maxVal: getMaxValue(bitDepth),
	}, nil
}

// WriteFrames clamps interleaved float samples to [-1, 1] and writes them
// at the output bit depth.
func (w *wavOutputWriter) WriteFrames(samples []float32) error {
	if len(samples) == 0 {
		return nil
	}
	if cap(w.buf.Data) < len(samples) {
		w.buf.Data = make([]int, len(samples))
	}
	w.buf.Data = w.buf.Data[:len(samples)]

	for i, s := range samples {
		v := math.Max(-1, math.Min(1, float64(s)))
		w.buf.Data[i] = int(math.Round(v * w.maxVal))
	}
	return w.encoder.Write(w.buf)
}

// Close finalizes the WAV header and closes the file.
func (w *wavOutputWriter) Close() error {
	if err := w.encoder.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// levelMeter accumulates output levels across blocks.
type levelMeter struct {
	sumSquares float64
	peak       float64
	samples    int
}

func (m *levelMeter) Add(samples []float32) {
	if len(samples) == 0 {
		return
	}
	l := analysis.Measure(samples)
	m.sumSquares += l.RMS * l.RMS * float64(len(samples))
	m.peak = max(m.peak, l.Peak)
	m.samples += len(samples)
}

// DBFS returns the overall RMS and peak levels in dB full scale.
func (m *levelMeter) DBFS() (rms, peak float64) {
	if m.samples == 0 {
		return math.Inf(-1), math.Inf(-1)
	}
	return analysis.DBFS(math.Sqrt(m.sumSquares / float64(m.samples))), analysis.DBFS(m.peak)
}
