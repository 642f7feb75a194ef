package main

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	resampler "github.com/tphakala/go-pitch-resampler"
)

// writeTestWAV writes a 16-bit file whose samples are frame*channels+c.
func writeTestWAV(t *testing.T, frames, channels, sampleRate int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	data := make([]int, frames*channels)
	for i := range data {
		data[i] = i
	}
	enc := wav.NewEncoder(f, sampleRate, bitsPerSample16, channels, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: bitsPerSample16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())
	return path
}

func readWAV(t *testing.T, path string) *audio.IntBuffer {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	return buf
}

func TestOpenWAVInput_FileNotFound(t *testing.T) {
	_, err := openWAVInput("/nonexistent/file.wav", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestOpenWAVInput_InvalidWAV(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.wav")
	err := os.WriteFile(invalidFile, []byte("not a wav file"), 0o644)
	require.NoError(t, err)

	_, err = openWAVInput(invalidFile, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestOpenWAVInput_Format(t *testing.T) {
	input, err := openWAVInput(writeTestWAV(t, 100, 2, 22050), false)
	require.NoError(t, err)
	defer func() { _ = input.Close() }()

	assert.Equal(t, 22050, input.rate)
	assert.Equal(t, 2, input.channels)
	assert.Equal(t, bitsPerSample16, input.bitDepth)
}

func TestWAVSource_StreamsUntilShortRead(t *testing.T) {
	const frames = 1000
	input, err := openWAVInput(writeTestWAV(t, frames, 1, 8000), false)
	require.NoError(t, err)
	defer func() { _ = input.Close() }()

	src := newWAVSource(input, 256)
	out := make([]float32, 256)

	var total int
	var reads []int
	for {
		n := src.GetSamples(out, 256, 1)
		reads = append(reads, n)
		for i := range n {
			assert.InDelta(t, float64(total+i)/maxInt16, out[i], 1e-6)
		}
		total += n
		if n < 256 {
			break
		}
	}

	assert.Equal(t, frames, total)
	assert.Equal(t, []int{256, 256, 256, 232}, reads)
	require.NoError(t, src.Err())
}

func TestLoadSampleTable(t *testing.T) {
	input, err := openWAVInput(writeTestWAV(t, 50, 2, 8000), false)
	require.NoError(t, err)
	defer func() { _ = input.Close() }()

	table, err := loadSampleTable(input)
	require.NoError(t, err)
	assert.Equal(t, 50, table.Frames())
	assert.Equal(t, 2, table.Channels())
}

func TestCreateWAVOutput_InvalidDirectory(t *testing.T) {
	_, err := createWAVOutput("/nonexistent/dir/output.wav", 48000, 16, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestWAVOutput_ClampsAndRounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wav")
	w, err := createWAVOutput(path, 8000, bitsPerSample16, 1)
	require.NoError(t, err)

	require.NoError(t, w.WriteFrames([]float32{0, 0.5, -0.5, 2, -2}))
	require.NoError(t, w.WriteFrames(nil))
	require.NoError(t, w.Close())

	buf := readWAV(t, path)
	assert.Equal(t, []int{0, 16384, -16384, 32767, -32767}, buf.Data)
}

func TestGetMaxValue(t *testing.T) {
	tests := []struct {
		bitDepth int
		want     float64
	}{
		{16, maxInt16},
		{24, maxInt24},
		{32, maxInt32},
		{8, maxInt16},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, getMaxValue(tt.bitDepth), 0, "bit depth %d", tt.bitDepth)
	}
}

func TestLevelMeter(t *testing.T) {
	var m levelMeter
	rms, peak := m.DBFS()
	assert.True(t, math.IsInf(rms, -1))
	assert.True(t, math.IsInf(peak, -1))

	m.Add([]float32{1, -1})
	m.Add([]float32{0.5, -0.5})
	rms, peak = m.DBFS()
	assert.InDelta(t, 0, peak, 1e-9)
	assert.InDelta(t, 20*math.Log10(math.Sqrt(0.625)), rms, 1e-6)
}

func TestPitchWAV_UnityRoundTrip(t *testing.T) {
	const frames = 3000
	inputPath := writeTestWAV(t, frames, 2, 8000)
	outputPath := filepath.Join(t.TempDir(), "out.wav")

	stats, err := pitchWAV(options{
		inputPath:  inputPath,
		outputPath: outputPath,
		startPitch: 1,
		endPitch:   1,
		quality:    resampler.QualityHigh,
		block:      128,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(frames), stats.outputFrames)

	assert.Equal(t, readWAV(t, inputPath).Data, readWAV(t, outputPath).Data)
}

func TestPitchWAV_OctaveUpHalvesLength(t *testing.T) {
	inputPath := writeTestWAV(t, 2000, 1, 8000)
	outputPath := filepath.Join(t.TempDir(), "out.wav")

	stats, err := pitchWAV(options{
		inputPath:  inputPath,
		outputPath: outputPath,
		startPitch: 2,
		endPitch:   2,
		quality:    resampler.QualityLow,
		block:      64,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), stats.outputFrames)
	assert.Len(t, readWAV(t, outputPath).Data, 1000)
}

func TestPitchWAV_LoopRunsForDuration(t *testing.T) {
	inputPath := writeTestWAV(t, 100, 1, 8000)
	outputPath := filepath.Join(t.TempDir(), "out.wav")

	stats, err := pitchWAV(options{
		inputPath:  inputPath,
		outputPath: outputPath,
		startPitch: 1.5,
		endPitch:   1.5,
		quality:    resampler.QualityCustom,
		interp:     "watte",
		loop:       true,
		duration:   0.5,
		block:      100,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4000), stats.outputFrames)
}
